package repository_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repository Suite")
}

// MockPersister counts successful saves and fails every save once failError is set.
type MockPersister struct {
	saves     int
	failError error
}

func (m *MockPersister) Save(_ context.Context, _ *document.Document) error {
	if m.failError != nil {
		return m.failError
	}
	m.saves++
	return nil
}

type MockPublisher struct {
	mu     sync.Mutex
	events []*events.EntityEvent
}

func (m *MockPublisher) Publish(_ context.Context, e events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e.(*events.EntityEvent))
	return nil
}

func (m *MockPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType())
	}
	return out
}

func expectCode(err error, code internal.ErrorCode) {
	GinkgoHelper()
	Expect(err).To(HaveOccurred())
	Expect(internal.HasCode(err, code)).To(BeTrue(), "got %v", err)
}

func emailsAreUnique(repo *repository.Repository) bool {
	seen := map[string]bool{}
	for _, a := range repo.Accounts() {
		k := strings.ToLower(a.Email)
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

var _ = Describe("Repository", func() {
	var (
		ctx       context.Context
		persister *MockPersister
		publisher *MockPublisher
		repo      *repository.Repository
	)

	BeforeEach(func() {
		ctx = context.Background()
		persister = &MockPersister{}
		publisher = &MockPublisher{}
		repo = repository.New(document.Default(), persister, publisher, logger.Discard())
	})

	Describe("accounts", func() {
		It("creates with prefixed ids, defaults and one save", func() {
			a, err := repo.CreateAccount(ctx, repository.AccountFields{FirstName: "Ann", Email: "a@x.com", Password: "pw"})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(HavePrefix("acc_"))
			Expect(a.Role).To(Equal("User"))
			Expect(a.Status).To(Equal("Active"))
			Expect(persister.saves).To(Equal(1))
			Expect(publisher.Types()).To(Equal([]string{"account.created"}))
		})

		It("never hands out the same id twice", func() {
			ids := map[string]bool{}
			for i := 0; i < 50; i++ {
				d, err := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "D"})
				Expect(err).NotTo(HaveOccurred())
				Expect(ids).NotTo(HaveKey(d.ID))
				ids[d.ID] = true
			}
		})

		It("appends in insertion order", func() {
			for _, e := range []string{"c@x.com", "a@x.com", "b@x.com"} {
				_, err := repo.CreateAccount(ctx, repository.AccountFields{Email: e})
				Expect(err).NotTo(HaveOccurred())
			}
			var emails []string
			for _, a := range repo.Accounts() {
				emails = append(emails, a.Email)
			}
			Expect(emails).To(Equal([]string{"c@x.com", "a@x.com", "b@x.com"}))
		})

		It("rejects a duplicate email on create regardless of case", func() {
			_, err := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com"})
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.CreateAccount(ctx, repository.AccountFields{Email: "A@X.COM"})
			expectCode(err, internal.ErrCodeEmailExists)
			Expect(err.Error()).To(Equal("Email already exists."))
			Expect(repo.Accounts()).To(HaveLen(1))
			Expect(emailsAreUnique(repo)).To(BeTrue())
		})

		It("rejects an update that takes another account's email but allows keeping its own", func() {
			a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com"})
			b, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "b@x.com"})

			_, err := repo.UpdateAccount(ctx, b.ID, repository.AccountFields{Email: "a@X.com"})
			expectCode(err, internal.ErrCodeEmailExists)

			updated, err := repo.UpdateAccount(ctx, a.ID, repository.AccountFields{Email: "A@x.com", FirstName: "Ann"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FirstName).To(Equal("Ann"))
			Expect(emailsAreUnique(repo)).To(BeTrue())
		})

		It("keeps the stored password when the update leaves it empty", func() {
			a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com", Password: "secret"})

			updated, err := repo.UpdateAccount(ctx, a.ID, repository.AccountFields{Email: "a@x.com", Role: "Admin"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Password).To(Equal("secret"))
			Expect(updated.Role).To(Equal("Admin"))

			updated, err = repo.UpdateAccount(ctx, a.ID, repository.AccountFields{Email: "a@x.com", Password: "new"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Password).To(Equal("new"))
		})

		It("updates in place without moving the record", func() {
			a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com"})
			_, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "b@x.com"})

			_, err := repo.UpdateAccount(ctx, a.ID, repository.AccountFields{Email: "z@x.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.Accounts()[0].ID).To(Equal(a.ID))
			Expect(repo.Accounts()[0].Email).To(Equal("z@x.com"))
		})

		It("reports updates and deletes of missing ids as not found", func() {
			_, err := repo.UpdateAccount(ctx, "acc_missing", repository.AccountFields{Email: "a@x.com"})
			expectCode(err, internal.ErrCodeAccountNotFound)
			expectCode(repo.DeleteAccount(ctx, "acc_missing"), internal.ErrCodeAccountNotFound)
			Expect(persister.saves).To(BeZero())
		})

		It("finds accounts by email case-insensitively", func() {
			a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "Ann@Example.com"})
			found, ok := repo.FindAccountByEmail("  ann@example.COM ")
			Expect(ok).To(BeTrue())
			Expect(found.ID).To(Equal(a.ID))
		})

		It("counts admins in any letter case", func() {
			_, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com", Role: "Admin"})
			_, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "b@x.com", Role: "admin"})
			_, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "c@x.com"})
			Expect(repo.CountAdmins()).To(Equal(2))
		})
	})

	Describe("account delete policy", func() {
		var admin, user document.Account

		BeforeEach(func() {
			admin, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com", Role: "Admin"})
			user, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "b@x.com", Role: "User"})
		})

		It("refuses to delete the current user whatever the role", func() {
			Expect(repo.SetCurrentUser(ctx, user.ID)).To(Succeed())
			expectCode(repo.DeleteAccount(ctx, user.ID), internal.ErrCodeCannotDeleteSelf)

			Expect(repo.SetCurrentUser(ctx, admin.ID)).To(Succeed())
			expectCode(repo.DeleteAccount(ctx, admin.ID), internal.ErrCodeCannotDeleteSelf)
			Expect(repo.Accounts()).To(HaveLen(2))
		})

		It("refuses to delete the last admin", func() {
			Expect(repo.SetCurrentUser(ctx, user.ID)).To(Succeed())

			err := repo.DeleteAccount(ctx, admin.ID)
			expectCode(err, internal.ErrCodeLastAdmin)
			Expect(repo.CountAdmins()).To(Equal(1))
		})

		It("deletes an admin when another admin remains", func() {
			_, err := repo.CreateAccount(ctx, repository.AccountFields{Email: "c@x.com", Role: "ADMIN"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetCurrentUser(ctx, user.ID)).To(Succeed())

			Expect(repo.DeleteAccount(ctx, admin.ID)).To(Succeed())
			Expect(repo.CountAdmins()).To(Equal(1))
			_, ok := repo.FindAccount(admin.ID)
			Expect(ok).To(BeFalse())
			Expect(publisher.Types()).To(ContainElement("account.deleted"))
		})

		It("checks the policy without mutating", func() {
			Expect(repo.SetCurrentUser(ctx, admin.ID)).To(Succeed())
			saves := persister.saves

			Expect(repo.CheckAccountDeletable(user.ID)).To(Succeed())
			expectCode(repo.CheckAccountDeletable(admin.ID), internal.ErrCodeCannotDeleteSelf)
			Expect(persister.saves).To(Equal(saves))
			Expect(repo.Accounts()).To(HaveLen(2))
		})
	})

	Describe("current user", func() {
		It("sets, resolves and clears the reference", func() {
			a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com"})

			_, ok := repo.CurrentUser()
			Expect(ok).To(BeFalse())

			Expect(repo.SetCurrentUser(ctx, a.ID)).To(Succeed())
			current, ok := repo.CurrentUser()
			Expect(ok).To(BeTrue())
			Expect(current.ID).To(Equal(a.ID))

			Expect(repo.ClearCurrentUser(ctx)).To(Succeed())
			Expect(repo.Document().CurrentUserID).To(BeNil())
		})

		It("refuses to point at an unknown account", func() {
			expectCode(repo.SetCurrentUser(ctx, "acc_nope"), internal.ErrCodeAccountNotFound)
		})

		It("treats a dangling reference as signed out", func() {
			doc := document.Default()
			doc.CurrentUserID = document.Ref("acc_gone")
			repo = repository.New(doc, persister, nil, logger.Discard())
			_, ok := repo.CurrentUser()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("departments", func() {
		It("nulls every employee reference when a department is deleted", func() {
			eng, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
			ops, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Ops"})
			e1, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-1", DepartmentID: document.Ref(eng.ID)})
			e2, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-2", DepartmentID: document.Ref(eng.ID)})
			e3, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-3", DepartmentID: document.Ref(ops.ID)})
			Expect(repo.EmployeeCount(eng.ID)).To(Equal(2))
			saves := persister.saves

			Expect(repo.DeleteDepartment(ctx, eng.ID)).To(Succeed())

			Expect(persister.saves).To(Equal(saves + 1))
			Expect(repo.Departments()).To(ConsistOf(ops))
			Expect(repo.Employees()).To(HaveLen(3))
			for _, id := range []string{e1.ID, e2.ID} {
				e, ok := repo.FindEmployee(id)
				Expect(ok).To(BeTrue())
				Expect(e.DepartmentID).To(BeNil())
			}
			e, _ := repo.FindEmployee(e3.ID)
			Expect(document.Deref(e.DepartmentID)).To(Equal(ops.ID))
			Expect(repo.EmployeeCount(ops.ID)).To(Equal(1))
		})

		It("updates name and description", func() {
			d, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
			updated, err := repo.UpdateDepartment(ctx, d.ID, repository.DepartmentFields{Name: "Engineering", Description: "Builds"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Engineering"))
			_, err = repo.UpdateDepartment(ctx, "dept_x", repository.DepartmentFields{Name: "x"})
			expectCode(err, internal.ErrCodeDepartmentNotFound)
		})
	})

	Describe("employees and requests", func() {
		It("defaults statuses", func() {
			e, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-1"})
			q, _ := repo.CreateRequest(ctx, repository.RequestFields{Type: "Laptop"})
			Expect(e.ID).To(HavePrefix("emp_"))
			Expect(e.Status).To(Equal("Active"))
			Expect(q.ID).To(HavePrefix("req_"))
			Expect(q.Status).To(Equal("Pending"))
		})

		It("leaves requests dangling when their employee is deleted", func() {
			e, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-1"})
			q, _ := repo.CreateRequest(ctx, repository.RequestFields{Type: "Laptop", EmployeeID: document.Ref(e.ID)})

			Expect(repo.DeleteEmployee(ctx, e.ID)).To(Succeed())

			stored, ok := repo.FindRequest(q.ID)
			Expect(ok).To(BeTrue())
			Expect(document.Deref(stored.EmployeeID)).To(Equal(e.ID))
		})

		It("updates and deletes requests", func() {
			q, _ := repo.CreateRequest(ctx, repository.RequestFields{Type: "Laptop"})
			updated, err := repo.UpdateRequest(ctx, q.ID, repository.RequestFields{Type: "Laptop", Status: "Approved"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal("Approved"))

			Expect(repo.DeleteRequest(ctx, q.ID)).To(Succeed())
			expectCode(repo.DeleteRequest(ctx, q.ID), internal.ErrCodeRequestNotFound)
		})

		It("updates employees and reports missing ones", func() {
			e, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-1"})
			updated, err := repo.UpdateEmployee(ctx, e.ID, repository.EmployeeFields{EmployeeID: "E-1", Position: "Engineer", Status: "Inactive"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Position).To(Equal("Engineer"))
			Expect(updated.Status).To(Equal("Inactive"))

			_, err = repo.UpdateEmployee(ctx, "emp_x", repository.EmployeeFields{})
			expectCode(err, internal.ErrCodeEmployeeNotFound)
		})
	})

	Describe("by kind", func() {
		It("dispatches deletes and pre-checks", func() {
			d, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
			Expect(repo.Label(document.KindDepartment, d.ID)).To(Equal("Eng"))
			Expect(repo.CheckDeletable(document.KindDepartment, d.ID)).To(Succeed())
			Expect(repo.Delete(ctx, document.KindDepartment, d.ID)).To(Succeed())
			expectCode(repo.CheckDeletable(document.KindDepartment, d.ID), internal.ErrCodeDepartmentNotFound)
			expectCode(repo.Delete(ctx, document.Kind("widget"), "x"), internal.ErrCodeUnknownKind)
		})
	})

	Describe("persistence failures", func() {
		It("surfaces the save error as an internal error and publishes nothing", func() {
			persister.failError = errors.New("quota exceeded")

			_, err := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(errors.Unwrap(appErr)).To(MatchError("quota exceeded"))
			Expect(publisher.Types()).To(BeEmpty())
		})
	})

	Describe("scenarios", func() {
		It("guards the only admin against self-delete and last-admin delete", func() {
			a, err := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com", Role: "Admin"})
			Expect(err).NotTo(HaveOccurred())
			b, err := repo.CreateAccount(ctx, repository.AccountFields{Email: "b@x.com", Role: "User"})
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.SetCurrentUser(ctx, a.ID)).To(Succeed())
			expectCode(repo.DeleteAccount(ctx, a.ID), internal.ErrCodeCannotDeleteSelf)

			Expect(repo.SetCurrentUser(ctx, b.ID)).To(Succeed())
			expectCode(repo.DeleteAccount(ctx, a.ID), internal.ErrCodeLastAdmin)

			_, err = repo.CreateAccount(ctx, repository.AccountFields{Email: "c@x.com", Role: "Admin"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.DeleteAccount(ctx, a.ID)).To(Succeed())
		})

		It("unassigns employees of a deleted department without touching other counts", func() {
			eng, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
			hr, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "HR"})
			_, _ = repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "H-1", DepartmentID: document.Ref(hr.ID)})
			e, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-1", DepartmentID: document.Ref(eng.ID)})

			Expect(repo.DeleteDepartment(ctx, eng.ID)).To(Succeed())

			stored, _ := repo.FindEmployee(e.ID)
			Expect(stored.DepartmentID).To(BeNil())
			_, ok := repo.FindDepartment(eng.ID)
			Expect(ok).To(BeFalse())
			Expect(repo.EmployeeCount(hr.ID)).To(Equal(1))
		})
	})

	It("resets to an empty document", func() {
		_, _ = repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
		Expect(repo.Reset(ctx)).To(Succeed())
		Expect(repo.Document()).To(Equal(document.Default()))
	})
})
