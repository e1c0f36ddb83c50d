package form_test

import (
	"context"
	"strings"
	"testing"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/form"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/view"
	"github.com/frahmantamala/hrconsole/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestForm(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Form Suite")
}

type nopPersister struct{}

func (nopPersister) Save(context.Context, *document.Document) error { return nil }

func fieldNames(d form.Descriptor) []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

func validationFields(err error) []string {
	GinkgoHelper()
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue())
	details, ok := appErr.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	fields := make([]string, 0, len(details.Errors))
	for _, e := range details.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

var _ = Describe("Collect", func() {
	It("trims declared fields and skips absent ones", func() {
		values := form.Collect(form.NewDepartmentForm(), map[string]string{
			"name":    "  Eng  ",
			"unknown": "ignored",
		})
		Expect(values).To(Equal(form.Values{"name": "Eng"}))
	})

	It("turns empty references into null", func() {
		values := form.Values{"accountId": "", "departmentId": "dept_1"}
		Expect(values.Ref("accountId")).To(BeNil())
		Expect(*values.Ref("departmentId")).To(Equal("dept_1"))
	})
})

var _ = Describe("Builders", func() {
	var (
		ctx  context.Context
		repo *repository.Repository
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = repository.New(document.Default(), nopPersister{}, nil, logger.Discard())
	})

	It("declares the account fields in order with defaults", func() {
		d := form.NewAccountForm()
		Expect(d.Title).To(Equal("Add Account"))
		Expect(d.Mode).To(Equal(form.ModeCreate))
		Expect(fieldNames(d)).To(Equal([]string{"title", "firstName", "lastName", "email", "role", "status", "password"}))

		role, _ := d.Field("role")
		Expect(role.Value).To(Equal("User"))
		password, _ := d.Field("password")
		Expect(password.Required).To(BeTrue())
		Expect(password.Kind).To(Equal(form.KindPassword))
	})

	It("leaves the password blank and optional when editing", func() {
		a, _ := repo.CreateAccount(ctx, repository.AccountFields{FirstName: "Ann", Email: "a@x.com", Password: "secret", Status: "Pending"})

		d, err := form.Build(repo, document.KindAccount, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Mode).To(Equal(form.ModeEdit))
		Expect(d.TargetID).To(Equal(a.ID))

		password, _ := d.Field("password")
		Expect(password.Value).To(BeEmpty())
		Expect(password.Required).To(BeFalse())

		status, _ := d.Field("status")
		Expect(status.Value).To(Equal("Pending"))
		Expect(status.Options).To(ContainElement(form.Option{Value: "Pending", Label: "Pending"}))
	})

	It("offers reference selects with a leading blank option", func() {
		a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com"})
		dept, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})

		d := form.NewEmployeeForm(repo)
		accounts, _ := d.Field("accountId")
		Expect(accounts.Options).To(Equal([]form.Option{{Value: "", Label: "-"}, {Value: a.ID, Label: "a@x.com"}}))
		departments, _ := d.Field("departmentId")
		Expect(departments.Options).To(Equal([]form.Option{{Value: "", Label: "-"}, {Value: dept.ID, Label: "Eng"}}))
	})

	It("shows a dangling reference as none", func() {
		q, _ := repo.CreateRequest(ctx, repository.RequestFields{Type: "Laptop", EmployeeID: document.Ref("emp_gone")})

		d, err := form.Build(repo, document.KindRequest, q.ID)
		Expect(err).NotTo(HaveOccurred())
		employee, _ := d.Field("employeeId")
		Expect(employee.Value).To(BeEmpty())
	})

	It("reports unknown kinds and missing records", func() {
		_, err := form.Build(repo, document.Kind("widget"), "")
		Expect(internal.HasCode(err, internal.ErrCodeUnknownKind)).To(BeTrue())

		_, err = form.Build(repo, document.KindDepartment, "dept_missing")
		Expect(internal.HasCode(err, internal.ErrCodeDepartmentNotFound)).To(BeTrue())
	})
})

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		repo   *repository.Repository
		engine *form.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = repository.New(document.Default(), nopPersister{}, nil, logger.Discard())
		engine = form.NewEngine(repo, logger.Discard())
	})

	It("allows only one open form", func() {
		Expect(engine.Open(form.NewDepartmentForm())).To(Succeed())

		err := engine.Open(form.NewAccountForm())
		Expect(internal.HasCode(err, internal.ErrCodeModalOpen)).To(BeTrue())

		active, ok := engine.Active()
		Expect(ok).To(BeTrue())
		Expect(active.Kind).To(Equal(document.KindDepartment))
	})

	It("refuses to commit or collect without an open form", func() {
		_, err := engine.Commit(ctx, map[string]string{"name": "Eng"})
		Expect(internal.HasCode(err, internal.ErrCodeNoActiveModal)).To(BeTrue())

		_, err = engine.Collect(map[string]string{})
		Expect(internal.HasCode(err, internal.ErrCodeNoActiveModal)).To(BeTrue())
	})

	It("discards the form on close", func() {
		Expect(engine.Open(form.NewDepartmentForm())).To(Succeed())
		engine.Close()
		_, ok := engine.Active()
		Expect(ok).To(BeFalse())
		Expect(repo.Departments()).To(BeEmpty())
	})

	It("creates an account, closes the form and names the stale views", func() {
		Expect(engine.Open(form.NewAccountForm())).To(Succeed())

		result, err := engine.Commit(ctx, map[string]string{
			"title":     "",
			"firstName": " Ann ",
			"lastName":  "Lee",
			"email":     "ann@x.com",
			"role":      "",
			"status":    "Active",
			"password":  "pw",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Kind).To(Equal(document.KindAccount))
		Expect(result.Refresh).To(Equal([]view.Name{view.Accounts, view.Profile, view.Dashboard, view.Employees}))

		a, ok := repo.FindAccount(result.ID)
		Expect(ok).To(BeTrue())
		Expect(a.FirstName).To(Equal("Ann"))
		Expect(a.Role).To(Equal("User"))

		_, open := engine.Active()
		Expect(open).To(BeFalse())
	})

	It("keeps the form open when validation fails", func() {
		Expect(engine.Open(form.NewAccountForm())).To(Succeed())

		_, err := engine.Commit(ctx, map[string]string{
			"firstName": "",
			"email":     "nope",
			"status":    "Retired",
		})
		Expect(validationFields(err)).To(ConsistOf("firstName", "email", "status", "password"))

		_, open := engine.Active()
		Expect(open).To(BeTrue())
		Expect(repo.Accounts()).To(BeEmpty())
	})

	It("keeps the form open on a duplicate email", func() {
		_, _ = repo.CreateAccount(ctx, repository.AccountFields{Email: "ann@x.com"})
		Expect(engine.Open(form.NewAccountForm())).To(Succeed())

		_, err := engine.Commit(ctx, map[string]string{"firstName": "Ann", "email": "ANN@x.com", "password": "pw"})
		Expect(internal.HasCode(err, internal.ErrCodeEmailExists)).To(BeTrue())

		_, open := engine.Active()
		Expect(open).To(BeTrue())
	})

	It("edits an account without clearing its password", func() {
		a, _ := repo.CreateAccount(ctx, repository.AccountFields{FirstName: "Ann", Email: "ann@x.com", Password: "secret"})
		d, err := form.Build(repo, document.KindAccount, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(engine.Open(d)).To(Succeed())

		_, err = engine.Commit(ctx, map[string]string{"firstName": "Annie", "email": "ann@x.com", "password": ""})
		Expect(err).NotTo(HaveOccurred())

		updated, _ := repo.FindAccount(a.ID)
		Expect(updated.FirstName).To(Equal("Annie"))
		Expect(updated.Password).To(Equal("secret"))
	})

	It("decodes employee references and dates", func() {
		dept, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
		Expect(engine.Open(form.NewEmployeeForm(repo))).To(Succeed())

		result, err := engine.Commit(ctx, map[string]string{
			"employeeId":   "E-1",
			"accountId":    "",
			"departmentId": dept.ID,
			"hireDate":     "2024-02-01",
			"status":       "",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Refresh).To(Equal([]view.Name{view.Employees, view.Departments, view.Requests}))

		e, _ := repo.FindEmployee(result.ID)
		Expect(e.AccountID).To(BeNil())
		Expect(document.Deref(e.DepartmentID)).To(Equal(dept.ID))
		Expect(e.Status).To(Equal("Active"))
	})

	It("rejects a malformed hire date and an unknown department", func() {
		Expect(engine.Open(form.NewEmployeeForm(repo))).To(Succeed())

		_, err := engine.Commit(ctx, map[string]string{
			"employeeId":   "E-1",
			"departmentId": "dept_nope",
			"hireDate":     "01/02/2024",
		})
		Expect(validationFields(err)).To(ConsistOf("departmentId", "hireDate"))
	})

	It("caps free-text fields", func() {
		Expect(engine.Open(form.NewDepartmentForm())).To(Succeed())
		active, _ := engine.Active()
		description, _ := active.Field("description")
		Expect(description.MaxLength).To(Equal(form.TextAreaMaxLength))

		_, err := engine.Commit(ctx, map[string]string{
			"name":        "Eng",
			"description": strings.Repeat("x", form.TextAreaMaxLength+1),
		})
		Expect(validationFields(err)).To(ConsistOf("description"))
		Expect(repo.Departments()).To(BeEmpty())

		_, err = engine.Commit(ctx, map[string]string{
			"name":        "Eng",
			"description": strings.Repeat("x", form.TextAreaMaxLength),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.Departments()).To(HaveLen(1))
	})

	It("edits departments and requests", func() {
		dept, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
		d, _ := form.Build(repo, document.KindDepartment, dept.ID)
		Expect(engine.Open(d)).To(Succeed())
		result, err := engine.Commit(ctx, map[string]string{"name": "Engineering", "description": "Builds"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Refresh).To(Equal([]view.Name{view.Departments, view.Employees}))

		Expect(engine.Open(form.NewRequestForm(repo))).To(Succeed())
		result, err = engine.Commit(ctx, map[string]string{"type": "Laptop", "items": "1x laptop"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Refresh).To(Equal([]view.Name{view.Requests}))
		q, _ := repo.FindRequest(result.ID)
		Expect(q.Status).To(Equal("Pending"))
		Expect(q.EmployeeID).To(BeNil())
	})
})
