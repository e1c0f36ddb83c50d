package view_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/view"
	"github.com/frahmantamala/hrconsole/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestView(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "View Suite")
}

type nopPersister struct{}

func (nopPersister) Save(context.Context, *document.Document) error { return nil }

var _ = Describe("StatusBadge", func() {
	DescribeTable("maps statuses to classes",
		func(status, label, class string) {
			Expect(view.StatusBadge(status)).To(Equal(view.Badge{Label: label, Class: class}))
		},
		Entry("active", "Active", "Active", view.BadgeActive),
		Entry("active in any case", "ACTIVE", "ACTIVE", view.BadgeActive),
		Entry("inactive", "Inactive", "Inactive", view.BadgeInactive),
		Entry("approved falls back to pending", "Approved", "Approved", view.BadgePending),
		Entry("empty", "", "Pending", view.BadgePending),
	)
})

var _ = Describe("ParseName", func() {
	It("accepts the eight views only", func() {
		for _, n := range view.Names() {
			parsed, ok := view.ParseName(string(n))
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(n))
		}
		_, ok := view.ParseName("settings")
		Expect(ok).To(BeFalse())
		Expect(view.Landing.RequiresUser()).To(BeFalse())
		Expect(view.Accounts.RequiresUser()).To(BeTrue())
	})
})

var _ = Describe("Rendering", func() {
	var (
		ctx  context.Context
		repo *repository.Repository
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = repository.New(document.Default(), nopPersister{}, nil, logger.Discard())
	})

	It("greets an anonymous visitor", func() {
		page := view.Render(repo, view.Dashboard)
		Expect(page.Greeting).To(Equal("Hello!"))
	})

	It("greets the current user by name or email local part", func() {
		a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "ann.lee@x.com", Role: "Admin"})
		Expect(repo.SetCurrentUser(ctx, a.ID)).To(Succeed())

		page := view.Render(repo, view.Dashboard)
		Expect(page.Greeting).To(Equal("Hello, ann.lee!"))
		Expect(page.Description).To(ContainSubstring("logged in as ann.lee@x.com with the role of Admin"))

		_, _ = repo.UpdateAccount(ctx, a.ID, repository.AccountFields{FirstName: "Ann", LastName: "Lee", Email: a.Email, Role: "Admin"})
		Expect(view.Render(repo, view.Dashboard).Greeting).To(Equal("Hello, Ann Lee!"))
	})

	It("shows the profile card and every other account", func() {
		a, _ := repo.CreateAccount(ctx, repository.AccountFields{FirstName: "Ann", Email: "a@x.com"})
		b, _ := repo.CreateAccount(ctx, repository.AccountFields{FirstName: "Bea", Email: "b@x.com", Title: "Dr"})
		Expect(repo.SetCurrentUser(ctx, a.ID)).To(Succeed())

		page := view.Render(repo, view.Profile)
		Expect(page.Profile.Title).To(Equal("-"))
		Expect(page.Profile.Email).To(Equal("a@x.com"))
		Expect(page.Table.Rows).To(HaveLen(1))
		Expect(page.Table.Rows[0].ID).To(Equal(b.ID))
		Expect(page.Table.Rows[0].Cells[0]).To(Equal("Dr"))
	})

	It("says so when nobody is signed in on the profile", func() {
		page := view.Render(repo, view.Profile)
		Expect(page.Profile).To(BeNil())
		Expect(page.Description).To(Equal("No user info found."))
	})

	It("resolves references and falls back to a dash", func() {
		a, _ := repo.CreateAccount(ctx, repository.AccountFields{Email: "a@x.com"})
		dept, _ := repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
		linked, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{
			EmployeeID: "E-1", AccountID: document.Ref(a.ID), DepartmentID: document.Ref(dept.ID), Position: "Dev", HireDate: "2024-01-02",
		})
		_, _ = repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-2"})

		page := view.Render(repo, view.Employees)
		Expect(page.Table.Rows).To(HaveLen(2))
		Expect(page.Table.Rows[0].ID).To(Equal(linked.ID))
		Expect(page.Table.Rows[0].Cells).To(Equal([]string{"E-1", "a@x.com", "Dev", "Eng", "2024-01-02"}))
		Expect(page.Table.Rows[0].Status.Class).To(Equal(view.BadgeActive))
		Expect(page.Table.Rows[1].Cells).To(Equal([]string{"E-2", "-", "-", "-", "-"}))

		departments := view.Render(repo, view.Departments)
		Expect(departments.Table.Rows[0].Cells).To(Equal([]string{"Eng", "-", "1"}))
	})

	It("renders a request whose employee was deleted with a dash", func() {
		e, _ := repo.CreateEmployee(ctx, repository.EmployeeFields{EmployeeID: "E-1"})
		q, _ := repo.CreateRequest(ctx, repository.RequestFields{Type: "Laptop", EmployeeID: document.Ref(e.ID)})
		Expect(view.Render(repo, view.Requests).Table.Rows[0].Cells[1]).To(Equal("E-1"))

		Expect(repo.DeleteEmployee(ctx, e.ID)).To(Succeed())

		page := view.Render(repo, view.Requests)
		Expect(page.Table.Rows).To(HaveLen(1))
		Expect(page.Table.Rows[0].ID).To(Equal(q.ID))
		Expect(page.Table.Rows[0].Cells).To(Equal([]string{"Laptop", "-", "-"}))
		Expect(page.Table.Rows[0].Status.Label).To(Equal("Pending"))
	})
})

var _ = Describe("Router", func() {
	var (
		ctx    context.Context
		repo   *repository.Repository
		router *view.Router
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = repository.New(document.Default(), nopPersister{}, nil, logger.Discard())
		router = view.NewRouter(repo, logger.Discard())
	})

	It("starts on the landing view", func() {
		Expect(router.Current()).To(Equal(view.Landing))
	})

	It("re-renders the current view only when it is affected", func() {
		router.Show(view.Departments)
		Expect(router.Page().Table.Rows).To(BeEmpty())

		_, _ = repo.CreateDepartment(ctx, repository.DepartmentFields{Name: "Eng"})
		Expect(router.Page().Table.Rows).To(BeEmpty())

		Expect(router.Refresh(view.Requests)).To(BeFalse())
		Expect(router.Page().Table.Rows).To(BeEmpty())

		Expect(router.Refresh(view.Departments, view.Employees)).To(BeTrue())
		Expect(router.Page().Table.Rows).To(HaveLen(1))
	})
})
