package view

import (
	"fmt"
	"strconv"

	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
)

// Source is the read side of the repository the renderers need.
type Source interface {
	CurrentUser() (document.Account, bool)
	Accounts() []document.Account
	Employees() []document.Employee
	Departments() []document.Department
	Requests() []document.Request
	FindAccount(id string) (document.Account, bool)
	FindEmployee(id string) (document.Employee, bool)
	FindDepartment(id string) (document.Department, bool)
	EmployeeCount(departmentID string) int
}

var accountColumns = []string{"Title", "First Name", "Last Name", "Email", "Role", "Status"}

// Render builds the page for name from the current data.
func Render(src Source, name Name) Page {
	switch name {
	case Dashboard:
		return renderDashboard(src)
	case Profile:
		return renderProfile(src)
	case Accounts:
		return Page{View: Accounts, Title: "Accounts", Table: accountTable(src.Accounts(), "")}
	case Employees:
		return renderEmployees(src)
	case Departments:
		return renderDepartments(src)
	case Requests:
		return renderRequests(src)
	case Auth:
		return Page{View: Auth, Title: "Sign in", Description: "Log in with your email and password, or register a new account."}
	default:
		return Page{View: Landing, Title: AppName, Description: "Welcome to " + AppName + "."}
	}
}

func renderDashboard(src Source) Page {
	page := Page{View: Dashboard, Title: "Dashboard"}
	user, ok := src.CurrentUser()
	if !ok {
		page.Greeting = "Hello!"
		page.Description = "Welcome to " + AppName + "."
		return page
	}
	page.Greeting = fmt.Sprintf("Hello, %s!", user.FullName())
	page.Description = fmt.Sprintf("Welcome back to %s. You are logged in as %s with the role of %s.", AppName, user.Email, user.Role)
	return page
}

func renderProfile(src Source) Page {
	page := Page{View: Profile, Title: "Profile"}
	user, ok := src.CurrentUser()
	if !ok {
		page.Description = "No user info found."
		return page
	}
	page.Profile = &ProfileCard{
		Title:  orDash(user.Title),
		Name:   user.FirstName + " " + user.LastName,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}
	page.Table = accountTable(src.Accounts(), user.ID)
	return page
}

// accountTable lists every account except skipID.
func accountTable(accounts []document.Account, skipID string) *Table {
	t := &Table{Columns: accountColumns, Rows: make([]Row, 0, len(accounts))}
	for _, a := range accounts {
		if a.ID == skipID {
			continue
		}
		badge := StatusBadge(a.Status)
		t.Rows = append(t.Rows, Row{
			ID:     a.ID,
			Cells:  []string{orDash(a.Title), a.FirstName, a.LastName, a.Email, a.Role},
			Status: &badge,
		})
	}
	return t
}

func renderEmployees(src Source) Page {
	employees := src.Employees()
	t := &Table{
		Columns: []string{"Employee ID", "Account", "Position", "Department", "Hire Date", "Status"},
		Rows:    make([]Row, 0, len(employees)),
	}
	for _, e := range employees {
		account := "-"
		if a, ok := src.FindAccount(document.Deref(e.AccountID)); ok {
			account = a.Email
		}
		department := "-"
		if d, ok := src.FindDepartment(document.Deref(e.DepartmentID)); ok {
			department = d.Name
		}
		badge := StatusBadge(e.Status)
		t.Rows = append(t.Rows, Row{
			ID:     e.ID,
			Cells:  []string{e.EmployeeID, account, orDash(e.Position), department, orDash(e.HireDate)},
			Status: &badge,
		})
	}
	return Page{View: Employees, Title: "Employees", Table: t}
}

func renderDepartments(src Source) Page {
	departments := src.Departments()
	t := &Table{
		Columns: []string{"Name", "Description", "Employees"},
		Rows:    make([]Row, 0, len(departments)),
	}
	for _, d := range departments {
		t.Rows = append(t.Rows, Row{
			ID:    d.ID,
			Cells: []string{d.Name, orDash(d.Description), strconv.Itoa(src.EmployeeCount(d.ID))},
		})
	}
	return Page{View: Departments, Title: "Departments", Table: t}
}

func renderRequests(src Source) Page {
	requests := src.Requests()
	t := &Table{
		Columns: []string{"Type", "Employee", "Items", "Status"},
		Rows:    make([]Row, 0, len(requests)),
	}
	for _, q := range requests {
		employee := "-"
		if e, ok := src.FindEmployee(document.Deref(q.EmployeeID)); ok {
			employee = e.EmployeeID
		}
		badge := StatusBadge(q.Status)
		t.Rows = append(t.Rows, Row{
			ID:     q.ID,
			Cells:  []string{orDash(q.Type), employee, orDash(q.Items)},
			Status: &badge,
		})
	}
	return Page{View: Requests, Title: "Requests", Table: t}
}
