package form

import (
	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
)

// Lookup is the read side of the repository the form builders need.
type Lookup interface {
	Accounts() []document.Account
	Employees() []document.Employee
	Departments() []document.Department
	FindAccount(id string) (document.Account, bool)
	FindEmployee(id string) (document.Employee, bool)
	FindDepartment(id string) (document.Department, bool)
	FindRequest(id string) (document.Request, bool)
}

var (
	accountStatusOptions = []Option{
		{Value: document.StatusActive, Label: document.StatusActive},
		{Value: document.StatusInactive, Label: document.StatusInactive},
	}
	requestStatusOptions = []Option{
		{Value: document.StatusPending, Label: document.StatusPending},
		{Value: document.StatusApproved, Label: document.StatusApproved},
		{Value: document.StatusRejected, Label: document.StatusRejected},
	}
)

// Build returns the create form for kind, or the edit form of kind/id when id is set.
func Build(src Lookup, kind document.Kind, id string) (Descriptor, error) {
	if id == "" {
		switch kind {
		case document.KindAccount:
			return NewAccountForm(), nil
		case document.KindEmployee:
			return NewEmployeeForm(src), nil
		case document.KindDepartment:
			return NewDepartmentForm(), nil
		case document.KindRequest:
			return NewRequestForm(src), nil
		}
		return Descriptor{}, errUnknownKind(kind)
	}

	switch kind {
	case document.KindAccount:
		a, ok := src.FindAccount(id)
		if !ok {
			return Descriptor{}, internal.NewNotFoundError("Account not found.", internal.ErrCodeAccountNotFound)
		}
		return EditAccountForm(a), nil
	case document.KindEmployee:
		e, ok := src.FindEmployee(id)
		if !ok {
			return Descriptor{}, internal.NewNotFoundError("Employee not found.", internal.ErrCodeEmployeeNotFound)
		}
		return EditEmployeeForm(src, e), nil
	case document.KindDepartment:
		d, ok := src.FindDepartment(id)
		if !ok {
			return Descriptor{}, internal.NewNotFoundError("Department not found.", internal.ErrCodeDepartmentNotFound)
		}
		return EditDepartmentForm(d), nil
	case document.KindRequest:
		q, ok := src.FindRequest(id)
		if !ok {
			return Descriptor{}, internal.NewNotFoundError("Request not found.", internal.ErrCodeRequestNotFound)
		}
		return EditRequestForm(src, q), nil
	}
	return Descriptor{}, errUnknownKind(kind)
}

func errUnknownKind(kind document.Kind) *internal.AppError {
	return internal.NewValidationError("Unknown entity kind "+string(kind)+".", internal.ErrCodeUnknownKind)
}

func accountFields(a document.Account, passwordRequired bool) []Field {
	return []Field{
		{Name: "title", Label: "Title", Kind: KindText, Value: a.Title},
		{Name: "firstName", Label: "First Name", Kind: KindText, Required: true, Value: a.FirstName},
		{Name: "lastName", Label: "Last Name", Kind: KindText, Value: a.LastName},
		{Name: "email", Label: "Email", Kind: KindEmail, Required: true, Value: a.Email},
		{Name: "role", Label: "Role", Kind: KindText, Value: a.Role},
		{Name: "status", Label: "Status", Kind: KindSelect, Options: withCurrent(accountStatusOptions, a.Status), Value: a.Status},
		{Name: "password", Label: "Password", Kind: KindPassword, Required: passwordRequired},
	}
}

func NewAccountForm() Descriptor {
	return Descriptor{
		Title:  "Add Account",
		Kind:   document.KindAccount,
		Mode:   ModeCreate,
		Fields: accountFields(document.Account{Role: document.RoleUser, Status: document.StatusActive}, true),
	}
}

// EditAccountForm never echoes the stored password; a blank submission keeps it.
func EditAccountForm(a document.Account) Descriptor {
	return Descriptor{
		Title:    "Edit Account",
		Kind:     document.KindAccount,
		Mode:     ModeEdit,
		TargetID: a.ID,
		Fields:   accountFields(a, false),
	}
}

func employeeFields(src Lookup, e document.Employee) []Field {
	accounts := referenceOptions(src.Accounts(),
		func(a document.Account) string { return a.ID },
		func(a document.Account) string { return a.Email })
	departments := referenceOptions(src.Departments(),
		func(d document.Department) string { return d.ID },
		func(d document.Department) string { return d.Name })

	return []Field{
		{Name: "employeeId", Label: "Employee ID", Kind: KindText, Required: true, Value: e.EmployeeID},
		{Name: "accountId", Label: "Account (by email)", Kind: KindSelect, Options: accounts, Value: refValue(accounts, e.AccountID)},
		{Name: "position", Label: "Position", Kind: KindText, Value: e.Position},
		{Name: "departmentId", Label: "Department", Kind: KindSelect, Options: departments, Value: refValue(departments, e.DepartmentID)},
		{Name: "hireDate", Label: "Hire Date", Kind: KindDate, Value: e.HireDate},
		{Name: "status", Label: "Status", Kind: KindSelect, Options: withCurrent(accountStatusOptions, e.Status), Value: e.Status},
	}
}

func NewEmployeeForm(src Lookup) Descriptor {
	return Descriptor{
		Title:  "Add Employee",
		Kind:   document.KindEmployee,
		Mode:   ModeCreate,
		Fields: employeeFields(src, document.Employee{Status: document.StatusActive}),
	}
}

func EditEmployeeForm(src Lookup, e document.Employee) Descriptor {
	return Descriptor{
		Title:    "Edit Employee",
		Kind:     document.KindEmployee,
		Mode:     ModeEdit,
		TargetID: e.ID,
		Fields:   employeeFields(src, e),
	}
}

func departmentFields(d document.Department) []Field {
	return []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true, Value: d.Name},
		{Name: "description", Label: "Description", Kind: KindTextArea, MaxLength: TextAreaMaxLength, Value: d.Description},
	}
}

func NewDepartmentForm() Descriptor {
	return Descriptor{
		Title:  "Add Department",
		Kind:   document.KindDepartment,
		Mode:   ModeCreate,
		Fields: departmentFields(document.Department{}),
	}
}

func EditDepartmentForm(d document.Department) Descriptor {
	return Descriptor{
		Title:    "Edit Department",
		Kind:     document.KindDepartment,
		Mode:     ModeEdit,
		TargetID: d.ID,
		Fields:   departmentFields(d),
	}
}

func requestFields(src Lookup, q document.Request) []Field {
	employees := referenceOptions(src.Employees(),
		func(e document.Employee) string { return e.ID },
		func(e document.Employee) string { return e.EmployeeID })

	return []Field{
		{Name: "type", Label: "Type", Kind: KindText, Required: true, Value: q.Type},
		{Name: "employeeId", Label: "Employee", Kind: KindSelect, Options: employees, Value: refValue(employees, q.EmployeeID)},
		{Name: "items", Label: "Items", Kind: KindTextArea, MaxLength: TextAreaMaxLength, Value: q.Items},
		{Name: "status", Label: "Status", Kind: KindSelect, Options: withCurrent(requestStatusOptions, q.Status), Value: q.Status},
	}
}

func NewRequestForm(src Lookup) Descriptor {
	return Descriptor{
		Title:  "Add Request",
		Kind:   document.KindRequest,
		Mode:   ModeCreate,
		Fields: requestFields(src, document.Request{Status: document.StatusPending}),
	}
}

func EditRequestForm(src Lookup, q document.Request) Descriptor {
	return Descriptor{
		Title:    "Edit Request",
		Kind:     document.KindRequest,
		Mode:     ModeEdit,
		TargetID: q.ID,
		Fields:   requestFields(src, q),
	}
}
