package repository

import (
	"context"
	"slices"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
)

type EmployeeFields struct {
	EmployeeID   string
	AccountID    *string
	Position     string
	DepartmentID *string
	HireDate     string
	Status       string
}

func errEmployeeNotFound() *internal.AppError {
	return internal.NewNotFoundError("Employee not found.", internal.ErrCodeEmployeeNotFound)
}

func (r *Repository) Employees() []document.Employee {
	return r.doc.Employees
}

func (r *Repository) employeeIndex(id string) int {
	return slices.IndexFunc(r.doc.Employees, func(e document.Employee) bool { return e.ID == id })
}

func (r *Repository) FindEmployee(id string) (document.Employee, bool) {
	if i := r.employeeIndex(id); i >= 0 {
		return r.doc.Employees[i], true
	}
	return document.Employee{}, false
}

func (r *Repository) CreateEmployee(ctx context.Context, f EmployeeFields) (document.Employee, error) {
	e := document.Employee{
		ID: r.newID(prefixEmployee, func(id string) bool {
			_, ok := r.FindEmployee(id)
			return ok
		}),
		EmployeeID:   f.EmployeeID,
		AccountID:    f.AccountID,
		Position:     f.Position,
		DepartmentID: f.DepartmentID,
		HireDate:     f.HireDate,
		Status:       orDefault(f.Status, document.StatusActive),
	}
	r.doc.Employees = append(r.doc.Employees, e)

	if err := r.commit(ctx, document.KindEmployee, events.ActionCreated, e.ID, e.EmployeeID); err != nil {
		return document.Employee{}, err
	}
	return e, nil
}

func (r *Repository) UpdateEmployee(ctx context.Context, id string, f EmployeeFields) (document.Employee, error) {
	i := r.employeeIndex(id)
	if i < 0 {
		return document.Employee{}, errEmployeeNotFound()
	}

	e := &r.doc.Employees[i]
	e.EmployeeID = f.EmployeeID
	e.AccountID = f.AccountID
	e.Position = f.Position
	e.DepartmentID = f.DepartmentID
	e.HireDate = f.HireDate
	e.Status = orDefault(f.Status, document.StatusActive)
	updated := *e

	if err := r.commit(ctx, document.KindEmployee, events.ActionUpdated, id, updated.EmployeeID); err != nil {
		return document.Employee{}, err
	}
	return updated, nil
}

// DeleteEmployee leaves requests that reference the employee dangling.
func (r *Repository) DeleteEmployee(ctx context.Context, id string) error {
	i := r.employeeIndex(id)
	if i < 0 {
		return errEmployeeNotFound()
	}
	removed := r.doc.Employees[i]
	r.doc.Employees = slices.Delete(r.doc.Employees, i, i+1)

	return r.commit(ctx, document.KindEmployee, events.ActionDeleted, id, removed.EmployeeID)
}
