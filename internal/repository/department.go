package repository

import (
	"context"
	"slices"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
)

type DepartmentFields struct {
	Name        string
	Description string
}

func errDepartmentNotFound() *internal.AppError {
	return internal.NewNotFoundError("Department not found.", internal.ErrCodeDepartmentNotFound)
}

func (r *Repository) Departments() []document.Department {
	return r.doc.Departments
}

func (r *Repository) departmentIndex(id string) int {
	return slices.IndexFunc(r.doc.Departments, func(d document.Department) bool { return d.ID == id })
}

func (r *Repository) FindDepartment(id string) (document.Department, bool) {
	if i := r.departmentIndex(id); i >= 0 {
		return r.doc.Departments[i], true
	}
	return document.Department{}, false
}

// EmployeeCount is the number of employees assigned to the department.
func (r *Repository) EmployeeCount(departmentID string) int {
	n := 0
	for _, e := range r.doc.Employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			n++
		}
	}
	return n
}

func (r *Repository) CreateDepartment(ctx context.Context, f DepartmentFields) (document.Department, error) {
	d := document.Department{
		ID: r.newID(prefixDepartment, func(id string) bool {
			_, ok := r.FindDepartment(id)
			return ok
		}),
		Name:        f.Name,
		Description: f.Description,
	}
	r.doc.Departments = append(r.doc.Departments, d)

	if err := r.commit(ctx, document.KindDepartment, events.ActionCreated, d.ID, d.Name); err != nil {
		return document.Department{}, err
	}
	return d, nil
}

func (r *Repository) UpdateDepartment(ctx context.Context, id string, f DepartmentFields) (document.Department, error) {
	i := r.departmentIndex(id)
	if i < 0 {
		return document.Department{}, errDepartmentNotFound()
	}

	d := &r.doc.Departments[i]
	d.Name = f.Name
	d.Description = f.Description
	updated := *d

	if err := r.commit(ctx, document.KindDepartment, events.ActionUpdated, id, updated.Name); err != nil {
		return document.Department{}, err
	}
	return updated, nil
}

// DeleteDepartment unassigns its employees instead of removing them.
func (r *Repository) DeleteDepartment(ctx context.Context, id string) error {
	i := r.departmentIndex(id)
	if i < 0 {
		return errDepartmentNotFound()
	}
	removed := r.doc.Departments[i]
	r.doc.Departments = slices.Delete(r.doc.Departments, i, i+1)

	for j := range r.doc.Employees {
		if e := &r.doc.Employees[j]; e.DepartmentID != nil && *e.DepartmentID == id {
			e.DepartmentID = nil
		}
	}

	return r.commit(ctx, document.KindDepartment, events.ActionDeleted, id, removed.Name)
}
