package form

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/common/validation"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/view"
)

// Repository is everything a commit can write to.
type Repository interface {
	Lookup
	CreateAccount(ctx context.Context, f repository.AccountFields) (document.Account, error)
	UpdateAccount(ctx context.Context, id string, f repository.AccountFields) (document.Account, error)
	CreateEmployee(ctx context.Context, f repository.EmployeeFields) (document.Employee, error)
	UpdateEmployee(ctx context.Context, id string, f repository.EmployeeFields) (document.Employee, error)
	CreateDepartment(ctx context.Context, f repository.DepartmentFields) (document.Department, error)
	UpdateDepartment(ctx context.Context, id string, f repository.DepartmentFields) (document.Department, error)
	CreateRequest(ctx context.Context, f repository.RequestFields) (document.Request, error)
	UpdateRequest(ctx context.Context, id string, f repository.RequestFields) (document.Request, error)
}

// Result describes a successful commit and the views that now show stale data.
type Result struct {
	Kind    document.Kind `json:"kind"`
	Mode    Mode          `json:"mode"`
	ID      string        `json:"id"`
	Refresh []view.Name   `json:"refresh"`
}

// Engine holds at most one open form.
type Engine struct {
	repo   Repository
	active *Descriptor
	logger *slog.Logger
}

func NewEngine(repo Repository, logger *slog.Logger) *Engine {
	return &Engine{repo: repo, logger: logger}
}

// Open makes d the active form. Only one form can be open at a time.
func (e *Engine) Open(d Descriptor) error {
	if e.active != nil {
		return internal.ErrModalOpen()
	}
	e.active = &d
	e.logger.Debug("form opened", "kind", d.Kind, "mode", d.Mode, "target", d.TargetID)
	return nil
}

func (e *Engine) Active() (Descriptor, bool) {
	if e.active == nil {
		return Descriptor{}, false
	}
	return *e.active, true
}

// Collect reads input against the active form.
func (e *Engine) Collect(input map[string]string) (Values, error) {
	if e.active == nil {
		return nil, internal.ErrNoActiveModal()
	}
	return Collect(*e.active, input), nil
}

// Close discards the active form without committing.
func (e *Engine) Close() {
	if e.active != nil {
		e.logger.Debug("form closed", "kind", e.active.Kind, "mode", e.active.Mode)
	}
	e.active = nil
}

// Commit validates input, writes it through the repository and closes the form. On any error the
// form stays open.
func (e *Engine) Commit(ctx context.Context, input map[string]string) (Result, error) {
	if e.active == nil {
		return Result{}, internal.ErrNoActiveModal()
	}
	d := *e.active
	values := Collect(d, input)

	if err := Validate(d, values); err != nil {
		return Result{}, err
	}

	id, err := e.dispatch(ctx, d, values)
	if err != nil {
		e.logger.Debug("form commit rejected", "kind", d.Kind, "mode", d.Mode, "error", err)
		return Result{}, err
	}

	e.active = nil
	return Result{Kind: d.Kind, Mode: d.Mode, ID: id, Refresh: AffectedViews(d.Kind)}, nil
}

// Validate checks required fields, length limits, email and date syntax and select options. Fields absent from
// values count as empty.
func Validate(d Descriptor, values Values) *internal.AppError {
	v := validation.NewValidator()
	for _, f := range d.Fields {
		fv := v.Field(f.Name, values.Get(f.Name)).Labeled(f.Label)
		if f.Required {
			fv.Required()
		}
		if f.MaxLength > 0 {
			fv.MaxLength(f.MaxLength)
		}
		switch f.Kind {
		case KindEmail:
			fv.Email()
		case KindDate:
			fv.Date()
		case KindSelect:
			fv.OneOf(optionValues(f.Options)...)
		}
	}
	return v.Validate()
}

func (e *Engine) dispatch(ctx context.Context, d Descriptor, v Values) (string, error) {
	switch d.Kind {
	case document.KindAccount:
		f := repository.AccountFields{
			Title:     v.Get("title"),
			FirstName: v.Get("firstName"),
			LastName:  v.Get("lastName"),
			Email:     v.Get("email"),
			Role:      v.Get("role"),
			Status:    v.Get("status"),
			Password:  v.Get("password"),
		}
		if d.Mode == ModeEdit {
			a, err := e.repo.UpdateAccount(ctx, d.TargetID, f)
			return a.ID, err
		}
		a, err := e.repo.CreateAccount(ctx, f)
		return a.ID, err

	case document.KindEmployee:
		f := repository.EmployeeFields{
			EmployeeID:   v.Get("employeeId"),
			AccountID:    v.Ref("accountId"),
			Position:     v.Get("position"),
			DepartmentID: v.Ref("departmentId"),
			HireDate:     v.Get("hireDate"),
			Status:       v.Get("status"),
		}
		if d.Mode == ModeEdit {
			emp, err := e.repo.UpdateEmployee(ctx, d.TargetID, f)
			return emp.ID, err
		}
		emp, err := e.repo.CreateEmployee(ctx, f)
		return emp.ID, err

	case document.KindDepartment:
		f := repository.DepartmentFields{
			Name:        v.Get("name"),
			Description: v.Get("description"),
		}
		if d.Mode == ModeEdit {
			dept, err := e.repo.UpdateDepartment(ctx, d.TargetID, f)
			return dept.ID, err
		}
		dept, err := e.repo.CreateDepartment(ctx, f)
		return dept.ID, err

	case document.KindRequest:
		f := repository.RequestFields{
			Type:       v.Get("type"),
			EmployeeID: v.Ref("employeeId"),
			Items:      v.Get("items"),
			Status:     v.Get("status"),
		}
		if d.Mode == ModeEdit {
			q, err := e.repo.UpdateRequest(ctx, d.TargetID, f)
			return q.ID, err
		}
		q, err := e.repo.CreateRequest(ctx, f)
		return q.ID, err
	}
	return "", errUnknownKind(d.Kind)
}

// AffectedViews lists the views that display data a commit of kind can change.
func AffectedViews(kind document.Kind) []view.Name {
	switch kind {
	case document.KindAccount:
		return []view.Name{view.Accounts, view.Profile, view.Dashboard, view.Employees}
	case document.KindEmployee:
		return []view.Name{view.Employees, view.Departments, view.Requests}
	case document.KindDepartment:
		return []view.Name{view.Departments, view.Employees}
	case document.KindRequest:
		return []view.Name{view.Requests}
	}
	return nil
}
