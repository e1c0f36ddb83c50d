package repository

import (
	"context"
	"slices"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
)

type RequestFields struct {
	Type       string
	EmployeeID *string
	Items      string
	Status     string
}

func errRequestNotFound() *internal.AppError {
	return internal.NewNotFoundError("Request not found.", internal.ErrCodeRequestNotFound)
}

func (r *Repository) Requests() []document.Request {
	return r.doc.Requests
}

func (r *Repository) requestIndex(id string) int {
	return slices.IndexFunc(r.doc.Requests, func(q document.Request) bool { return q.ID == id })
}

func (r *Repository) FindRequest(id string) (document.Request, bool) {
	if i := r.requestIndex(id); i >= 0 {
		return r.doc.Requests[i], true
	}
	return document.Request{}, false
}

func (r *Repository) CreateRequest(ctx context.Context, f RequestFields) (document.Request, error) {
	q := document.Request{
		ID: r.newID(prefixRequest, func(id string) bool {
			_, ok := r.FindRequest(id)
			return ok
		}),
		Type:       f.Type,
		EmployeeID: f.EmployeeID,
		Items:      f.Items,
		Status:     orDefault(f.Status, document.StatusPending),
	}
	r.doc.Requests = append(r.doc.Requests, q)

	if err := r.commit(ctx, document.KindRequest, events.ActionCreated, q.ID, q.Type); err != nil {
		return document.Request{}, err
	}
	return q, nil
}

func (r *Repository) UpdateRequest(ctx context.Context, id string, f RequestFields) (document.Request, error) {
	i := r.requestIndex(id)
	if i < 0 {
		return document.Request{}, errRequestNotFound()
	}

	q := &r.doc.Requests[i]
	q.Type = f.Type
	q.EmployeeID = f.EmployeeID
	q.Items = f.Items
	q.Status = orDefault(f.Status, document.StatusPending)
	updated := *q

	if err := r.commit(ctx, document.KindRequest, events.ActionUpdated, id, updated.Type); err != nil {
		return document.Request{}, err
	}
	return updated, nil
}

func (r *Repository) DeleteRequest(ctx context.Context, id string) error {
	i := r.requestIndex(id)
	if i < 0 {
		return errRequestNotFound()
	}
	removed := r.doc.Requests[i]
	r.doc.Requests = slices.Delete(r.doc.Requests, i, i+1)

	return r.commit(ctx, document.KindRequest, events.ActionDeleted, id, removed.Type)
}
