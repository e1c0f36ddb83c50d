// Package repository owns the in-memory document: the four ordered collections and the current
// user reference. Every successful mutation is saved through the Persister before it returns.
package repository

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/google/uuid"
)

const (
	prefixAccount    = "acc_"
	prefixEmployee   = "emp_"
	prefixDepartment = "dept_"
	prefixRequest    = "req_"
)

// Persister writes the whole document. *store.Store satisfies it.
type Persister interface {
	Save(ctx context.Context, doc *document.Document) error
}

type Repository struct {
	doc       *document.Document
	store     Persister
	publisher events.Publisher
	logger    *slog.Logger
}

// New wraps doc. publisher may be nil.
func New(doc *document.Document, store Persister, publisher events.Publisher, logger *slog.Logger) *Repository {
	if doc == nil {
		doc = document.Default()
	}
	doc.Normalize()
	return &Repository{
		doc:       doc,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Document exposes the live document. Callers must not modify it.
func (r *Repository) Document() *document.Document {
	return r.doc
}

// Reset replaces the document with the defaults and persists it.
func (r *Repository) Reset(ctx context.Context) error {
	r.doc = document.Default()
	return r.save(ctx)
}

func (r *Repository) newID(prefix string, exists func(string) bool) string {
	for {
		id := prefix + uuid.NewString()
		if !exists(id) {
			return id
		}
	}
}

func (r *Repository) save(ctx context.Context) error {
	if err := r.store.Save(ctx, r.doc); err != nil {
		return internal.NewInternalError("Failed to save changes.", err)
	}
	return nil
}

// commit persists the document and announces the change.
func (r *Repository) commit(ctx context.Context, kind document.Kind, action, id, summary string) error {
	if err := r.save(ctx); err != nil {
		return err
	}

	actor := internal.ActorIDFromContext(ctx)
	if actor == "" {
		actor = document.Deref(r.doc.CurrentUserID)
	}
	r.logger.Info("document changed", "kind", kind, "action", action, "id", id, "actor", actor)

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, events.NewEntityEvent(string(kind), action, id, actor, summary)); err != nil {
			r.logger.Warn("failed to publish change", "kind", kind, "action", action, "id", id, "error", err)
		}
	}
	return nil
}

// ----------------- CURRENT USER -----------------

// CurrentUser resolves the current user reference. A reference to a deleted account counts as
// signed out.
func (r *Repository) CurrentUser() (document.Account, bool) {
	if r.doc.CurrentUserID == nil {
		return document.Account{}, false
	}
	return r.FindAccount(*r.doc.CurrentUserID)
}

func (r *Repository) SetCurrentUser(ctx context.Context, id string) error {
	if _, ok := r.FindAccount(id); !ok {
		return errAccountNotFound()
	}
	r.doc.CurrentUserID = document.Ref(id)
	return r.save(ctx)
}

func (r *Repository) ClearCurrentUser(ctx context.Context) error {
	r.doc.CurrentUserID = nil
	return r.save(ctx)
}

func (r *Repository) isCurrentUser(id string) bool {
	return r.doc.CurrentUserID != nil && *r.doc.CurrentUserID == id
}

// ----------------- BY KIND -----------------

func unknownKind(kind document.Kind) *internal.AppError {
	return internal.NewValidationError("Unknown entity kind "+string(kind)+".", internal.ErrCodeUnknownKind)
}

// CheckDeletable reports why kind/id cannot be deleted right now, or nil.
func (r *Repository) CheckDeletable(kind document.Kind, id string) error {
	switch kind {
	case document.KindAccount:
		return r.CheckAccountDeletable(id)
	case document.KindEmployee:
		if _, ok := r.FindEmployee(id); !ok {
			return errEmployeeNotFound()
		}
	case document.KindDepartment:
		if _, ok := r.FindDepartment(id); !ok {
			return errDepartmentNotFound()
		}
	case document.KindRequest:
		if _, ok := r.FindRequest(id); !ok {
			return errRequestNotFound()
		}
	default:
		return unknownKind(kind)
	}
	return nil
}

// Delete removes kind/id under that kind's delete policy.
func (r *Repository) Delete(ctx context.Context, kind document.Kind, id string) error {
	switch kind {
	case document.KindAccount:
		return r.DeleteAccount(ctx, id)
	case document.KindEmployee:
		return r.DeleteEmployee(ctx, id)
	case document.KindDepartment:
		return r.DeleteDepartment(ctx, id)
	case document.KindRequest:
		return r.DeleteRequest(ctx, id)
	default:
		return unknownKind(kind)
	}
}

// Label is the human readable name of a record, used in confirmation prompts.
func (r *Repository) Label(kind document.Kind, id string) string {
	switch kind {
	case document.KindAccount:
		if a, ok := r.FindAccount(id); ok {
			return a.Email
		}
	case document.KindEmployee:
		if e, ok := r.FindEmployee(id); ok {
			return e.EmployeeID
		}
	case document.KindDepartment:
		if d, ok := r.FindDepartment(id); ok {
			return d.Name
		}
	case document.KindRequest:
		if q, ok := r.FindRequest(id); ok {
			return q.Type
		}
	}
	return id
}
