package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
)

type AccountFields struct {
	Title     string
	FirstName string
	LastName  string
	Email     string
	Role      string
	Status    string
	Password  string
}

func errAccountNotFound() *internal.AppError {
	return internal.NewNotFoundError("Account not found.", internal.ErrCodeAccountNotFound)
}

func (r *Repository) Accounts() []document.Account {
	return r.doc.Accounts
}

func (r *Repository) accountIndex(id string) int {
	return slices.IndexFunc(r.doc.Accounts, func(a document.Account) bool { return a.ID == id })
}

func (r *Repository) FindAccount(id string) (document.Account, bool) {
	if i := r.accountIndex(id); i >= 0 {
		return r.doc.Accounts[i], true
	}
	return document.Account{}, false
}

// FindAccountByEmail matches case-insensitively.
func (r *Repository) FindAccountByEmail(email string) (document.Account, bool) {
	email = strings.TrimSpace(email)
	for _, a := range r.doc.Accounts {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return document.Account{}, false
}

// emailTaken reports whether another account than exceptID uses email.
func (r *Repository) emailTaken(email, exceptID string) bool {
	a, ok := r.FindAccountByEmail(email)
	return ok && a.ID != exceptID
}

func (r *Repository) CreateAccount(ctx context.Context, f AccountFields) (document.Account, error) {
	if r.emailTaken(f.Email, "") {
		return document.Account{}, internal.ErrEmailExists()
	}

	a := document.Account{
		ID: r.newID(prefixAccount, func(id string) bool {
			_, ok := r.FindAccount(id)
			return ok
		}),
		Title:     f.Title,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Role:      orDefault(f.Role, document.RoleUser),
		Status:    orDefault(f.Status, document.StatusActive),
		Password:  f.Password,
	}
	r.doc.Accounts = append(r.doc.Accounts, a)

	if err := r.commit(ctx, document.KindAccount, events.ActionCreated, a.ID, a.Email); err != nil {
		return document.Account{}, err
	}
	return a, nil
}

// UpdateAccount keeps the stored password unless a non-empty one is supplied.
func (r *Repository) UpdateAccount(ctx context.Context, id string, f AccountFields) (document.Account, error) {
	i := r.accountIndex(id)
	if i < 0 {
		return document.Account{}, errAccountNotFound()
	}
	if r.emailTaken(f.Email, id) {
		return document.Account{}, internal.ErrEmailExists()
	}

	a := &r.doc.Accounts[i]
	a.Title = f.Title
	a.FirstName = f.FirstName
	a.LastName = f.LastName
	a.Email = f.Email
	a.Role = orDefault(f.Role, document.RoleUser)
	a.Status = orDefault(f.Status, document.StatusActive)
	if f.Password != "" {
		a.Password = f.Password
	}
	updated := *a

	if err := r.commit(ctx, document.KindAccount, events.ActionUpdated, id, updated.Email); err != nil {
		return document.Account{}, err
	}
	return updated, nil
}

// CountAdmins counts accounts whose role is Admin in any letter case.
func (r *Repository) CountAdmins() int {
	n := 0
	for i := range r.doc.Accounts {
		if r.doc.Accounts[i].IsAdmin() {
			n++
		}
	}
	return n
}

// CheckAccountDeletable applies the delete policy without changing anything.
func (r *Repository) CheckAccountDeletable(id string) error {
	a, ok := r.FindAccount(id)
	if !ok {
		return errAccountNotFound()
	}
	if r.isCurrentUser(id) {
		return internal.ErrCannotDeleteSelf()
	}
	if a.IsAdmin() && r.CountAdmins() <= 1 {
		return internal.ErrLastAdmin()
	}
	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, id string) error {
	if err := r.CheckAccountDeletable(id); err != nil {
		return err
	}

	i := r.accountIndex(id)
	removed := r.doc.Accounts[i]
	r.doc.Accounts = slices.Delete(r.doc.Accounts, i, i+1)
	if r.isCurrentUser(id) {
		r.doc.CurrentUserID = nil
	}

	return r.commit(ctx, document.KindAccount, events.ActionDeleted, id, removed.Email)
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
