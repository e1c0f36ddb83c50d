// Package console is the single operator session: it owns the repository, the open form, the
// pending confirmation and the visible view, and applies one operation at a time.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/auth"
	"github.com/frahmantamala/hrconsole/internal/confirm"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/frahmantamala/hrconsole/internal/form"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/view"
)

type Console struct {
	mu     sync.Mutex
	repo   *repository.Repository
	forms  *form.Engine
	gate   *confirm.Gate
	router *view.Router
	auth   *auth.Service
	logger *slog.Logger

	// set by a confirmed delete
	refreshed bool
}

// New builds a session over repo. publisher may be nil.
func New(repo *repository.Repository, publisher events.Publisher, logger *slog.Logger) *Console {
	router := view.NewRouter(repo, logger)
	return &Console{
		repo:   repo,
		forms:  form.NewEngine(repo, logger),
		gate:   confirm.NewGate(logger),
		router: router,
		auth:   auth.NewService(repo, router, publisher, logger),
		logger: logger,
	}
}

// State is a snapshot of the session.
type State struct {
	SignedIn     bool             `json:"signedIn"`
	User         *auth.User       `json:"user,omitempty"`
	View         view.Name        `json:"view"`
	Form         *form.Descriptor `json:"form,omitempty"`
	Confirmation *confirm.Prompt  `json:"confirmation,omitempty"`
}

// SubmitResult is a committed form plus the refreshed current page.
type SubmitResult struct {
	form.Result
	Page view.Page `json:"page"`
}

// ConfirmResult is what a confirmed action did to the current page.
type ConfirmResult struct {
	Refreshed bool      `json:"refreshed"`
	Page      view.Page `json:"page"`
}

func (c *Console) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{View: c.router.Current()}
	if user, ok := c.auth.Current(); ok {
		s.SignedIn = true
		s.User = user
	}
	if d, ok := c.forms.Active(); ok {
		s.Form = &d
	}
	if p, ok := c.gate.Pending(); ok {
		s.Confirmation = &p
	}
	return s
}

// CurrentUserID is "" when nobody is signed in.
func (c *Console) CurrentUserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.repo.CurrentUser(); ok {
		return a.ID
	}
	return ""
}

// ----------------- AUTH -----------------

func (c *Console) Login(ctx context.Context, dto auth.CredentialsDTO) (auth.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth.Login(ctx, dto)
}

func (c *Console) Register(ctx context.Context, dto auth.CredentialsDTO) (auth.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth.Register(ctx, dto)
}

// Logout also drops any open form and pending confirmation.
func (c *Console) Logout(ctx context.Context) (auth.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forms.Close()
	c.gate.Cancel()
	return c.auth.Logout(ctx)
}

// ----------------- VIEWS -----------------

func (c *Console) Show(ctx context.Context, name view.Name) (view.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name.RequiresUser() {
		if _, err := c.requireUser(ctx); err != nil {
			return view.Page{}, err
		}
	}
	return c.router.Show(name), nil
}

// ----------------- FORMS -----------------

// OpenForm opens the create form of kind, or the edit form of kind/id when id is set.
func (c *Console) OpenForm(ctx context.Context, kind document.Kind, id string) (form.Descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.requireUser(ctx); err != nil {
		return form.Descriptor{}, err
	}
	if _, pending := c.gate.Pending(); pending {
		return form.Descriptor{}, internal.ErrConfirmationPending()
	}

	d, err := form.Build(c.repo, kind, id)
	if err != nil {
		return form.Descriptor{}, err
	}
	if err := c.forms.Open(d); err != nil {
		return form.Descriptor{}, err
	}
	return d, nil
}

func (c *Console) ActiveForm() (form.Descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.forms.Active()
	if !ok {
		return form.Descriptor{}, internal.ErrNoActiveModal()
	}
	return d, nil
}

// SubmitForm commits the open form and refreshes the current view when the change affects it.
func (c *Console) SubmitForm(ctx context.Context, input map[string]string) (SubmitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx, err := c.requireUser(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	result, err := c.forms.Commit(ctx, input)
	if err != nil {
		return SubmitResult{}, err
	}
	c.router.Refresh(result.Refresh...)
	return SubmitResult{Result: result, Page: c.router.Page()}, nil
}

// CloseForm reports whether a form was open.
func (c *Console) CloseForm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, open := c.forms.Active()
	c.forms.Close()
	return open
}

// ----------------- DELETES -----------------

// RequestDelete checks the delete policy up front and, if it passes, asks for confirmation.
// Refused while a form is open.
func (c *Console) RequestDelete(ctx context.Context, kind document.Kind, id string) (confirm.Prompt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.requireUser(ctx); err != nil {
		return confirm.Prompt{}, err
	}
	if _, open := c.forms.Active(); open {
		return confirm.Prompt{}, internal.ErrModalOpen()
	}
	if err := c.repo.CheckDeletable(kind, id); err != nil {
		return confirm.Prompt{}, err
	}

	title, message := deletePrompt(kind, c.repo.Label(kind, id))
	prompt := c.gate.Request(title, message, func(ctx context.Context) error {
		if err := c.repo.Delete(ctx, kind, id); err != nil {
			return err
		}
		c.refreshed = c.router.Refresh(deleteRefresh(kind)...)
		return nil
	})
	return prompt, nil
}

func (c *Console) PendingConfirmation() (confirm.Prompt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.gate.Pending()
	if !ok {
		return confirm.Prompt{}, internal.ErrNoPendingConfirmation()
	}
	return p, nil
}

// Confirm runs the pending action. The policy is checked again because the data may have changed
// since the request.
func (c *Console) Confirm(ctx context.Context) (ConfirmResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx, err := c.requireUser(ctx)
	if err != nil {
		return ConfirmResult{}, err
	}

	c.refreshed = false
	if err := c.gate.Confirm(ctx); err != nil {
		return ConfirmResult{}, err
	}
	return ConfirmResult{Refreshed: c.refreshed, Page: c.router.Page()}, nil
}

func (c *Console) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Cancel()
}

// ----------------- HELPERS -----------------

// requireUser fails unless someone is signed in and tags ctx with their id. Callers hold mu.
func (c *Console) requireUser(ctx context.Context) (context.Context, error) {
	user, ok := c.repo.CurrentUser()
	if !ok {
		return ctx, internal.ErrNotSignedIn()
	}
	if internal.ActorIDFromContext(ctx) == "" {
		ctx = internal.ContextWithActorID(ctx, user.ID)
	}
	return ctx, nil
}

func deletePrompt(kind document.Kind, label string) (string, string) {
	switch kind {
	case document.KindAccount:
		return "Delete Account", fmt.Sprintf("Are you sure you want to delete %s? This action cannot be undone.", label)
	case document.KindEmployee:
		return "", "Delete this employee?"
	case document.KindDepartment:
		return "", "Delete this department?"
	default:
		return "", "Delete this request?"
	}
}

// deleteRefresh lists the views that display data a delete of kind changes.
func deleteRefresh(kind document.Kind) []view.Name {
	switch kind {
	case document.KindAccount:
		return []view.Name{view.Accounts, view.Profile, view.Employees}
	case document.KindEmployee:
		return []view.Name{view.Employees, view.Departments, view.Requests}
	case document.KindDepartment:
		return []view.Name{view.Departments, view.Employees}
	default:
		return []view.Name{view.Requests}
	}
}
