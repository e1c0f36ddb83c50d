package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/view"
)

type Repository interface {
	FindAccountByEmail(email string) (document.Account, bool)
	CreateAccount(ctx context.Context, f repository.AccountFields) (document.Account, error)
	CurrentUser() (document.Account, bool)
	SetCurrentUser(ctx context.Context, id string) error
	ClearCurrentUser(ctx context.Context) error
}

type Navigator interface {
	Show(name view.Name) view.Page
}

// Service signs operators in and out. Passwords are compared in plaintext.
type Service struct {
	repo      Repository
	nav       Navigator
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, nav Navigator, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, nav: nav, publisher: publisher, logger: logger}
}

// Login makes the matching account current and shows the dashboard.
func (s *Service) Login(ctx context.Context, dto CredentialsDTO) (Session, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return Session{}, err
	}

	account, ok := s.repo.FindAccountByEmail(dto.Email)
	if !ok || account.Password != dto.Password {
		s.logger.Info("login rejected", "email", dto.Email)
		return Session{}, internal.ErrInvalidCredentials()
	}

	if err := s.repo.SetCurrentUser(ctx, account.ID); err != nil {
		return Session{}, err
	}
	s.publish(ctx, events.ActionSignedIn, account)

	return Session{SignedIn: true, User: ToUser(account), Page: s.nav.Show(view.Dashboard)}, nil
}

// Register creates a plain user named after the email's local part and signs it in.
func (s *Service) Register(ctx context.Context, dto CredentialsDTO) (Session, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return Session{}, err
	}

	if _, exists := s.repo.FindAccountByEmail(dto.Email); exists {
		return Session{}, internal.ErrEmailRegistered()
	}

	account, err := s.repo.CreateAccount(ctx, repository.AccountFields{
		FirstName: document.EmailLocalPart(dto.Email),
		Email:     dto.Email,
		Role:      document.RoleUser,
		Status:    document.StatusActive,
		Password:  dto.Password,
	})
	if err != nil {
		return Session{}, err
	}

	if err := s.repo.SetCurrentUser(ctx, account.ID); err != nil {
		return Session{}, err
	}
	s.publish(ctx, events.ActionRegistered, account)

	return Session{SignedIn: true, User: ToUser(account), Page: s.nav.Show(view.Dashboard)}, nil
}

// Logout clears the current user and shows the landing view.
func (s *Service) Logout(ctx context.Context) (Session, error) {
	account, signedIn := s.repo.CurrentUser()

	if err := s.repo.ClearCurrentUser(ctx); err != nil {
		return Session{}, err
	}
	if signedIn {
		s.publish(ctx, events.ActionSignedOut, account)
	}

	return Session{SignedIn: false, Page: s.nav.Show(view.Landing)}, nil
}

// Current reports who is signed in without changing anything.
func (s *Service) Current() (*User, bool) {
	account, ok := s.repo.CurrentUser()
	if !ok {
		return nil, false
	}
	return ToUser(account), true
}

func (s *Service) publish(ctx context.Context, action string, account document.Account) {
	if s.publisher == nil {
		return
	}
	event := events.NewEntityEvent(events.SessionKind, action, account.ID, account.ID, account.Email)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish session event", "action", action, "error", err)
	}
}
