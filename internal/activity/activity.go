// Package activity keeps an append-only log of console changes, fed from the event bus.
package activity

import (
	"context"
	"fmt"
	"log/slog"

	activityDatamodel "github.com/frahmantamala/hrconsole/internal/core/datamodel/activity"
	"github.com/frahmantamala/hrconsole/internal/core/events"
)

const MaxLimit = 500

type RepositoryAPI interface {
	Create(ctx context.Context, entry *activityDatamodel.Entry) error
	List(ctx context.Context, limit int) ([]*activityDatamodel.Entry, error)
}

type Service struct {
	repo         RepositoryAPI
	defaultLimit int
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, defaultLimit int, logger *slog.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &Service{repo: repo, defaultLimit: defaultLimit, logger: logger}
}

// HandleEntityEvent records one entity or session event.
func (s *Service) HandleEntityEvent(ctx context.Context, event events.Event) error {
	entityEvent, ok := event.(*events.EntityEvent)
	if !ok {
		s.logger.Error("invalid event type for activity handler", "event_type", event.EventType())
		return fmt.Errorf("expected EntityEvent, got %T", event)
	}

	entry := FromEvent(entityEvent)
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to record activity",
			"error", err,
			"event_type", entry.EventType,
			"entity_id", entry.EntityID,
			"event_id", entry.ID)
		return fmt.Errorf("record activity %s: %w", entry.ID, err)
	}

	s.logger.Debug("activity recorded", "event_type", entry.EventType, "entity_id", entry.EntityID)
	return nil
}

func (s *Service) RegisterEventHandlers(eventBus *events.EventBus) {
	types := events.AllEntityEventTypes()
	eventBus.SubscribeMany(types, s.HandleEntityEvent)

	s.logger.Info("activity event handlers registered", "handlers", len(types))
}

// List returns the newest entries first. A non-positive limit means the configured default.
func (s *Service) List(ctx context.Context, limit int) ([]EntryResponse, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list activity", "error", err)
		return nil, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, ToResponse(e))
	}
	return responses, nil
}

func FromEvent(e *events.EntityEvent) *activityDatamodel.Entry {
	return &activityDatamodel.Entry{
		ID:         e.EventID(),
		EventType:  e.EventType(),
		EntityKind: e.Kind,
		EntityID:   e.EntityID,
		ActorID:    e.ActorID,
		Summary:    e.Summary,
		OccurredAt: e.OccurredAt().UTC(),
	}
}
