package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	ActionSignedIn   = "signed_in"
	ActionRegistered = "registered"
	ActionSignedOut  = "signed_out"
)

// EntityEvent reports a committed change to one record of the document.
type EntityEvent struct {
	BaseEvent
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
	Action   string `json:"action"`
	ActorID  string `json:"actor_id"`
	Summary  string `json:"summary"`
}

// EntityEventType builds the event type name, e.g. "department.deleted".
func EntityEventType(kind, action string) string {
	return kind + "." + action
}

func NewEntityEvent(kind, action, entityID, actorID, summary string) *EntityEvent {
	eventType := EntityEventType(kind, action)
	return &EntityEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"kind":      kind,
				"entity_id": entityID,
				"action":    action,
				"actor_id":  actorID,
				"summary":   summary,
			},
		},
		Kind:     kind,
		EntityID: entityID,
		Action:   action,
		ActorID:  actorID,
		Summary:  summary,
	}
}

// SessionKind is the event kind used for sign-in, registration and sign-out.
const SessionKind = "session"

// AllEntityEventTypes lists every event type the console publishes, for subscribers that want
// all of them.
func AllEntityEventTypes() []string {
	kinds := []string{"account", "employee", "department", "request"}
	actions := []string{ActionCreated, ActionUpdated, ActionDeleted}

	types := make([]string, 0, len(kinds)*len(actions)+3)
	for _, k := range kinds {
		for _, a := range actions {
			types = append(types, EntityEventType(k, a))
		}
	}
	types = append(types,
		EntityEventType(SessionKind, ActionSignedIn),
		EntityEventType(SessionKind, ActionRegistered),
		EntityEventType(SessionKind, ActionSignedOut),
	)
	return types
}
