package activity

import (
	"time"

	activityDatamodel "github.com/frahmantamala/hrconsole/internal/core/datamodel/activity"
)

type EntryResponse struct {
	ID         string    `json:"id"`
	EventType  string    `json:"eventType"`
	EntityKind string    `json:"entityKind"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type ActivityResponse struct {
	Entries []EntryResponse `json:"entries"`
}

func ToResponse(e *activityDatamodel.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		EventType:  e.EventType,
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		ActorID:    e.ActorID,
		Summary:    e.Summary,
		OccurredAt: e.OccurredAt,
	}
}
