package activity

import "time"

// Entry is one row of the activity log.
type Entry struct {
	ID         string    `gorm:"primaryKey;column:id"`
	EventType  string    `gorm:"column:event_type;not null"`
	EntityKind string    `gorm:"column:entity_kind;not null"`
	EntityID   string    `gorm:"column:entity_id;not null"`
	ActorID    string    `gorm:"column:actor_id"`
	Summary    string    `gorm:"column:summary"`
	OccurredAt time.Time `gorm:"column:occurred_at;index;not null"`
}

func (Entry) TableName() string {
	return "activity_log"
}
