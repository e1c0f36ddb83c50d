package postgres

import (
	"context"

	"github.com/frahmantamala/hrconsole/internal/activity"
	activityDatamodel "github.com/frahmantamala/hrconsole/internal/core/datamodel/activity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, entry *activityDatamodel.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ActivityRepository) List(ctx context.Context, limit int) ([]*activityDatamodel.Entry, error) {
	var entries []*activityDatamodel.Entry
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
