package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// NotificationRepository implements the notification repository using GORM
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Save stores one notification record. The (run_id, action_item_id) unique
// index makes repeated saves idempotent.
func (r *NotificationRepository) Save(ctx context.Context, notification *entities.Notification) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_id"}, {Name: "action_item_id"}},
			DoNothing: true,
		}).
		Create(notification).Error; err != nil {
		return apperrors.ErrDBQueryFailed("save notification", err)
	}
	return nil
}

// ListByRun returns the notifications recorded for one run
func (r *NotificationRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]*entities.Notification, error) {
	var notifications []*entities.Notification
	if err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("action_item_id ASC").
		Find(&notifications).Error; err != nil {
		return nil, apperrors.ErrDBQueryFailed("list notifications", err)
	}
	return notifications, nil
}
