package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// NotificationRepository persists notification records. Save must be
// idempotent per (run, action item).
type NotificationRepository interface {
	Save(ctx context.Context, notification *entities.Notification) error
	ListByRun(ctx context.Context, runID uuid.UUID) ([]*entities.Notification, error)
}
