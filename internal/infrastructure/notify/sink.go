// Package notify is the delivery boundary for finalized action items. The
// sink writes durable, human-readable notification records instead of
// sending email or chat messages; a delivery worker can drain the table
// later without changing the workflow.
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/domain/repositories"
)

// Sink records one notification per finalized action item
type Sink struct {
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewSink creates a sink over the notification store
func NewSink(notifications repositories.NotificationRepository, logger *zap.Logger) *Sink {
	return &Sink{notifications: notifications, logger: logger}
}

// Notify writes the record for one item. The item must carry an assignee and
// a due date; the store keeps repeated calls for the same (run, item)
// idempotent.
func (s *Sink) Notify(ctx context.Context, runID uuid.UUID, item *entities.ActionItem) error {
	if !item.Notifiable() {
		return apperrors.ErrNotificationFailed(item.ID, fmt.Errorf("item has no assignee or due date"))
	}

	record := &entities.Notification{
		RunID:         runID,
		ActionItemID:  item.ID,
		AssigneeName:  item.Assignee.Name,
		AssigneeEmail: item.Assignee.Email,
		DueDate:       *item.DueDate,
		Body:          renderBody(item),
	}
	if err := s.notifications.Save(ctx, record); err != nil {
		return apperrors.ErrNotificationFailed(item.ID, err)
	}

	s.logger.Info("📣 Notification recorded",
		zap.String("run_id", runID.String()),
		zap.String("action_item", item.ID),
		zap.String("assignee", item.Assignee.Name),
	)
	return nil
}

func renderBody(item *entities.ActionItem) string {
	due := item.DueDate.Format("Monday, January 2, 2006")
	body := fmt.Sprintf("Hi %s, you have a new action item: %s (due %s)",
		item.Assignee.Name, item.Description, due)
	if item.DeadlineInferred {
		body += " [deadline inferred]"
	}
	return body
}
