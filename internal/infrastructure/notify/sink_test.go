package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

type fakeNotificationRepo struct {
	saved []*entities.Notification
	err   error
}

func (r *fakeNotificationRepo) Save(_ context.Context, n *entities.Notification) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.saved {
		if existing.RunID == n.RunID && existing.ActionItemID == n.ActionItemID {
			return nil
		}
	}
	r.saved = append(r.saved, n)
	return nil
}

func (r *fakeNotificationRepo) ListByRun(_ context.Context, runID uuid.UUID) ([]*entities.Notification, error) {
	var out []*entities.Notification
	for _, n := range r.saved {
		if n.RunID == runID {
			out = append(out, n)
		}
	}
	return out, nil
}

func notifiableItem() *entities.ActionItem {
	due := time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC)
	item := entities.NewActionItem(0, "finish the database migration")
	item.Assignee = &entities.TeamMemberRef{Name: "Sarah Chen", Email: "sarah@example.com"}
	item.DueDate = &due
	return item
}

func TestNotifyRecordsReadableBody(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := NewSink(repo, zap.NewNop())
	runID := uuid.New()

	if err := sink.Notify(context.Background(), runID, notifiableItem()); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d notifications", len(repo.saved))
	}
	n := repo.saved[0]
	if n.AssigneeName != "Sarah Chen" {
		t.Errorf("assignee = %q", n.AssigneeName)
	}
	if !strings.Contains(n.Body, "Sarah Chen") || !strings.Contains(n.Body, "Friday, March 21, 2025") {
		t.Errorf("body = %q", n.Body)
	}
	if strings.Contains(n.Body, "[deadline inferred]") {
		t.Error("explicit deadline flagged as inferred")
	}
}

func TestNotifyFlagsInferredDeadline(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := NewSink(repo, zap.NewNop())

	item := notifiableItem()
	item.DeadlineInferred = true
	if err := sink.Notify(context.Background(), uuid.New(), item); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if !strings.Contains(repo.saved[0].Body, "[deadline inferred]") {
		t.Errorf("body = %q", repo.saved[0].Body)
	}
}

func TestNotifyRepeatedDeliveryIsIdempotent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := NewSink(repo, zap.NewNop())
	runID := uuid.New()
	item := notifiableItem()

	for i := 0; i < 3; i++ {
		if err := sink.Notify(context.Background(), runID, item); err != nil {
			t.Fatalf("Notify #%d: %v", i+1, err)
		}
	}
	if len(repo.saved) != 1 {
		t.Errorf("saved %d notifications for one item", len(repo.saved))
	}
}

func TestNotifyRejectsIncompleteItem(t *testing.T) {
	sink := NewSink(&fakeNotificationRepo{}, zap.NewNop())

	item := entities.NewActionItem(0, "unowned task")
	err := sink.Notify(context.Background(), uuid.New(), item)
	if !apperrors.HasCode(err, apperrors.ErrorCode_NOTIFICATION_FAILED) {
		t.Fatalf("expected NOTIFICATION_FAILED, got %v", err)
	}
}

func TestNotifyWrapsStoreFailure(t *testing.T) {
	sink := NewSink(&fakeNotificationRepo{err: errors.New("db down")}, zap.NewNop())

	err := sink.Notify(context.Background(), uuid.New(), notifiableItem())
	if !apperrors.HasCode(err, apperrors.ErrorCode_NOTIFICATION_FAILED) {
		t.Fatalf("expected NOTIFICATION_FAILED, got %v", err)
	}
}
