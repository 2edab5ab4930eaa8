package repositories

import (
	"context"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// MeetingRepository stores the meeting history corpus. Records are
// append-only; inserts must not be lost under concurrent runs.
type MeetingRepository interface {
	Append(ctx context.Context, record *entities.MeetingRecord) error
	ListAll(ctx context.Context) ([]*entities.MeetingRecord, error)
	FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingRecord, error)
}
