package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// MeetingRepository implements the meeting history repository using GORM
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{
		db: db,
	}
}

// Append stores a processed meeting record. Re-running the same meeting id
// is a no-op so retries cannot duplicate history.
func (r *MeetingRepository) Append(ctx context.Context, record *entities.MeetingRecord) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoNothing: true,
		}).
		Create(record).Error; err != nil {
		return apperrors.ErrDBQueryFailed("append meeting record", err)
	}
	return nil
}

// ListAll returns every archived meeting, oldest first
func (r *MeetingRepository) ListAll(ctx context.Context) ([]*entities.MeetingRecord, error) {
	var records []*entities.MeetingRecord
	if err := r.db.WithContext(ctx).
		Order("meeting_date ASC, created_at ASC").
		Find(&records).Error; err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meeting records", err)
	}
	return records, nil
}

// FindByMeetingID finds one archived meeting
func (r *MeetingRepository) FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingRecord, error) {
	var record entities.MeetingRecord
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, apperrors.ErrDBQueryFailed("find meeting record", err)
	}
	return &record, nil
}
