package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingRecord is one archived transcript in the meeting history corpus.
// Records are appended after each successfully processed transcript and
// never mutated afterward.
type MeetingRecord struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID    string         `json:"meeting_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	Title        string         `json:"title" gorm:"type:varchar(500)"`
	FullText     string         `json:"full_text" gorm:"type:text;not null"`
	Participants datatypes.JSON `json:"participants" gorm:"type:jsonb"`
	MeetingDate  time.Time      `json:"meeting_date"`
	Source       string         `json:"source" gorm:"type:varchar(50)"`
	ArchiveURL   string         `json:"archive_url,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for MeetingRecord
func (MeetingRecord) TableName() string {
	return "meeting_records"
}

// ParticipantNames decodes the participants JSONB column
func (r *MeetingRecord) ParticipantNames() []string {
	return decodeStringList(r.Participants)
}
