package entities

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the durable record written by the notification sink:
// one human-readable, timestamped row per notified action item.
// The (run_id, action_item_id) pair is unique so repeated delivery attempts
// stay idempotent.
type Notification struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RunID         uuid.UUID `json:"run_id" gorm:"type:uuid;not null;uniqueIndex:idx_notifications_run_item"`
	ActionItemID  string    `json:"action_item_id" gorm:"type:varchar(50);not null;uniqueIndex:idx_notifications_run_item"`
	AssigneeName  string    `json:"assignee_name" gorm:"type:varchar(255);not null"`
	AssigneeEmail string    `json:"assignee_email" gorm:"type:varchar(255)"`
	DueDate       time.Time `json:"due_date"`
	Body          string    `json:"body" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
