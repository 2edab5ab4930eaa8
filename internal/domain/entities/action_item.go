package entities

import (
	"fmt"
	"time"
)

// ActionItemStatus tracks an action item through the workflow
type ActionItemStatus string

const (
	ActionItemStatusPending   ActionItemStatus = "pending"
	ActionItemStatusAssigned  ActionItemStatus = "assigned"
	ActionItemStatusScheduled ActionItemStatus = "scheduled"
	ActionItemStatusNotified  ActionItemStatus = "notified"
	ActionItemStatusSkipped   ActionItemStatus = "skipped"
)

// TeamMemberRef is a lightweight reference to a resolved assignee
type TeamMemberRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ActionItem is a discrete task extracted from a meeting transcript.
// Items are created during extraction in transcript order, then mutated in
// place by the assignment and deadline stages. Once notified they are final.
type ActionItem struct {
	ID                 string           `json:"id"`
	Description        string           `json:"description"`
	Context            string           `json:"context,omitempty"`
	RawDeadline        string           `json:"raw_deadline,omitempty"`
	Assignee           *TeamMemberRef   `json:"assignee,omitempty"`
	AssigneeConfidence float64          `json:"assignee_confidence,omitempty"`
	DueDate            *time.Time       `json:"due_date,omitempty"`
	DeadlineInferred   bool             `json:"deadline_inferred,omitempty"`
	Status             ActionItemStatus `json:"status"`
}

// NewActionItem creates a pending action item with a positional id (ai-001 style)
func NewActionItem(index int, description string) *ActionItem {
	return &ActionItem{
		ID:          fmt.Sprintf("ai-%03d", index+1),
		Description: description,
		Status:      ActionItemStatusPending,
	}
}

// Assigned reports whether the item has a resolved assignee
func (a *ActionItem) Assigned() bool {
	return a.Assignee != nil
}

// Notifiable reports whether the item carries everything the notification
// sink requires: an assignee and a concrete due date.
func (a *ActionItem) Notifiable() bool {
	return a.Assignee != nil && a.DueDate != nil
}
