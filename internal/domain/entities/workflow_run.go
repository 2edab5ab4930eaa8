package entities

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowRunStatus constants
const (
	WorkflowRunStatusRunning   = "running"
	WorkflowRunStatusCompleted = "completed"
	WorkflowRunStatusFailed    = "failed"
)

// WorkflowRun records one transcript-processing run for inspection
type WorkflowRun struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Source          string     `json:"source" gorm:"type:varchar(50)"`
	Status          string     `json:"status" gorm:"type:varchar(20);default:'running'"`
	Stage           string     `json:"stage" gorm:"type:varchar(50)"`
	LastError       *string    `json:"last_error,omitempty" gorm:"type:text"`
	ActionItemCount int        `json:"action_item_count"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for WorkflowRun
func (WorkflowRun) TableName() string {
	return "workflow_runs"
}

// NewWorkflowRun creates a running run record for a meeting state
func NewWorkflowRun(runID uuid.UUID, source string) *WorkflowRun {
	return &WorkflowRun{
		ID:        runID,
		Source:    source,
		Status:    WorkflowRunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
}
