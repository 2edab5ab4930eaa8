package meeting

import "time"

// SummaryResponse is the structured summary section of a run report
type SummaryResponse struct {
	Summary      string   `json:"summary"`
	KeyTopics    []string `json:"key_topics"`
	Participants []string `json:"participants"`
}

// ActionItemResponse is one finalized action item
type ActionItemResponse struct {
	ID                 string     `json:"id"`
	Description        string     `json:"description"`
	Context            string     `json:"context,omitempty"`
	AssigneeName       string     `json:"assignee_name,omitempty"`
	AssigneeEmail      string     `json:"assignee_email,omitempty"`
	AssigneeConfidence float64    `json:"assignee_confidence,omitempty"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	DeadlineInferred   bool       `json:"deadline_inferred"`
	Status             string     `json:"status"`
}

// ReportResponse is the full result of one workflow run
type ReportResponse struct {
	RunID       string               `json:"run_id"`
	Stage       string               `json:"stage"`
	Summary     *SummaryResponse     `json:"summary,omitempty"`
	ActionItems []ActionItemResponse `json:"action_items"`
	Errors      []string             `json:"errors,omitempty"`
}

// RunStatusResponse is the stored status of a past or running run
type RunStatusResponse struct {
	RunID           string     `json:"run_id"`
	Source          string     `json:"source"`
	Status          string     `json:"status"`
	Stage           string     `json:"stage"`
	LastError       string     `json:"last_error,omitempty"`
	ActionItemCount int        `json:"action_item_count"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}
