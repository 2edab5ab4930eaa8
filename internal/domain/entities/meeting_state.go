package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingSummary is the structured summary produced by the summarize stage
type MeetingSummary struct {
	Text         string   `json:"summary"`
	KeyTopics    []string `json:"key_topics"`
	Participants []string `json:"participants"`
}

// MeetingState is the single mutable record threaded through a workflow run.
// It is exclusively owned by one run; stages receive it read-only and return
// diffs which the orchestrator merges.
type MeetingState struct {
	RunID       uuid.UUID       `json:"run_id"`
	Transcript  string          `json:"transcript"`
	Source      string          `json:"source"`
	MeetingDate time.Time       `json:"meeting_date"`
	Summary     *MeetingSummary `json:"summary,omitempty"`
	ActionItems []*ActionItem   `json:"action_items"`
	Errors      []string        `json:"errors"`
	StartedAt   time.Time       `json:"started_at"`
}

// NewMeetingState creates the state record for one transcript run
func NewMeetingState(transcript, source string) *MeetingState {
	return &MeetingState{
		RunID:      uuid.New(),
		Transcript: transcript,
		Source:     source,
		StartedAt:  time.Now().UTC(),
	}
}

// TranscriptLength returns the transcript length in characters
func (s *MeetingState) TranscriptLength() int {
	return len(strings.TrimSpace(s.Transcript))
}

// FinalReport is what a workflow run returns to the caller. It always carries
// whatever was successfully computed plus an explicit list of failures.
type FinalReport struct {
	RunID       uuid.UUID       `json:"run_id"`
	Summary     *MeetingSummary `json:"summary,omitempty"`
	ActionItems []*ActionItem   `json:"action_items"`
	Errors      []string        `json:"errors,omitempty"`
	Stage       string          `json:"stage"`
}
