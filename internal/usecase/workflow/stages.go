package workflow

import "github.com/johnquangdev/team-assistant/internal/domain/entities"

// Stage identifies one node in the processing pipeline. The order below is
// the execution order; extract branches straight to done when no action
// items were found.
type Stage string

const (
	StageIntake    Stage = "intake"
	StageSummarize Stage = "summarize"
	StageExtract   Stage = "extract"
	StageAssign    Stage = "assign"
	StageDeadline  Stage = "deadline"
	StageNotify    Stage = "notify"
	StageDone      Stage = "done"
)

// StateDiff is what a stage hands back to the engine. Stages never mutate
// shared state directly; the engine merges diffs so all consistency rules
// live in one place.
type StateDiff struct {
	Summary     *entities.MeetingSummary
	ActionItems []*entities.ActionItem
	Errors      []string
}

// merge applies a diff to the state. Action items replace wholesale (stages
// own the full list); errors append.
func merge(state *entities.MeetingState, diff StateDiff) {
	if diff.Summary != nil {
		state.Summary = diff.Summary
	}
	if diff.ActionItems != nil {
		state.ActionItems = diff.ActionItems
	}
	state.Errors = append(state.Errors, diff.Errors...)
}
