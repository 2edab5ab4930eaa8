// Package workflow is the staged orchestrator that turns a raw transcript
// into assigned, deadline-bound action items. The engine owns the stage
// graph and all state merging; stages compute diffs and nothing else.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/domain/repositories"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
	"github.com/johnquangdev/team-assistant/internal/usecase/deadline"
	"github.com/johnquangdev/team-assistant/pkg/trace"
)

const minTranscriptChars = 20

// Summarizer produces the structured summary. Satisfied by extract.Extractor.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*entities.SummaryOutput, error)
	ExtractActionItems(ctx context.Context, transcript, summary string) (*entities.ActionItemListOutput, error)
}

// Assigner resolves one item's assignee. Satisfied by assign.Resolver.
type Assigner interface {
	Resolve(ctx context.Context, item *entities.ActionItem, mentioned string) error
}

// Deadliner resolves one item's due date. Satisfied by deadline.Resolver.
type Deadliner interface {
	Resolve(ctx context.Context, item *entities.ActionItem, meetingDate time.Time) error
}

// Notifier records one notification per finalized item. Satisfied by
// notify.Sink.
type Notifier interface {
	Notify(ctx context.Context, runID uuid.UUID, item *entities.ActionItem) error
}

// Archiver persists the processed transcript into the meeting history corpus
// after a successful run. Satisfied by archive.Service.
type Archiver interface {
	Archive(ctx context.Context, state *entities.MeetingState) error
}

// Engine runs the stage graph
type Engine struct {
	extractor  Summarizer
	assigner   Assigner
	deadliner  Deadliner
	notifier   Notifier
	archiver   Archiver
	runs       repositories.RunRepository
	tracer     trace.Sink
	runTimeout time.Duration
	logger     *zap.Logger
}

// NewEngine wires the stage collaborators
func NewEngine(
	extractor Summarizer,
	assigner Assigner,
	deadliner Deadliner,
	notifier Notifier,
	archiver Archiver,
	runs repositories.RunRepository,
	tracer trace.Sink,
	runTimeout time.Duration,
	logger *zap.Logger,
) *Engine {
	if tracer == nil {
		tracer = trace.NopSink{}
	}
	return &Engine{
		extractor:  extractor,
		assigner:   assigner,
		deadliner:  deadliner,
		notifier:   notifier,
		archiver:   archiver,
		runs:       runs,
		tracer:     tracer,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// mentionedAssignees carries the transcript-mentioned names from extraction
// to assignment, keyed by action item id. They are hints, not resolutions.
type mentionedAssignees map[string]string

// Process runs one transcript through the full pipeline. Stage failures in
// summarize/extract abort the run with state preserved; per-item failures in
// assign/deadline/notify degrade that item and continue.
func (e *Engine) Process(ctx context.Context, transcript, source string, meetingDate time.Time) (*entities.FinalReport, error) {
	state := entities.NewMeetingState(transcript, source)
	state.MeetingDate = meetingDate

	if e.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.runTimeout)
		defer cancel()
	}

	run := entities.NewWorkflowRun(state.RunID, source)
	if e.runs != nil {
		if err := e.runs.Create(ctx, run); err != nil {
			return nil, err
		}
	}

	e.logger.Info("🚀 Workflow run started",
		zap.String("run_id", state.RunID.String()),
		zap.String("source", source),
		zap.Int("transcript_chars", state.TranscriptLength()),
	)

	mentioned := make(mentionedAssignees)
	report, err := e.run(ctx, state, run, mentioned)
	e.finishRun(ctx, run, report, err)
	return report, err
}

func (e *Engine) run(ctx context.Context, state *entities.MeetingState, run *entities.WorkflowRun, mentioned mentionedAssignees) (*entities.FinalReport, error) {
	stage := StageIntake
	if err := e.intake(state); err != nil {
		return e.report(state, stage), err
	}

	stage = StageSummarize
	e.markStage(run, stage)
	input := trace.Digest(state)
	diff, err := e.summarize(ctx, state)
	if err != nil {
		return e.report(state, stage), err
	}
	e.transition(state, stage, diff, input)

	stage = StageExtract
	e.markStage(run, stage)
	input = trace.Digest(state)
	diff, err = e.extract(ctx, state, mentioned)
	if err != nil {
		return e.report(state, stage), err
	}
	e.transition(state, stage, diff, input)

	// The one conditional edge: nothing extracted means nothing to assign,
	// schedule, or notify.
	if len(state.ActionItems) == 0 {
		e.logger.Info("🪁 No action items found, skipping to done",
			zap.String("run_id", state.RunID.String()),
		)
		return e.done(ctx, state)
	}

	stage = StageAssign
	e.markStage(run, stage)
	input = trace.Digest(state)
	diff, err = e.assign(ctx, state, mentioned)
	if err != nil {
		return e.report(state, stage), err
	}
	e.transition(state, stage, diff, input)

	stage = StageDeadline
	e.markStage(run, stage)
	input = trace.Digest(state)
	e.transition(state, stage, e.deadline(ctx, state), input)

	stage = StageNotify
	e.markStage(run, stage)
	input = trace.Digest(state)
	e.transition(state, stage, e.notify(ctx, state), input)

	return e.done(ctx, state)
}

// intake validates the transcript before any model call is spent on it
func (e *Engine) intake(state *entities.MeetingState) error {
	if state.TranscriptLength() < minTranscriptChars {
		return entities.ErrTranscriptTooShort
	}
	if state.MeetingDate.IsZero() {
		state.MeetingDate = state.StartedAt
	}
	return nil
}

func (e *Engine) summarize(ctx context.Context, state *entities.MeetingState) (StateDiff, error) {
	out, err := e.extractor.Summarize(ctx, state.Transcript)
	if err != nil {
		return StateDiff{}, err
	}
	return StateDiff{
		Summary: &entities.MeetingSummary{
			Text:         out.Summary,
			KeyTopics:    out.KeyTopics,
			Participants: out.Participants,
		},
	}, nil
}

func (e *Engine) extract(ctx context.Context, state *entities.MeetingState, mentioned mentionedAssignees) (StateDiff, error) {
	out, err := e.extractor.ExtractActionItems(ctx, state.Transcript, state.Summary.Text)
	if err != nil {
		return StateDiff{}, err
	}

	items := make([]*entities.ActionItem, 0, len(out.ActionItems))
	for i, raw := range out.ActionItems {
		item := entities.NewActionItem(i, raw.Description)
		item.Context = raw.Context
		item.RawDeadline = raw.Deadline
		if raw.Assignee != "" {
			mentioned[item.ID] = raw.Assignee
		}
		items = append(items, item)
	}
	return StateDiff{ActionItems: items}, nil
}

// assign resolves assignees item by item. A failed item is recorded and left
// unassigned; the rest of the batch proceeds. A namespace mismatch is a
// wiring bug and aborts the run.
func (e *Engine) assign(ctx context.Context, state *entities.MeetingState, mentioned mentionedAssignees) (StateDiff, error) {
	var diff StateDiff
	for _, item := range state.ActionItems {
		if err := e.assigner.Resolve(ctx, item, mentioned[item.ID]); err != nil {
			if apperrors.HasCode(err, apperrors.ErrorCode_INDEX_MISMATCH) {
				return StateDiff{}, err
			}
			diff.Errors = append(diff.Errors, fmt.Sprintf("assign %s: %v", item.ID, err))
		}
	}
	return diff, nil
}

func (e *Engine) deadline(ctx context.Context, state *entities.MeetingState) StateDiff {
	var diff StateDiff
	for _, item := range state.ActionItems {
		if err := e.deadliner.Resolve(ctx, item, state.MeetingDate); err != nil {
			diff.Errors = append(diff.Errors, fmt.Sprintf("deadline %s: %v", item.ID, err))
		}
	}
	return diff
}

// notify writes one durable record per finalized item. Items without an
// assignee or date are skipped, not failed.
func (e *Engine) notify(ctx context.Context, state *entities.MeetingState) StateDiff {
	var diff StateDiff
	for _, item := range state.ActionItems {
		if !item.Notifiable() {
			item.Status = entities.ActionItemStatusSkipped
			continue
		}
		if err := e.notifier.Notify(ctx, state.RunID, item); err != nil {
			diff.Errors = append(diff.Errors, fmt.Sprintf("notify %s: %v", item.ID, err))
			continue
		}
		item.Status = entities.ActionItemStatusNotified
	}
	return diff
}

func (e *Engine) done(ctx context.Context, state *entities.MeetingState) (*entities.FinalReport, error) {
	if e.archiver != nil {
		if err := e.archiver.Archive(ctx, state); err != nil {
			// Archiving feeds future retrieval; this run's results stand.
			e.logger.Warn("⚠️ Meeting archive failed",
				zap.String("run_id", state.RunID.String()),
				zap.Error(err),
			)
			state.Errors = append(state.Errors, fmt.Sprintf("archive: %v", err))
		}
	}

	report := e.report(state, StageDone)
	e.logger.Info("🏁 Workflow run finished",
		zap.String("run_id", state.RunID.String()),
		zap.Int("action_items", len(report.ActionItems)),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// transition merges the stage's diff and emits the trace event. The input
// digest must be taken before the stage runs: assign, deadline and notify
// mutate items in place, so digesting here would hide their effect.
func (e *Engine) transition(state *entities.MeetingState, stage Stage, diff StateDiff, inputDigest string) {
	merge(state, diff)
	e.tracer.Emit(trace.Event{
		RunID:        state.RunID.String(),
		Stage:        string(stage),
		InputDigest:  inputDigest,
		OutputDigest: trace.Digest(state),
		At:           time.Now().UTC(),
	})
}

func (e *Engine) report(state *entities.MeetingState, stage Stage) *entities.FinalReport {
	items := state.ActionItems
	if items == nil {
		items = []*entities.ActionItem{}
	}
	return &entities.FinalReport{
		RunID:       state.RunID,
		Summary:     state.Summary,
		ActionItems: items,
		Errors:      state.Errors,
		Stage:       string(stage),
	}
}

func (e *Engine) markStage(run *entities.WorkflowRun, stage Stage) {
	run.Stage = string(stage)
}

// finishRun persists the terminal run row. Persistence failures are logged,
// never surfaced over the report.
func (e *Engine) finishRun(ctx context.Context, run *entities.WorkflowRun, report *entities.FinalReport, runErr error) {
	if e.runs == nil {
		return
	}

	now := time.Now().UTC()
	run.FinishedAt = &now
	if runErr != nil {
		run.Status = entities.WorkflowRunStatusFailed
		msg := runErr.Error()
		run.LastError = &msg
	} else {
		run.Status = entities.WorkflowRunStatusCompleted
		run.Stage = string(StageDone)
	}
	if report != nil {
		run.ActionItemCount = len(report.ActionItems)
	}

	// The run timeout may have expired; persist with a fresh context.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.runs.Update(persistCtx, run); err != nil {
		e.logger.Error("Failed to persist workflow run", zap.Error(err))
	}
}

// ExtractMeetingDate pulls the meeting date from the transcript header,
// falling back to zero when absent or unparseable. The intake stage treats
// zero as "use the run start time".
func ExtractMeetingDate(transcript string) time.Time {
	info := retrieval.ParseTranscriptHeader(transcript)
	if raw, ok := info["date"]; ok {
		if t, parsed := deadline.ParseMeetingDate(raw); parsed {
			return t
		}
	}
	return time.Time{}
}
