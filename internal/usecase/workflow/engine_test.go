package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/pkg/trace"
)

const testTranscript = `Meeting: Sprint Planning
Date: March 15, 2025
Attendees: Sarah Chen, Mike Johnson

Sarah: Mike, please finish the database migration by Friday.
Mike: Will do. Sarah can draft the release notes next week.`

type fakeExtractor struct {
	summary     *entities.SummaryOutput
	summaryErr  error
	items       *entities.ActionItemListOutput
	itemsErr    error
	summarized  int
	extractions int
}

func (f *fakeExtractor) Summarize(_ context.Context, _ string) (*entities.SummaryOutput, error) {
	f.summarized++
	return f.summary, f.summaryErr
}

func (f *fakeExtractor) ExtractActionItems(_ context.Context, _, _ string) (*entities.ActionItemListOutput, error) {
	f.extractions++
	return f.items, f.itemsErr
}

type fakeAssigner struct {
	failID string
	err    error
	calls  int
}

func (f *fakeAssigner) Resolve(_ context.Context, item *entities.ActionItem, mentioned string) error {
	f.calls++
	if f.err != nil && (f.failID == "" || f.failID == item.ID) {
		return f.err
	}
	item.Assignee = &entities.TeamMemberRef{Name: "Sarah Chen", Email: "sarah@example.com"}
	item.AssigneeConfidence = 0.9
	item.Status = entities.ActionItemStatusAssigned
	return nil
}

type fakeDeadliner struct{ calls int }

func (f *fakeDeadliner) Resolve(_ context.Context, item *entities.ActionItem, meetingDate time.Time) error {
	f.calls++
	due := meetingDate.AddDate(0, 0, 7)
	item.DueDate = &due
	item.Status = entities.ActionItemStatusScheduled
	return nil
}

type fakeNotifier struct {
	err      error
	notified []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, item *entities.ActionItem) error {
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, item.ID)
	return nil
}

type fakeArchiver struct {
	err   error
	calls int
}

func (f *fakeArchiver) Archive(_ context.Context, _ *entities.MeetingState) error {
	f.calls++
	return f.err
}

type fakeRunRepo struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*entities.WorkflowRun
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[uuid.UUID]*entities.WorkflowRun)}
}

func (r *fakeRunRepo) Create(_ context.Context, run *entities.WorkflowRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *fakeRunRepo) Update(_ context.Context, run *entities.WorkflowRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *fakeRunRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.WorkflowRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run, ok := r.runs[id]; ok {
		return run, nil
	}
	return nil, entities.ErrRunNotFound
}

type captureSink struct {
	mu     sync.Mutex
	events []trace.Event
}

func (s *captureSink) Emit(event trace.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *captureSink) stages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Stage
	}
	return out
}

type fixture struct {
	extractor *fakeExtractor
	assigner  *fakeAssigner
	deadliner *fakeDeadliner
	notifier  *fakeNotifier
	archiver  *fakeArchiver
	runs      *fakeRunRepo
	tracer    *captureSink
	engine    *Engine
}

func newFixture(items ...entities.ExtractedActionItem) *fixture {
	f := &fixture{
		extractor: &fakeExtractor{
			summary: &entities.SummaryOutput{
				Summary:      "Sprint planning covered the migration and release notes.",
				KeyTopics:    []string{"migration"},
				Participants: []string{"Sarah Chen", "Mike Johnson"},
			},
			items: &entities.ActionItemListOutput{ActionItems: items},
		},
		assigner:  &fakeAssigner{},
		deadliner: &fakeDeadliner{},
		notifier:  &fakeNotifier{},
		archiver:  &fakeArchiver{},
		runs:      newFakeRunRepo(),
		tracer:    &captureSink{},
	}
	f.engine = NewEngine(f.extractor, f.assigner, f.deadliner, f.notifier, f.archiver, f.runs, f.tracer, time.Minute, zap.NewNop())
	return f
}

func defaultItems() []entities.ExtractedActionItem {
	return []entities.ExtractedActionItem{
		{Description: "finish the database migration", Assignee: "Mike", Deadline: "by Friday"},
		{Description: "draft the release notes", Assignee: "Sarah", Deadline: "next week"},
	}
}

func meetingDay() time.Time {
	return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
}

func TestProcessHappyPath(t *testing.T) {
	f := newFixture(defaultItems()...)

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if report.Stage != string(StageDone) {
		t.Errorf("stage = %q", report.Stage)
	}
	if len(report.ActionItems) != 2 {
		t.Fatalf("expected 2 action items, got %d", len(report.ActionItems))
	}
	for _, item := range report.ActionItems {
		if item.Status != entities.ActionItemStatusNotified {
			t.Errorf("item %s status = %q", item.ID, item.Status)
		}
		if item.DueDate == nil {
			t.Errorf("item %s has no due date", item.ID)
		}
	}
	if len(f.notifier.notified) != 2 {
		t.Errorf("notified %d items", len(f.notifier.notified))
	}
	if f.archiver.calls != 1 {
		t.Errorf("archive calls = %d", f.archiver.calls)
	}

	run, err := f.runs.FindByID(context.Background(), report.RunID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if run.Status != entities.WorkflowRunStatusCompleted {
		t.Errorf("run status = %q", run.Status)
	}
	if run.ActionItemCount != 2 {
		t.Errorf("run action item count = %d", run.ActionItemCount)
	}
	if run.FinishedAt == nil {
		t.Error("run has no finish time")
	}
}

func TestProcessEmitsStageTransitions(t *testing.T) {
	f := newFixture(defaultItems()...)

	if _, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []string{"summarize", "extract", "assign", "deadline", "notify"}
	got := f.tracer.stages()
	if len(got) != len(want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage[%d] = %q, want %q", i, got[i], want[i])
		}
		if f.tracer.events[i].InputDigest == "" || f.tracer.events[i].OutputDigest == "" {
			t.Errorf("stage %q missing digests", got[i])
		}
	}
}

func TestStageDigestsRecordEachStageEffect(t *testing.T) {
	f := newFixture(defaultItems()...)

	if _, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	events := f.tracer.events
	if len(events) != 5 {
		t.Fatalf("expected 5 transitions, got %d", len(events))
	}
	for _, e := range events {
		// Every stage in the happy path changes state: summary, items,
		// assignees, due dates, notified statuses.
		if e.InputDigest == e.OutputDigest {
			t.Errorf("stage %s: input digest == output digest (%s)", e.Stage, e.InputDigest)
		}
	}
	// Digests chain: nothing mutates state between one stage's merge and the
	// next stage's start.
	for i := 1; i < len(events); i++ {
		if events[i].InputDigest != events[i-1].OutputDigest {
			t.Errorf("stage %s input digest %s does not chain from %s output %s",
				events[i].Stage, events[i].InputDigest, events[i-1].Stage, events[i-1].OutputDigest)
		}
	}
}

func TestProcessRejectsShortTranscript(t *testing.T) {
	f := newFixture()

	_, err := f.engine.Process(context.Background(), "too short", "upload", meetingDay())
	if !errors.Is(err, entities.ErrTranscriptTooShort) {
		t.Fatalf("expected ErrTranscriptTooShort, got %v", err)
	}
	if f.extractor.summarized != 0 {
		t.Error("summarize ran on rejected transcript")
	}
}

func TestProcessBranchesToDoneWithoutActionItems(t *testing.T) {
	f := newFixture() // no items

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if report.Stage != string(StageDone) {
		t.Errorf("stage = %q", report.Stage)
	}
	if len(report.ActionItems) != 0 {
		t.Errorf("expected no action items, got %d", len(report.ActionItems))
	}
	if f.assigner.calls != 0 {
		t.Errorf("assign ran on empty extraction, calls = %d", f.assigner.calls)
	}
	if len(f.notifier.notified) != 0 {
		t.Error("notify ran on empty extraction")
	}
	if f.archiver.calls != 1 {
		t.Error("archive skipped on empty extraction")
	}

	got := f.tracer.stages()
	want := []string{"summarize", "extract"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("stages = %v, want %v", got, want)
	}
}

func TestProcessAbortsOnSummarizeFailure(t *testing.T) {
	f := newFixture(defaultItems()...)
	f.extractor.summaryErr = apperrors.ErrSchemaValidation("summarize", fmt.Errorf("bad payload"))

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if !apperrors.HasCode(err, apperrors.ErrorCode_SCHEMA_VALIDATION) {
		t.Fatalf("expected SCHEMA_VALIDATION, got %v", err)
	}
	if report.Stage != string(StageSummarize) {
		t.Errorf("stage = %q", report.Stage)
	}
	if f.extractor.extractions != 0 {
		t.Error("extract ran after summarize failure")
	}

	run, _ := f.runs.FindByID(context.Background(), report.RunID)
	if run.Status != entities.WorkflowRunStatusFailed {
		t.Errorf("run status = %q", run.Status)
	}
	if run.LastError == nil {
		t.Error("run has no last error")
	}
}

func TestProcessExtractFailurePreservesSummary(t *testing.T) {
	f := newFixture()
	f.extractor.itemsErr = apperrors.ErrSchemaValidation("extract", fmt.Errorf("bad payload"))

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if err == nil {
		t.Fatal("expected extract failure")
	}
	if report.Stage != string(StageExtract) {
		t.Errorf("stage = %q", report.Stage)
	}
	if report.Summary == nil || report.Summary.Text == "" {
		t.Error("summary lost on extract failure")
	}
}

func TestProcessDegradesPerItemOnAssignFailure(t *testing.T) {
	f := newFixture(defaultItems()...)
	f.assigner.err = errors.New("directory lookup failed")
	f.assigner.failID = "ai-001"

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(report.Errors) == 0 {
		t.Fatal("expected recorded assign error")
	}
	first, second := report.ActionItems[0], report.ActionItems[1]
	if first.Assigned() {
		t.Error("failed item unexpectedly assigned")
	}
	if first.Status != entities.ActionItemStatusSkipped {
		t.Errorf("unassigned item status = %q", first.Status)
	}
	if !second.Assigned() || second.Status != entities.ActionItemStatusNotified {
		t.Errorf("healthy item degraded: assigned=%v status=%q", second.Assigned(), second.Status)
	}
}

func TestProcessAbortsOnIndexMismatch(t *testing.T) {
	f := newFixture(defaultItems()...)
	f.assigner.err = apperrors.ErrIndexMismatch("team_directory", "meeting_history")

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if !apperrors.HasCode(err, apperrors.ErrorCode_INDEX_MISMATCH) {
		t.Fatalf("expected INDEX_MISMATCH, got %v", err)
	}
	if report.Stage != string(StageAssign) {
		t.Errorf("stage = %q", report.Stage)
	}
}

func TestProcessRecordsNotifyFailures(t *testing.T) {
	f := newFixture(defaultItems()...)
	f.notifier.err = apperrors.ErrNotificationFailed("ai-001", errors.New("db down"))

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(report.Errors) != 2 {
		t.Errorf("expected 2 notify errors, got %v", report.Errors)
	}
	for _, item := range report.ActionItems {
		if item.Status == entities.ActionItemStatusNotified {
			t.Errorf("item %s marked notified despite sink failure", item.ID)
		}
	}
}

func TestProcessArchiveFailureDoesNotFailRun(t *testing.T) {
	f := newFixture(defaultItems()...)
	f.archiver.err = errors.New("minio unreachable")

	report, err := f.engine.Process(context.Background(), testTranscript, "upload", meetingDay())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if report.Stage != string(StageDone) {
		t.Errorf("stage = %q", report.Stage)
	}
	if len(report.Errors) == 0 {
		t.Error("archive failure not recorded")
	}
}

func TestExtractMeetingDate(t *testing.T) {
	got := ExtractMeetingDate(testTranscript)
	if got.Format("2006-01-02") != "2025-03-15" {
		t.Errorf("meeting date = %v", got)
	}
	if !ExtractMeetingDate("no header at all").IsZero() {
		t.Error("expected zero date without header")
	}
}
