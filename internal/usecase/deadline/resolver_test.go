package deadline

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// Saturday March 15, 2025
var meetingDate = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestParsePhrase(t *testing.T) {
	cases := []struct {
		phrase string
		want   string
	}{
		{"by 2025-04-01", "2025-04-01"},
		{"by Friday", "2025-03-21"},
		{"next Monday", "2025-03-17"},
		{"end of this week", "2025-03-21"},
		{"next week", "2025-03-17"},
		{"tomorrow", "2025-03-16"},
		{"end of month", "2025-03-31"},
		{"end of Q2", "2025-06-30"},
		{"ASAP", "2025-03-18"},
		{"within 10 days", "2025-03-25"},
		{"February 12th", "2026-02-12"},
		{"April 2nd", "2025-04-02"},
	}
	for _, tc := range cases {
		t.Run(tc.phrase, func(t *testing.T) {
			due, ok := ParsePhrase(tc.phrase, meetingDate)
			if !ok {
				t.Fatalf("ParsePhrase(%q) not resolved", tc.phrase)
			}
			if got := due.Format("2006-01-02"); got != tc.want {
				t.Errorf("ParsePhrase(%q) = %s, want %s", tc.phrase, got, tc.want)
			}
		})
	}
}

func TestParsePhraseUnresolvable(t *testing.T) {
	for _, phrase := range []string{"when the vendor responds", "after the launch", ""} {
		if _, ok := ParsePhrase(phrase, meetingDate); ok {
			t.Errorf("ParsePhrase(%q) unexpectedly resolved", phrase)
		}
	}
}

type scriptedModel struct {
	deadline string
	err      error
	calls    int
}

func (m *scriptedModel) ResolveDeadline(_ context.Context, _, _, _ string) (*entities.DeadlineOutput, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &entities.DeadlineOutput{Deadline: m.deadline}, nil
}

func TestResolveExplicitPhraseSkipsModel(t *testing.T) {
	model := &scriptedModel{deadline: "2099-01-01"}
	r := NewResolver(model, 7, zap.NewNop())

	item := entities.NewActionItem(0, "draft the rollout plan")
	item.RawDeadline = "by Friday"

	if err := r.Resolve(context.Background(), item, meetingDate); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if model.calls != 0 {
		t.Errorf("expected no model calls, got %d", model.calls)
	}
	if got := item.DueDate.Format("2006-01-02"); got != "2025-03-21" {
		t.Errorf("due date = %s", got)
	}
	if item.DeadlineInferred {
		t.Error("explicit deadline marked inferred")
	}
	if item.Status != entities.ActionItemStatusScheduled {
		t.Errorf("status = %q", item.Status)
	}
}

func TestResolveNoDeadlineUsesFallback(t *testing.T) {
	r := NewResolver(nil, 7, zap.NewNop())

	item := entities.NewActionItem(0, "follow up with legal")
	if err := r.Resolve(context.Background(), item, meetingDate); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := item.DueDate.Format("2006-01-02"); got != "2025-03-22" {
		t.Errorf("due date = %s", got)
	}
	if !item.DeadlineInferred {
		t.Error("fallback date not marked inferred")
	}
}

func TestResolveAmbiguousPhraseAsksModel(t *testing.T) {
	model := &scriptedModel{deadline: "2025-04-10"}
	r := NewResolver(model, 7, zap.NewNop())

	item := entities.NewActionItem(0, "ship after vendor signoff")
	item.RawDeadline = "once the vendor signs off"

	if err := r.Resolve(context.Background(), item, meetingDate); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if model.calls != 1 {
		t.Errorf("expected 1 model call, got %d", model.calls)
	}
	if got := item.DueDate.Format("2006-01-02"); got != "2025-04-10" {
		t.Errorf("due date = %s", got)
	}
	if item.DeadlineInferred {
		t.Error("model-resolved deadline marked inferred")
	}
}

func TestResolveModelFailureUsesFallback(t *testing.T) {
	model := &scriptedModel{err: errors.New("model down")}
	r := NewResolver(model, 5, zap.NewNop())

	item := entities.NewActionItem(0, "ship after vendor signoff")
	item.RawDeadline = "once the vendor signs off"

	if err := r.Resolve(context.Background(), item, meetingDate); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := item.DueDate.Format("2006-01-02"); got != "2025-03-20" {
		t.Errorf("due date = %s", got)
	}
	if !item.DeadlineInferred {
		t.Error("fallback date not marked inferred")
	}
}

func TestResolveIdempotentForDatedItems(t *testing.T) {
	r := NewResolver(nil, 7, zap.NewNop())

	existing := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	item := entities.NewActionItem(0, "already scheduled")
	item.DueDate = &existing

	if err := r.Resolve(context.Background(), item, meetingDate); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !item.DueDate.Equal(existing) {
		t.Errorf("due date changed to %v", item.DueDate)
	}
}

func TestParseMeetingDate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"March 15, 2025", "2025-03-15", true},
		{"2025-03-15", "2025-03-15", true},
		{"03/15/2025", "2025-03-15", true},
		{"sometime in spring", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMeetingDate(tc.raw)
		if ok != tc.ok {
			t.Errorf("ParseMeetingDate(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseMeetingDate(%q) = %s, want %s", tc.raw, got.Format("2006-01-02"), tc.want)
		}
	}
}
