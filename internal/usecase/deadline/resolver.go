// Package deadline resolves deadline phrases into concrete due dates. Every
// action item leaves this stage with a date: explicit phrases are parsed
// locally, ambiguous ones go to the model, and anything unresolvable falls
// back to a configured offset from the meeting date.
package deadline

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// PhraseResolver asks the model to resolve a phrase. Satisfied by
// extract.Extractor.
type PhraseResolver interface {
	ResolveDeadline(ctx context.Context, meetingDate, phrase, task string) (*entities.DeadlineOutput, error)
}

// Resolver turns deadline phrases into dates
type Resolver struct {
	model        PhraseResolver
	fallbackDays int
	logger       *zap.Logger
}

// NewResolver builds a resolver. model may be nil to disable the LLM path.
func NewResolver(model PhraseResolver, fallbackDays int, logger *zap.Logger) *Resolver {
	if fallbackDays <= 0 {
		fallbackDays = 7
	}
	return &Resolver{model: model, fallbackDays: fallbackDays, logger: logger}
}

// Resolve sets DueDate on the item. The date is always concrete; the
// DeadlineInferred flag records when it came from the fallback offset rather
// than the transcript.
func (r *Resolver) Resolve(ctx context.Context, item *entities.ActionItem, meetingDate time.Time) error {
	if item.DueDate != nil {
		return nil
	}

	phrase := strings.TrimSpace(item.RawDeadline)
	if phrase == "" {
		r.applyFallback(item, meetingDate, "no deadline mentioned")
		return nil
	}

	if due, ok := ParsePhrase(phrase, meetingDate); ok {
		item.DueDate = &due
		item.DeadlineInferred = false
		r.markScheduled(item)
		return nil
	}

	if r.model != nil {
		out, err := r.model.ResolveDeadline(ctx, meetingDate.Format("2006-01-02"), phrase, item.Description)
		if err == nil {
			if due, perr := time.Parse("2006-01-02", out.Deadline); perr == nil {
				item.DueDate = &due
				item.DeadlineInferred = false
				r.markScheduled(item)
				return nil
			}
		} else {
			r.logger.Warn("⚠️ Model deadline resolution failed, using fallback",
				zap.String("action_item", item.ID),
				zap.String("phrase", phrase),
				zap.Error(err),
			)
		}
	}

	r.applyFallback(item, meetingDate, phrase)
	return nil
}

func (r *Resolver) applyFallback(item *entities.ActionItem, meetingDate time.Time, reason string) {
	due := meetingDate.AddDate(0, 0, r.fallbackDays)
	item.DueDate = &due
	item.DeadlineInferred = true
	r.markScheduled(item)
	r.logger.Info("📅 Deadline inferred",
		zap.String("action_item", item.ID),
		zap.String("reason", reason),
		zap.Time("due_date", due),
	)
}

func (r *Resolver) markScheduled(item *entities.ActionItem) {
	if item.Status == entities.ActionItemStatusPending || item.Status == entities.ActionItemStatusAssigned {
		item.Status = entities.ActionItemStatusScheduled
	}
}

var (
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	weekdayRe     = regexp.MustCompile(`(?i)\b(?:by|on|next|this)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	monthDayRe    = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	quarterRe     = regexp.MustCompile(`(?i)\bend of q([1-4])\b`)
	endOfWeekRe   = regexp.MustCompile(`(?i)\bend of (?:the |this )?week\b`)
	endOfMonthRe  = regexp.MustCompile(`(?i)\bend of (?:the |this )?month\b`)
	nextWeekRe    = regexp.MustCompile(`(?i)\bnext week\b`)
	tomorrowRe    = regexp.MustCompile(`(?i)\btomorrow\b`)
	immediatelyRe = regexp.MustCompile(`(?i)\b(?:asap|immediately|right away)\b`)
	inDaysRe      = regexp.MustCompile(`(?i)\b(?:in|within)\s+(\d+)\s+days?\b`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ParsePhrase resolves common deadline phrases against a reference date
// without a model call. Returns false when the phrase needs the model.
func ParsePhrase(phrase string, ref time.Time) (time.Time, bool) {
	ref = truncateToDay(ref)

	if m := isoDateRe.FindStringSubmatch(phrase); m != nil {
		if due, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			return due, true
		}
	}

	if m := monthDayRe.FindStringSubmatch(phrase); m != nil {
		month := months[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		due := time.Date(ref.Year(), month, day, 0, 0, 0, 0, time.UTC)
		// A month/day earlier in the year than the meeting means next year.
		if due.Before(ref) {
			due = due.AddDate(1, 0, 0)
		}
		return due, true
	}

	if m := quarterRe.FindStringSubmatch(phrase); m != nil {
		q, _ := strconv.Atoi(m[1])
		lastMonth := time.Month(q * 3)
		firstOfNext := time.Date(ref.Year(), lastMonth+1, 1, 0, 0, 0, 0, time.UTC)
		due := firstOfNext.AddDate(0, 0, -1)
		if due.Before(ref) {
			due = due.AddDate(1, 0, 0)
		}
		return due, true
	}

	if endOfWeekRe.MatchString(phrase) {
		return nextWeekday(ref, time.Friday), true
	}
	if endOfMonthRe.MatchString(phrase) {
		firstOfNext := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return firstOfNext.AddDate(0, 0, -1), true
	}
	if nextWeekRe.MatchString(phrase) {
		return nextWeekday(ref, time.Monday), true
	}
	if tomorrowRe.MatchString(phrase) {
		return ref.AddDate(0, 0, 1), true
	}
	if immediatelyRe.MatchString(phrase) {
		return addBusinessDays(ref, 2), true
	}
	if m := inDaysRe.FindStringSubmatch(phrase); m != nil {
		days, _ := strconv.Atoi(m[1])
		return ref.AddDate(0, 0, days), true
	}
	if m := weekdayRe.FindStringSubmatch(phrase); m != nil {
		return nextWeekday(ref, weekdays[strings.ToLower(m[1])]), true
	}

	return time.Time{}, false
}

// ParseMeetingDate parses header date strings like "March 15, 2025" or
// "2025-03-15"
func ParseMeetingDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"2006-01-02",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"01/02/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nextWeekday returns the next occurrence of day strictly after ref
func nextWeekday(ref time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(ref.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDate(0, 0, delta)
}

func addBusinessDays(ref time.Time, days int) time.Time {
	out := ref
	for added := 0; added < days; {
		out = out.AddDate(0, 0, 1)
		if out.Weekday() != time.Saturday && out.Weekday() != time.Sunday {
			added++
		}
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
