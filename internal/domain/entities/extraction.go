package entities

import "fmt"

// Structured output schemas for language-model calls. Every model call site
// has one schema; a payload that does not validate never reaches a caller.

// SummaryOutput is the summarize-stage schema
type SummaryOutput struct {
	Summary      string   `json:"summary"`
	KeyTopics    []string `json:"key_topics"`
	Participants []string `json:"participants"`
}

// Validate checks required fields
func (o *SummaryOutput) Validate() error {
	if o.Summary == "" {
		return fmt.Errorf("missing summary")
	}
	if o.KeyTopics == nil {
		o.KeyTopics = []string{}
	}
	if o.Participants == nil {
		o.Participants = []string{}
	}
	return nil
}

// ExtractedActionItem is one action item as the model reports it
type ExtractedActionItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Context     string `json:"context,omitempty"`
}

// ActionItemListOutput is the extract-stage schema. An empty list is a valid
// result; a missing description is not.
type ActionItemListOutput struct {
	ActionItems []ExtractedActionItem `json:"action_items"`
}

// Validate checks required fields
func (o *ActionItemListOutput) Validate() error {
	if o.ActionItems == nil {
		o.ActionItems = []ExtractedActionItem{}
	}
	for i, item := range o.ActionItems {
		if item.Description == "" {
			return fmt.Errorf("action item %d missing description", i)
		}
	}
	return nil
}

// AssigneeMatchOutput is the assign-stage schema: the person identifier the
// model selected among retrieved candidates
type AssigneeMatchOutput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Validate checks required fields
func (o *AssigneeMatchOutput) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("missing name")
	}
	return nil
}

// DeadlineOutput is the deadline-stage schema, an ISO date
type DeadlineOutput struct {
	Deadline string `json:"deadline"`
}

// Validate checks required fields
func (o *DeadlineOutput) Validate() error {
	if o.Deadline == "" {
		return fmt.Errorf("missing deadline")
	}
	return nil
}

// QuestionCategory is the routing decision for an assistant question
type QuestionCategory string

const (
	QuestionCategoryTeam    QuestionCategory = "team"
	QuestionCategoryMeeting QuestionCategory = "meeting"
	QuestionCategoryGeneral QuestionCategory = "general"
)

// Valid reports whether the category is one of the three routes
func (c QuestionCategory) Valid() bool {
	switch c {
	case QuestionCategoryTeam, QuestionCategoryMeeting, QuestionCategoryGeneral:
		return true
	}
	return false
}

// ClassificationOutput is the question-router schema
type ClassificationOutput struct {
	Category  QuestionCategory `json:"category"`
	Reasoning string           `json:"reasoning,omitempty"`
}

// Validate checks the category is one of the enumerated routes
func (o *ClassificationOutput) Validate() error {
	if !o.Category.Valid() {
		return fmt.Errorf("invalid category %q", o.Category)
	}
	return nil
}
