// Package extract is the structured extraction layer: every model call goes
// through here, and every response is parsed into a declared schema before a
// caller ever sees it. Schema failures are not retried; the caller decides
// whether to abort or degrade.
package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/pkg/llm"
)

// ChatClient is the model transport. Satisfied by llm.Client.
type ChatClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Extractor wraps a chat client with schema-enforced calls
type Extractor struct {
	client ChatClient
	logger *zap.Logger
}

// NewExtractor creates the extraction layer over the given client
func NewExtractor(client ChatClient, logger *zap.Logger) *Extractor {
	return &Extractor{client: client, logger: logger}
}

// Summarize produces the structured meeting summary
func (x *Extractor) Summarize(ctx context.Context, transcript string) (*entities.SummaryOutput, error) {
	content, err := x.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(summarizeUserPrompt, transcript)},
	})
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("llm", err)
	}

	var out entities.SummaryOutput
	if err := decodeInto(content, &out); err != nil {
		return nil, apperrors.ErrSchemaValidation("summarize", err)
	}
	x.logger.Info("📝 Summary generated",
		zap.Int("topics", len(out.KeyTopics)),
		zap.Int("participants", len(out.Participants)),
	)
	return &out, nil
}

// ExtractActionItems identifies tasks and commitments in the transcript.
// An empty list is a valid outcome.
func (x *Extractor) ExtractActionItems(ctx context.Context, transcript, summary string) (*entities.ActionItemListOutput, error) {
	content, err := x.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: extractActionsSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(extractActionsUserPrompt, transcript, summary)},
	})
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("llm", err)
	}

	var out entities.ActionItemListOutput
	if err := decodeInto(content, &out); err != nil {
		return nil, apperrors.ErrSchemaValidation("extract", err)
	}
	x.logger.Info("✅ Action items extracted", zap.Int("count", len(out.ActionItems)))
	return &out, nil
}

// MatchAssignee reranks retrieved candidates for one task. candidates is the
// rendered profile block for the prompt.
func (x *Extractor) MatchAssignee(ctx context.Context, task, taskContext, mentioned, candidates string) (*entities.AssigneeMatchOutput, error) {
	if mentioned == "" {
		mentioned = "none"
	}
	content, err := x.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: matchAssigneeSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(matchAssigneeUserPrompt, task, taskContext, mentioned, candidates)},
	})
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("llm", err)
	}

	var out entities.AssigneeMatchOutput
	if err := decodeInto(content, &out); err != nil {
		return nil, apperrors.ErrSchemaValidation("assign", err)
	}
	return &out, nil
}

// ResolveDeadline resolves a relative deadline phrase against the meeting date
func (x *Extractor) ResolveDeadline(ctx context.Context, meetingDate, phrase, task string) (*entities.DeadlineOutput, error) {
	content, err := x.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: resolveDeadlineSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(resolveDeadlineUserPrompt, meetingDate, phrase, task)},
	})
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("llm", err)
	}

	var out entities.DeadlineOutput
	if err := decodeInto(content, &out); err != nil {
		return nil, apperrors.ErrSchemaValidation("deadline", err)
	}
	return &out, nil
}

// ClassifyQuestion routes an assistant question into team/meeting/general
func (x *Extractor) ClassifyQuestion(ctx context.Context, question string, history []llm.Message) (*entities.ClassificationOutput, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: classifySystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: question})

	content, err := x.client.Complete(ctx, messages)
	if err != nil {
		return nil, apperrors.ErrClassificationFailed(err)
	}

	var out entities.ClassificationOutput
	if err := decodeInto(content, &out); err != nil {
		return nil, apperrors.ErrClassificationFailed(err)
	}
	x.logger.Info("🧭 Question classified",
		zap.String("category", string(out.Category)),
	)
	return &out, nil
}

// Answer generates a free-text answer for the given category, grounded on
// retrieved context for team and meeting questions.
func (x *Extractor) Answer(ctx context.Context, category entities.QuestionCategory, question, retrievedContext string, history []llm.Message) (string, error) {
	var system string
	switch category {
	case entities.QuestionCategoryTeam:
		system = fmt.Sprintf(teamAnswerSystemPrompt, retrievedContext)
	case entities.QuestionCategoryMeeting:
		system = fmt.Sprintf(meetingAnswerSystemPrompt, retrievedContext)
	default:
		system = generalAnswerSystemPrompt
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: question})

	content, err := x.client.Complete(ctx, messages)
	if err != nil {
		return "", apperrors.ErrExternalAPIFailed("llm", err)
	}
	answer := strings.TrimSpace(content)
	if answer == "" {
		return "", apperrors.ErrExternalAPIFailed("llm", fmt.Errorf("empty completion"))
	}
	return answer, nil
}
