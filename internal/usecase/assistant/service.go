// Package assistant answers questions over the team directory and meeting
// history. Every question is classified first, then routed to exactly one
// retrieval namespace (or none for general knowledge).
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
	"github.com/johnquangdev/team-assistant/pkg/llm"
)

// Classifier routes and answers questions. Satisfied by extract.Extractor.
type Classifier interface {
	ClassifyQuestion(ctx context.Context, question string, history []llm.Message) (*entities.ClassificationOutput, error)
	Answer(ctx context.Context, category entities.QuestionCategory, question, retrievedContext string, history []llm.Message) (string, error)
}

// HistoryStore keeps per-session conversation history
type HistoryStore interface {
	History(ctx context.Context, sessionID string) []llm.Message
	Append(ctx context.Context, sessionID, role, content string)
}

// Service is the question router
type Service struct {
	classifier   Classifier
	teamIndex    *retrieval.Index
	meetingIndex *retrieval.Index
	history      HistoryStore
	topK         int
	logger       *zap.Logger
}

// NewService wires the router over both indices
func NewService(classifier Classifier, teamIndex, meetingIndex *retrieval.Index, history HistoryStore, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = 3
	}
	return &Service{
		classifier:   classifier,
		teamIndex:    teamIndex,
		meetingIndex: meetingIndex,
		history:      history,
		topK:         topK,
		logger:       logger,
	}
}

// Ask classifies the question, retrieves grounding for team and meeting
// questions, and returns the generated answer with its sources. A failed
// classification is surfaced to the caller, never silently re-routed.
func (s *Service) Ask(ctx context.Context, sessionID, question string) (*entities.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, entities.ErrEmptyQuestion
	}

	var history []llm.Message
	if s.history != nil && sessionID != "" {
		history = s.history.History(ctx, sessionID)
	}

	classification, err := s.classifier.ClassifyQuestion(ctx, question, history)
	if err != nil {
		return nil, err
	}

	retrievedContext, grounding, err := s.retrieve(ctx, classification.Category, question)
	if err != nil {
		return nil, err
	}

	text, err := s.classifier.Answer(ctx, classification.Category, question, retrievedContext, history)
	if err != nil {
		return nil, err
	}

	if s.history != nil && sessionID != "" {
		s.history.Append(ctx, sessionID, "user", question)
		s.history.Append(ctx, sessionID, "assistant", text)
	}

	s.logger.Info("💬 Question answered",
		zap.String("category", string(classification.Category)),
		zap.Int("sources", len(grounding)),
	)
	return &entities.Answer{
		Text:      text,
		Category:  classification.Category,
		Grounding: grounding,
	}, nil
}

func (s *Service) retrieve(ctx context.Context, category entities.QuestionCategory, question string) (string, []entities.SourceRef, error) {
	switch category {
	case entities.QuestionCategoryTeam:
		results, err := s.teamIndex.Query(ctx, retrieval.NamespaceTeamDirectory, question, s.topK)
		if err != nil {
			return "", nil, err
		}
		return renderTeamContext(results), sourceRefs(retrieval.NamespaceTeamDirectory, results, "name"), nil

	case entities.QuestionCategoryMeeting:
		results, err := s.meetingIndex.Query(ctx, retrieval.NamespaceMeetingHistory, question, s.topK)
		if err != nil {
			return "", nil, err
		}
		return renderMeetingContext(results), sourceRefs(retrieval.NamespaceMeetingHistory, results, "title"), nil

	default:
		// General questions get no retrieval and cite no sources.
		return "", nil, nil
	}
}

func renderTeamContext(results []retrieval.Result) string {
	blocks := make([]string, 0, len(results))
	for _, res := range results {
		blocks = append(blocks, fmt.Sprintf("[%s - %s]\n%s",
			res.Document.Metadata["name"],
			res.Document.Metadata["role"],
			res.Document.Text,
		))
	}
	return strings.Join(blocks, "\n\n")
}

func renderMeetingContext(results []retrieval.Result) string {
	blocks := make([]string, 0, len(results))
	for _, res := range results {
		blocks = append(blocks, fmt.Sprintf("[%s - %s]\n%s",
			res.Document.Metadata["title"],
			res.Document.Metadata["date"],
			res.Document.Text,
		))
	}
	return strings.Join(blocks, "\n\n")
}

func sourceRefs(ns retrieval.Namespace, results []retrieval.Result, titleKey string) []entities.SourceRef {
	refs := make([]entities.SourceRef, 0, len(results))
	for _, res := range results {
		refs = append(refs, entities.SourceRef{
			Namespace:  string(ns),
			DocumentID: res.Document.ID,
			Title:      res.Document.Metadata[titleKey],
			Score:      res.Score,
		})
	}
	return refs
}
