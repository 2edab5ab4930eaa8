package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
	"github.com/johnquangdev/team-assistant/internal/usecase/assistant"
	"github.com/johnquangdev/team-assistant/pkg/llm"
)

type stubClassifier struct {
	category    entities.QuestionCategory
	classifyErr error
	answer      string
}

func (s *stubClassifier) ClassifyQuestion(_ context.Context, _ string, _ []llm.Message) (*entities.ClassificationOutput, error) {
	if s.classifyErr != nil {
		return nil, s.classifyErr
	}
	return &entities.ClassificationOutput{Category: s.category}, nil
}

func (s *stubClassifier) Answer(_ context.Context, _ entities.QuestionCategory, _, _ string, _ []llm.Message) (string, error) {
	return s.answer, nil
}

type stubHistory struct{}

func (s *stubHistory) History(_ context.Context, _ string) []llm.Message { return nil }

func (s *stubHistory) Append(_ context.Context, _, _, _ string) {}

type unusedEmbedder struct{}

func (e *unusedEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1}
	}
	return out, nil
}

func newTestAssistantService(classifier *stubClassifier) *assistant.Service {
	embedder := &unusedEmbedder{}
	teamIndex := retrieval.NewIndex(retrieval.NamespaceTeamDirectory, embedder, zap.NewNop())
	meetingIndex := retrieval.NewIndex(retrieval.NamespaceMeetingHistory, embedder, zap.NewNop())
	return assistant.NewService(classifier, teamIndex, meetingIndex, &stubHistory{}, 3, zap.NewNop())
}

func TestAssistantAsk(t *testing.T) {
	classifier := &stubClassifier{
		category: entities.QuestionCategoryGeneral,
		answer:   "A standup is a short daily sync meeting.",
	}
	h := NewAssistantHandler(newTestAssistantService(classifier), zap.NewNop())

	payload, _ := json.Marshal(map[string]string{"question": "What is a standup?"})
	c, rec := newTestContext(t, http.MethodPost, "/v1/assistant/ask", string(payload))

	if err := h.Ask(c); err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	if data["answer"] != classifier.answer {
		t.Errorf("answer = %v", data["answer"])
	}
	if data["category"] != string(entities.QuestionCategoryGeneral) {
		t.Errorf("category = %v, want general", data["category"])
	}
}

func TestAssistantAskRejectsEmptyQuestion(t *testing.T) {
	h := NewAssistantHandler(newTestAssistantService(&stubClassifier{}), zap.NewNop())

	payload, _ := json.Marshal(map[string]string{"question": ""})
	c, rec := newTestContext(t, http.MethodPost, "/v1/assistant/ask", string(payload))

	if err := h.Ask(c); err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != errors.ErrorCode_INVALID_ARGUMENT.String() {
		t.Errorf("code = %v, want INVALID_ARGUMENT", body["code"])
	}
}

func TestAssistantAskClassificationFailure(t *testing.T) {
	classifier := &stubClassifier{
		classifyErr: errors.ErrClassificationFailed(context.DeadlineExceeded),
	}
	h := NewAssistantHandler(newTestAssistantService(classifier), zap.NewNop())

	payload, _ := json.Marshal(map[string]string{"question": "Who owns the billing service?"})
	c, rec := newTestContext(t, http.MethodPost, "/v1/assistant/ask", string(payload))

	if err := h.Ask(c); err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["code"] != errors.ErrorCode_CLASSIFICATION_FAILED.String() {
		t.Errorf("code = %v, want CLASSIFICATION_FAILED", body["code"])
	}
}
