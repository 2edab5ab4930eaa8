package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
	"github.com/johnquangdev/team-assistant/pkg/llm"
)

type keywordEmbedder struct{}

func (keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	axes := []string{"database", "roadmap"}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, len(axes)+1)
		lower := strings.ToLower(text)
		for j, axis := range axes {
			v[j] = float32(strings.Count(lower, axis))
		}
		v[len(axes)] = 0.05
		out[i] = v
	}
	return out, nil
}

type scriptedClassifier struct {
	category    entities.QuestionCategory
	classifyErr error
	answer      string
	answerErr   error

	lastCategory entities.QuestionCategory
	lastContext  string
	lastHistory  []llm.Message
}

func (c *scriptedClassifier) ClassifyQuestion(_ context.Context, _ string, history []llm.Message) (*entities.ClassificationOutput, error) {
	c.lastHistory = history
	if c.classifyErr != nil {
		return nil, c.classifyErr
	}
	return &entities.ClassificationOutput{Category: c.category}, nil
}

func (c *scriptedClassifier) Answer(_ context.Context, category entities.QuestionCategory, _, retrievedContext string, _ []llm.Message) (string, error) {
	c.lastCategory = category
	c.lastContext = retrievedContext
	return c.answer, c.answerErr
}

type memoryHistory struct {
	mu   sync.Mutex
	data map[string][]llm.Message
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{data: make(map[string][]llm.Message)}
}

func (h *memoryHistory) History(_ context.Context, sessionID string) []llm.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]llm.Message(nil), h.data[sessionID]...)
}

func (h *memoryHistory) Append(_ context.Context, sessionID, role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data[sessionID] = append(h.data[sessionID], llm.Message{Role: role, Content: content})
}

func newTestService(t *testing.T, classifier Classifier) *Service {
	t.Helper()

	teamIx := retrieval.NewIndex(retrieval.NamespaceTeamDirectory, keywordEmbedder{}, nil)
	if _, err := teamIx.BulkInsert(context.Background(), []retrieval.Document{
		{ID: "member-1", Text: "Sarah Chen works on database reliability", Metadata: map[string]string{"name": "Sarah Chen", "role": "Backend Engineer"}},
	}); err != nil {
		t.Fatalf("team BulkInsert: %v", err)
	}

	meetingIx := retrieval.NewIndex(retrieval.NamespaceMeetingHistory, keywordEmbedder{}, nil)
	if _, err := meetingIx.BulkInsert(context.Background(), []retrieval.Document{
		{ID: "m1-chunk-0", Text: "We reviewed the roadmap for Q2", Metadata: map[string]string{"meeting_id": "m1", "title": "Planning", "date": "2025-03-01"}},
	}); err != nil {
		t.Fatalf("meeting BulkInsert: %v", err)
	}

	return NewService(classifier, teamIx, meetingIx, newMemoryHistory(), 3, zap.NewNop())
}

func TestAskTeamQuestionGroundsOnDirectory(t *testing.T) {
	classifier := &scriptedClassifier{category: entities.QuestionCategoryTeam, answer: "Sarah Chen owns databases."}
	svc := newTestService(t, classifier)

	answer, err := svc.Ask(context.Background(), "s1", "Who works on the database?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer.Category != entities.QuestionCategoryTeam {
		t.Errorf("category = %q", answer.Category)
	}
	if len(answer.Grounding) == 0 {
		t.Fatal("expected grounding sources")
	}
	if answer.Grounding[0].Namespace != string(retrieval.NamespaceTeamDirectory) {
		t.Errorf("grounding namespace = %q", answer.Grounding[0].Namespace)
	}
	if !strings.Contains(classifier.lastContext, "Sarah Chen") {
		t.Errorf("retrieved context missing profile: %q", classifier.lastContext)
	}
}

func TestAskMeetingQuestionGroundsOnHistory(t *testing.T) {
	classifier := &scriptedClassifier{category: entities.QuestionCategoryMeeting, answer: "The roadmap was reviewed."}
	svc := newTestService(t, classifier)

	answer, err := svc.Ask(context.Background(), "s1", "What did we decide about the roadmap?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer.Grounding[0].Namespace != string(retrieval.NamespaceMeetingHistory) {
		t.Errorf("grounding namespace = %q", answer.Grounding[0].Namespace)
	}
	if answer.Grounding[0].Title != "Planning" {
		t.Errorf("grounding title = %q", answer.Grounding[0].Title)
	}
}

func TestAskGeneralQuestionSkipsRetrieval(t *testing.T) {
	classifier := &scriptedClassifier{category: entities.QuestionCategoryGeneral, answer: "A mutex guards shared state."}
	svc := newTestService(t, classifier)

	answer, err := svc.Ask(context.Background(), "s1", "What is a mutex?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if len(answer.Grounding) != 0 {
		t.Errorf("general answer has grounding: %v", answer.Grounding)
	}
	if classifier.lastContext != "" {
		t.Errorf("general answer got retrieval context: %q", classifier.lastContext)
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	svc := newTestService(t, &scriptedClassifier{})

	if _, err := svc.Ask(context.Background(), "s1", "   "); !errors.Is(err, entities.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAskSurfacesClassificationFailure(t *testing.T) {
	classifier := &scriptedClassifier{classifyErr: apperrors.ErrClassificationFailed(errors.New("bad category"))}
	svc := newTestService(t, classifier)

	_, err := svc.Ask(context.Background(), "s1", "Who is the PM?")
	if !apperrors.HasCode(err, apperrors.ErrorCode_CLASSIFICATION_FAILED) {
		t.Fatalf("expected CLASSIFICATION_FAILED, got %v", err)
	}
}

func TestAskThreadsSessionHistory(t *testing.T) {
	classifier := &scriptedClassifier{category: entities.QuestionCategoryGeneral, answer: "First answer."}
	svc := newTestService(t, classifier)

	if _, err := svc.Ask(context.Background(), "s1", "First question?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "s1", "Second question?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if len(classifier.lastHistory) != 2 {
		t.Fatalf("expected 2 history messages on second ask, got %d", len(classifier.lastHistory))
	}
	if classifier.lastHistory[0].Role != "user" || classifier.lastHistory[1].Role != "assistant" {
		t.Errorf("history roles = %q, %q", classifier.lastHistory[0].Role, classifier.lastHistory[1].Role)
	}

	// Separate sessions stay isolated.
	if _, err := svc.Ask(context.Background(), "s2", "Unrelated question?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(classifier.lastHistory) != 0 {
		t.Errorf("expected empty history for new session, got %d messages", len(classifier.lastHistory))
	}
}
