package entities

// SourceRef identifies a retrieved document grounding an answer
type SourceRef struct {
	Namespace  string  `json:"namespace"`
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title,omitempty"`
	Score      float64 `json:"score"`
}

// Answer is the assistant's response to a question, with optional grounding
type Answer struct {
	Text      string           `json:"answer"`
	Category  QuestionCategory `json:"category"`
	Grounding []SourceRef      `json:"grounding,omitempty"`
}
