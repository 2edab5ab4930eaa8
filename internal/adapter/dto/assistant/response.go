package assistant

// SourceResponse is one grounding document behind an answer
type SourceResponse struct {
	Namespace  string  `json:"namespace"`
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title,omitempty"`
	Score      float64 `json:"score"`
}

// AskResponse is the assistant's answer with its route and grounding
type AskResponse struct {
	Answer    string           `json:"answer"`
	Category  string           `json:"category"`
	Grounding []SourceResponse `json:"grounding,omitempty"`
}
