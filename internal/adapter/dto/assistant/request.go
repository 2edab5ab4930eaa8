package assistant

// AskRequest represents an assistant question
type AskRequest struct {
	Question  string `json:"question" validate:"required,min=1,max=2000"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}
