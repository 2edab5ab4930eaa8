package entities

import "errors"

// Domain errors
var (
	// Workflow errors
	ErrTranscriptTooShort = errors.New("transcript is empty or too short (minimum 20 characters)")
	ErrRunNotFound        = errors.New("workflow run not found")
	ErrMeetingNotFound    = errors.New("meeting record not found")

	// Directory errors
	ErrTeamMemberNotFound = errors.New("team member not found")
	ErrEmptyDirectory     = errors.New("team directory is empty")

	// Assistant errors
	ErrEmptyQuestion = errors.New("question is empty")

	// Retrieval errors
	ErrEmptyDocument = errors.New("document text is empty")
)
