package meeting

// ProcessTranscriptRequest represents the request to process a raw transcript
type ProcessTranscriptRequest struct {
	Transcript  string `json:"transcript" validate:"required,min=20"`
	Source      string `json:"source,omitempty" validate:"omitempty,oneof=upload audio seed"`
	MeetingDate string `json:"meeting_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// IngestAudioRequest represents the request to transcribe and process a
// meeting recording
type IngestAudioRequest struct {
	AudioURL    string `json:"audio_url" validate:"required,url"`
	MeetingDate string `json:"meeting_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
