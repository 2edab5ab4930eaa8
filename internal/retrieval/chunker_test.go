package retrieval

import (
	"strings"
	"testing"
)

const sampleTranscript = `Meeting: Platform Sync
Date: March 15, 2025
Attendees: Sarah Chen, Mike Johnson

Sarah: We need to finish the database migration this sprint.
Mike: I can take the frontend cleanup once the API stabilizes.
Sarah: Let's also schedule the kubernetes upgrade for next week.
Mike: Sounds good, I'll draft the rollout plan by Friday.`

func TestParseTranscriptHeader(t *testing.T) {
	info := ParseTranscriptHeader(sampleTranscript)

	if info["meeting"] != "Platform Sync" {
		t.Errorf("meeting = %q", info["meeting"])
	}
	if info["date"] != "March 15, 2025" {
		t.Errorf("date = %q", info["date"])
	}
	if info["attendees"] != "Sarah Chen, Mike Johnson" {
		t.Errorf("attendees = %q", info["attendees"])
	}
}

func TestParseTranscriptHeaderMissingFields(t *testing.T) {
	info := ParseTranscriptHeader("Sarah: no header here at all")
	if len(info) != 0 {
		t.Errorf("expected empty header info, got %v", info)
	}
}

func TestSplitTranscriptPrependsHeader(t *testing.T) {
	chunks := SplitTranscript(sampleTranscript, 150)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if !strings.HasPrefix(chunk, "Meeting: Platform Sync") {
			t.Errorf("chunk %d missing header prefix: %q", i, chunk[:40])
		}
	}
}

func TestSplitTranscriptShortInput(t *testing.T) {
	chunks := SplitTranscript(sampleTranscript, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk under default size, got %d", len(chunks))
	}
	if chunks[0] == "" {
		t.Error("chunk is empty")
	}
}

func TestSplitTranscriptEmpty(t *testing.T) {
	if chunks := SplitTranscript("   \n  ", 100); chunks != nil {
		t.Errorf("expected nil for blank input, got %v", chunks)
	}
}

func TestSplitTranscriptNoHeader(t *testing.T) {
	text := "Sarah: first line about databases.\nMike: second line about frontend."
	chunks := SplitTranscript(text, 40)
	if len(chunks) < 2 {
		t.Fatalf("expected split without header, got %d chunks", len(chunks))
	}
}
