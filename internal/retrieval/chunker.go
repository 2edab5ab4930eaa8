package retrieval

import "strings"

// Transcript chunking for the meeting history index. Transcripts are split
// on speaker turns into roughly chunkSize-character pieces, each prefixed
// with the header block so retrieval hits keep their meeting context.

const defaultChunkSize = 500

var headerPrefixes = []string{"Meeting:", "Date:", "Duration:", "Attendees:"}

// ParseTranscriptHeader extracts metadata from the first header lines of a
// transcript (Date:, Attendees:, Meeting:).
func ParseTranscriptHeader(text string) map[string]string {
	info := make(map[string]string)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Date:"):
			info["date"] = strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
		case strings.HasPrefix(line, "Attendees:"):
			info["attendees"] = strings.TrimSpace(strings.TrimPrefix(line, "Attendees:"))
		case strings.HasPrefix(line, "Meeting:"):
			info["meeting"] = strings.TrimSpace(strings.TrimPrefix(line, "Meeting:"))
		}
	}
	return info
}

// SplitTranscript splits a transcript into chunks for indexing. The header
// block is prepended to every chunk. chunkSize <= 0 uses the default.
func SplitTranscript(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")

	var headerLines, bodyLines []string
	inBody := false
	for _, line := range lines {
		if !inBody && strings.Contains(line, ":") && !isHeaderLine(line) {
			inBody = true
		}
		if inBody {
			bodyLines = append(bodyLines, line)
		} else {
			headerLines = append(headerLines, line)
		}
	}

	header := strings.TrimSpace(strings.Join(headerLines, "\n"))
	if len(bodyLines) == 0 {
		return []string{trimmed}
	}

	var chunks []string
	current := header + "\n\n"
	for _, line := range bodyLines {
		if len(current)+len(line) > chunkSize && len(current) > len(header)+10 {
			chunks = append(chunks, strings.TrimSpace(current))
			current = header + "\n\n" + line + "\n"
		} else {
			current += line + "\n"
		}
	}
	if trimmedChunk := strings.TrimSpace(current); trimmedChunk != "" && len(current) > len(header)+10 {
		chunks = append(chunks, trimmedChunk)
	}

	if len(chunks) == 0 {
		return []string{trimmed}
	}
	return chunks
}

func isHeaderLine(line string) bool {
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
