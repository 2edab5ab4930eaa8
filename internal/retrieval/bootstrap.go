package retrieval

import (
	"fmt"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// TeamDocuments renders team members as directory documents. One document
// per member, keyed by name so assignment lookups can resolve back to the
// member record.
func TeamDocuments(members []*entities.TeamMember) []Document {
	docs := make([]Document, 0, len(members))
	for _, m := range members {
		docs = append(docs, Document{
			ID:   "member-" + m.ID.String(),
			Text: m.ProfileDocument(),
			Metadata: map[string]string{
				"name":  m.Name,
				"email": m.Email,
				"role":  m.Role,
			},
		})
	}
	return docs
}

// MeetingDocuments chunks archived transcripts into history documents. Each
// chunk carries its meeting id and title so answers can cite the source.
func MeetingDocuments(records []*entities.MeetingRecord) []Document {
	var docs []Document
	for _, r := range records {
		chunks := SplitTranscript(r.FullText, 0)
		for i, chunk := range chunks {
			docs = append(docs, Document{
				ID:   fmt.Sprintf("%s-chunk-%d", r.MeetingID, i),
				Text: chunk,
				Metadata: map[string]string{
					"meeting_id": r.MeetingID,
					"title":      r.Title,
					"date":       r.MeetingDate.Format("2006-01-02"),
				},
			})
		}
	}
	return docs
}
