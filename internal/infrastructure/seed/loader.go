// Package seed loads the bootstrap corpora from disk: the team directory
// JSON and archived transcripts. The seed script writes them to postgres;
// the server indexes them at startup.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/datatypes"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
	"github.com/johnquangdev/team-assistant/internal/usecase/deadline"
)

type directoryMember struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Expertise       []string `json:"expertise"`
	CurrentProjects []string `json:"current_projects"`
	ReportsTo       string   `json:"reports_to"`
}

// LoadTeamDirectory reads the team directory JSON file. An empty directory is
// an error: without members the assignment stage can never resolve anyone.
func LoadTeamDirectory(path string) ([]*entities.TeamMember, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team directory %s: %w", path, err)
	}

	var fileMembers []directoryMember
	if err := json.Unmarshal(raw, &fileMembers); err != nil {
		return nil, fmt.Errorf("failed to parse team directory %s: %w", path, err)
	}
	if len(fileMembers) == 0 {
		return nil, entities.ErrEmptyDirectory
	}

	members := make([]*entities.TeamMember, 0, len(fileMembers))
	for i, fm := range fileMembers {
		if fm.Name == "" || fm.Email == "" {
			return nil, fmt.Errorf("team directory entry %d missing name or email", i)
		}
		expertise, _ := json.Marshal(fm.Expertise)
		projects, _ := json.Marshal(fm.CurrentProjects)
		members = append(members, &entities.TeamMember{
			Name:            fm.Name,
			Email:           fm.Email,
			Role:            fm.Role,
			Expertise:       datatypes.JSON(expertise),
			CurrentProjects: datatypes.JSON(projects),
			ReportsTo:       fm.ReportsTo,
		})
	}
	return members, nil
}

// LoadTranscripts reads every .txt transcript in dir into meeting records.
// The filename (without extension) becomes the meeting id, so reseeding is
// idempotent against the unique index. An empty corpus is an error: the
// meeting route of the assistant has nothing to ground on without it.
func LoadTranscripts(dir string) ([]*entities.MeetingRecord, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts dir %s: %w", dir, err)
	}

	var records []*entities.MeetingRecord
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read transcript %s: %w", entry.Name(), err)
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			continue
		}
		records = append(records, recordFromTranscript(entry.Name(), text))
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no transcripts found in %s", dir)
	}
	return records, nil
}

func recordFromTranscript(filename, text string) *entities.MeetingRecord {
	meetingID := strings.TrimSuffix(filename, filepath.Ext(filename))
	info := retrieval.ParseTranscriptHeader(text)

	title := info["meeting"]
	if title == "" {
		title = meetingID
	}

	record := &entities.MeetingRecord{
		MeetingID: meetingID,
		Title:     title,
		FullText:  text,
		Source:    "seed",
	}

	if raw, ok := info["date"]; ok {
		if date, parsed := deadline.ParseMeetingDate(raw); parsed {
			record.MeetingDate = date
		}
	}
	if attendees, ok := info["attendees"]; ok {
		var names []string
		for _, name := range strings.Split(attendees, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		if participants, err := json.Marshal(names); err == nil {
			record.Participants = datatypes.JSON(participants)
		}
	}
	return record
}
