package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TeamMember is static reference data loaded once at process start and
// read-only thereafter. Identity is the (unique) name.
type TeamMember struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string         `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Email           string         `json:"email" gorm:"type:varchar(255);not null"`
	Role            string         `json:"role" gorm:"type:varchar(255)"`
	Expertise       datatypes.JSON `json:"expertise" gorm:"type:jsonb"`
	CurrentProjects datatypes.JSON `json:"current_projects" gorm:"type:jsonb"`
	ReportsTo       string         `json:"reports_to" gorm:"type:varchar(255)"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}

// ExpertiseTags decodes the expertise JSONB column
func (m *TeamMember) ExpertiseTags() []string {
	return decodeStringList(m.Expertise)
}

// Projects decodes the current_projects JSONB column
func (m *TeamMember) Projects() []string {
	return decodeStringList(m.CurrentProjects)
}

// ProfileDocument renders the member as the text indexed in the team
// directory: role, expertise and projects, so task descriptions match on
// what the person works on rather than just their name.
func (m *TeamMember) ProfileDocument() string {
	return fmt.Sprintf(
		"Name: %s\nRole: %s\nExpertise: %s\nCurrent Projects: %s\nReports To: %s",
		m.Name,
		m.Role,
		strings.Join(m.ExpertiseTags(), ", "),
		strings.Join(m.Projects(), ", "),
		m.ReportsTo,
	)
}

// Ref returns a lightweight reference for assignment results
func (m *TeamMember) Ref() *TeamMemberRef {
	return &TeamMemberRef{
		ID:    m.ID.String(),
		Name:  m.Name,
		Email: m.Email,
		Role:  m.Role,
	}
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
