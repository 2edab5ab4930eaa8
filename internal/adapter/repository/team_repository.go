package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// TeamRepository implements the team repository interface using GORM
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{
		db: db,
	}
}

// ListAll returns the full team directory in name order
func (r *TeamRepository) ListAll(ctx context.Context) ([]*entities.TeamMember, error) {
	var members []*entities.TeamMember
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&members).Error; err != nil {
		return nil, apperrors.ErrDBQueryFailed("list team members", err)
	}
	return members, nil
}

// FindByName finds a team member by exact name
func (r *TeamRepository) FindByName(ctx context.Context, name string) (*entities.TeamMember, error) {
	var member entities.TeamMember
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&member).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrTeamMemberNotFound
		}
		return nil, apperrors.ErrDBQueryFailed("find team member", err)
	}
	return &member, nil
}

// Create creates a new team member
func (r *TeamRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return apperrors.ErrDBQueryFailed("create team member", err)
	}
	return nil
}
