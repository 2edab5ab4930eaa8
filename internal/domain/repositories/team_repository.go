package repositories

import (
	"context"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// TeamRepository provides read access to the static team directory
type TeamRepository interface {
	ListAll(ctx context.Context) ([]*entities.TeamMember, error)
	FindByName(ctx context.Context, name string) (*entities.TeamMember, error)
	Create(ctx context.Context, member *entities.TeamMember) error
}
