package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// RunRepository persists workflow run records
type RunRepository interface {
	Create(ctx context.Context, run *entities.WorkflowRun) error
	Update(ctx context.Context, run *entities.WorkflowRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.WorkflowRun, error)
}
