package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// RunRepository implements the workflow run repository using GORM
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// Create records a started run
func (r *RunRepository) Create(ctx context.Context, run *entities.WorkflowRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return apperrors.ErrDBQueryFailed("create workflow run", err)
	}
	return nil
}

// Update persists the run's current stage and status
func (r *RunRepository) Update(ctx context.Context, run *entities.WorkflowRun) error {
	if err := r.db.WithContext(ctx).Save(run).Error; err != nil {
		return apperrors.ErrDBQueryFailed("update workflow run", err)
	}
	return nil
}

// FindByID finds a run by ID
func (r *RunRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WorkflowRun, error) {
	var run entities.WorkflowRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrRunNotFound
		}
		return nil, apperrors.ErrDBQueryFailed("find workflow run", err)
	}
	return &run, nil
}
