package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/recruiting-api/internal/models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByJobID returns the job's applications oldest first.
func (r *applicationRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	return applications, nil
}
