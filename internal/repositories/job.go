package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/recruiting-api/internal/models"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	FindAll(ctx context.Context) ([]models.Job, error)
	DeleteWithApplications(ctx context.Context, id uuid.UUID) (*models.Job, int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) FindAll(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// DeleteWithApplications removes the job and every application filed against
// it in one transaction. It returns the deleted job and the number of
// applications removed.
func (r *jobRepository) DeleteWithApplications(ctx context.Context, id uuid.UUID) (*models.Job, int64, error) {
	var (
		job     models.Job
		deleted int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("job not found: %w", err)
			}
			return fmt.Errorf("failed to find job: %w", err)
		}

		result := tx.Where("job_id = ?", id).Delete(&models.Application{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete applications: %w", result.Error)
		}
		deleted = result.RowsAffected

		if err := tx.Delete(&job).Error; err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return &job, deleted, nil
}
