package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hrportal/recruiting-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Job{}, &models.Application{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createJob(t *testing.T, repo JobRepository, title string) *models.Job {
	t.Helper()
	job := &models.Job{Title: title, Description: "desc", Requirements: "Python, 3+ years"}
	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if job.ID == uuid.Nil {
		t.Fatalf("expected job ID to be assigned on create")
	}
	return job
}

func createApplication(t *testing.T, repo ApplicationRepository, jobID uuid.UUID, evaluation string) *models.Application {
	t.Helper()
	app := &models.Application{JobID: jobID, AnswersJSON: "[]", AIEvaluation: evaluation}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return app
}

func TestJobRepositoryFindByID(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobRepository(db)
	ctx := context.Background()

	job := createJob(t, jobs, "Backend Engineer")

	found, err := jobs.FindByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if found.Title != "Backend Engineer" || found.Requirements != "Python, 3+ years" {
		t.Fatalf("unexpected job: %+v", found)
	}

	_, err = jobs.FindByID(ctx, uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestJobRepositoryFindAll(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobRepository(db)

	createJob(t, jobs, "First")
	createJob(t, jobs, "Second")

	all, err := jobs.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}
}

func TestDeleteWithApplicationsCascades(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobRepository(db)
	apps := NewApplicationRepository(db)
	ctx := context.Background()

	target := createJob(t, jobs, "Data Engineer")
	other := createJob(t, jobs, "Designer")

	createApplication(t, apps, target.ID, "Final Score: 80\nHR Summary: Good.")
	createApplication(t, apps, target.ID, "Final Score: 10\nHR Summary: Weak.")
	createApplication(t, apps, other.ID, "Final Score: 55\nHR Summary: Fine.")

	deletedJob, deleted, err := jobs.DeleteWithApplications(ctx, target.ID)
	if err != nil {
		t.Fatalf("DeleteWithApplications() failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 applications deleted, got %d", deleted)
	}
	if deletedJob.Title != "Data Engineer" {
		t.Fatalf("unexpected deleted job: %+v", deletedJob)
	}

	var orphans int64
	if err := db.Model(&models.Application{}).Where("job_id = ?", target.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected no orphan applications, got %d", orphans)
	}

	remaining, err := apps.FindByJobID(ctx, other.ID)
	if err != nil {
		t.Fatalf("FindByJobID() failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected other job's application to survive, got %d", len(remaining))
	}

	if _, err := jobs.FindByID(ctx, target.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected deleted job to be gone, got %v", err)
	}
}

func TestDeleteWithApplicationsMissingJob(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobRepository(db)

	_, _, err := jobs.DeleteWithApplications(context.Background(), uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestFindByJobIDPreservesInsertOrder(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobRepository(db)
	apps := NewApplicationRepository(db)
	ctx := context.Background()

	job := createJob(t, jobs, "QA")
	first := createApplication(t, apps, job.ID, "Final Score: 1")
	second := createApplication(t, apps, job.ID, "Final Score: 2")

	found, err := apps.FindByJobID(ctx, job.ID)
	if err != nil {
		t.Fatalf("FindByJobID() failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(found))
	}
	if found[0].ID != first.ID || found[1].ID != second.ID {
		t.Fatalf("unexpected order: %s, %s", found[0].ID, found[1].ID)
	}

	none, err := apps.FindByJobID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByJobID() failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no applications for unknown job, got %d", len(none))
	}
}
