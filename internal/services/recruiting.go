package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "hrportal/recruiting-api/internal/errors"
	"hrportal/recruiting-api/internal/models"
	"hrportal/recruiting-api/internal/repositories"
)

type CreateJobInput struct {
	Title        string
	Description  string
	Requirements string
}

type SubmitApplicationInput struct {
	JobID          uuid.UUID
	ApplicantName  *string
	ApplicantEmail *string
	Answers        []models.AnswerRecord
	ResumeFilename string
	Resume         io.Reader
}

type DeleteJobResult struct {
	Job                 *models.Job
	DeletedApplications int64
}

// RecruitingService is what the HTTP layer drives: job management, interview
// question generation, application submission and ranking.
type RecruitingService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) (*DeleteJobResult, error)
	GenerateQuestions(ctx context.Context, jobID uuid.UUID) ([]string, error)
	SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*models.Application, error)
	ListRankedApplications(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationView, error)
	ExportRankedApplications(ctx context.Context, jobID uuid.UUID) (*bytes.Buffer, *models.Job, error)
}

type recruitingService struct {
	jobRepo   repositories.JobRepository
	appRepo   repositories.ApplicationRepository
	storage   StorageService
	extractor DocumentExtractor
	questions QuestionGenerator
	evaluator CandidateEvaluator
	log       *zap.Logger
}

func NewRecruitingService(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	storage StorageService,
	extractor DocumentExtractor,
	questions QuestionGenerator,
	evaluator CandidateEvaluator,
	log *zap.Logger,
) RecruitingService {
	return &recruitingService{
		jobRepo:   jobRepo,
		appRepo:   appRepo,
		storage:   storage,
		extractor: extractor,
		questions: questions,
		evaluator: evaluator,
		log:       log,
	}
}

func (s *recruitingService) CreateJob(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.InvalidInput("title is required", nil)
	}
	if strings.TrimSpace(input.Requirements) == "" {
		return nil, apperrors.InvalidInput("requirements is required", nil)
	}

	job := &models.Job{
		Title:        title,
		Description:  input.Description,
		Requirements: input.Requirements,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.Internal("failed to create job", err)
	}

	s.log.Info("job created", zap.String("job_id", job.ID.String()), zap.String("title", job.Title))
	return job, nil
}

func (s *recruitingService) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list jobs", err)
	}
	return jobs, nil
}

func (s *recruitingService) GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found", err)
		}
		return nil, apperrors.Internal("failed to load job", err)
	}
	return job, nil
}

func (s *recruitingService) DeleteJob(ctx context.Context, jobID uuid.UUID) (*DeleteJobResult, error) {
	job, deleted, err := s.jobRepo.DeleteWithApplications(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found", err)
		}
		return nil, apperrors.Internal("failed to delete job", err)
	}

	s.log.Info("job deleted",
		zap.String("job_id", jobID.String()),
		zap.Int64("applications_deleted", deleted),
	)
	return &DeleteJobResult{Job: job, DeletedApplications: deleted}, nil
}

// GenerateQuestions asks the model for interview questions about the job's
// requirements. Every call goes to the model; results are not cached.
func (s *recruitingService) GenerateQuestions(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.Generate(ctx, job.Requirements)
	if err != nil {
		return nil, apperrors.ModelCall("failed to generate questions", err)
	}
	if questions == nil {
		questions = []string{}
	}

	s.log.Info("questions generated", zap.String("job_id", jobID.String()), zap.Int("count", len(questions)))
	return questions, nil
}

// SubmitApplication stores the resume, evaluates the candidate and persists
// the application. The job is checked before anything is written; if the
// evaluation or the insert fails the stored resume is removed again.
func (s *recruitingService) SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*models.Application, error) {
	if input.Resume == nil {
		return nil, apperrors.InvalidInput("resume file is required", nil)
	}

	job, err := s.GetJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	answers := input.Answers
	if answers == nil {
		answers = []models.AnswerRecord{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, apperrors.InvalidInput("answers cannot be encoded", err)
	}

	stored, err := s.storage.Save(input.ResumeFilename, input.Resume)
	if err != nil {
		return nil, apperrors.Internal("failed to store resume", err)
	}

	extraction := s.extractor.Extract(stored.Path)
	if extraction.Status == ExtractionFailed {
		s.log.Warn("resume extraction failed, evaluating with error marker",
			zap.String("job_id", job.ID.String()),
			zap.String("file", stored.Filename),
			zap.Error(extraction.Err),
		)
	}

	evaluation, err := s.evaluator.Evaluate(ctx, job.Requirements, extraction.ResumeText(), answers)
	if err != nil {
		s.discardResume(stored)
		return nil, apperrors.ModelCall("failed to evaluate application", err)
	}

	application := &models.Application{
		JobID:          job.ID,
		ApplicantName:  normalizeOptional(input.ApplicantName),
		ApplicantEmail: normalizeOptional(input.ApplicantEmail),
		ResumePath:     stored.Path,
		ResumeFilename: stored.OriginalName,
		AnswersJSON:    string(answersJSON),
		AIEvaluation:   evaluation,
	}
	if err := s.appRepo.Create(ctx, application); err != nil {
		s.discardResume(stored)
		return nil, apperrors.Internal("failed to save application", err)
	}

	fields := []zap.Field{
		zap.String("job_id", job.ID.String()),
		zap.String("application_id", application.ID.String()),
		zap.String("extraction", extraction.Status.String()),
	}
	if score, ok := ExtractScore(evaluation); ok {
		fields = append(fields, zap.Float64("score", score))
	}
	s.log.Info("application evaluated", fields...)

	return application, nil
}

func (s *recruitingService) ListRankedApplications(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationView, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	applications, err := s.appRepo.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, apperrors.Internal("failed to list applications", err)
	}

	return RankApplications(applications), nil
}

func (s *recruitingService) ExportRankedApplications(ctx context.Context, jobID uuid.UUID) (*bytes.Buffer, *models.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}

	applications, err := s.appRepo.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to list applications", err)
	}

	buf, err := ExportRanking(job, RankApplications(applications))
	if err != nil {
		return nil, nil, apperrors.Internal("failed to export ranking", err)
	}
	return buf, job, nil
}

func (s *recruitingService) discardResume(stored *StoredFile) {
	if err := s.storage.DeleteFile(stored.Filename); err != nil {
		s.log.Warn("failed to remove stored resume", zap.String("file", stored.Filename), zap.Error(err))
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
