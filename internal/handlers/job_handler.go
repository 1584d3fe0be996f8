package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hrportal/recruiting-api/internal/models"
	"hrportal/recruiting-api/internal/services"
)

type JobHandler struct {
	recruiting     services.RecruitingService
	requestTimeout time.Duration
	log            *zap.Logger
}

func NewJobHandler(
	recruiting services.RecruitingService,
	requestTimeout time.Duration,
	log *zap.Logger,
) *JobHandler {
	return &JobHandler{
		recruiting:     recruiting,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	job, err := h.recruiting.CreateJob(c.UserContext(), services.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateJobResponse{
		Success: true,
		Job:     job,
	})
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.recruiting.ListJobs(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(jobs)
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return respondError(c, h.log, err)
	}

	job, err := h.recruiting.GetJob(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(job)
}

// HandleDelete handles DELETE /jobs/:id
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return respondError(c, h.log, err)
	}

	result, err := h.recruiting.DeleteJob(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.DeleteJobResponse{
		Success: true,
		Message: fmt.Sprintf("Job '%s' and %d applications deleted successfully", result.Job.Title, result.DeletedApplications),
	})
}

// HandleQuestions handles GET /jobs/:id/questions. Questions are generated
// fresh on every call.
func (h *JobHandler) HandleQuestions(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.requestTimeout)
	defer cancel()

	questions, err := h.recruiting.GenerateQuestions(ctx, jobID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.QuestionsResponse{Questions: questions})
}
