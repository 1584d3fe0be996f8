package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrportal/recruiting-api/internal/models"
	"hrportal/recruiting-api/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	recruiting     services.RecruitingService
	maxFileSize    int64
	requestTimeout time.Duration
	log            *zap.Logger
}

func NewApplicationHandler(
	recruiting services.RecruitingService,
	maxFileSize int64,
	requestTimeout time.Duration,
	log *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		recruiting:     recruiting,
		maxFileSize:    maxFileSize,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// HandleApply handles POST /applications/apply
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.FormValue("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if resume.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	answers := []models.AnswerRecord{}
	if raw := strings.TrimSpace(c.FormValue("answers_json")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "answers_json must be a JSON array of {question, answer} objects",
			})
		}
	}

	file, err := resume.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read resume file",
		})
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.UserContext(), h.requestTimeout)
	defer cancel()

	application, err := h.recruiting.SubmitApplication(ctx, services.SubmitApplicationInput{
		JobID:          jobID,
		ApplicantName:  formValuePtr(c, "applicant_name"),
		ApplicantEmail: formValuePtr(c, "applicant_email"),
		Answers:        answers,
		ResumeFilename: resume.Filename,
		Resume:         file,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.ApplyResponse{
		Success:       true,
		ApplicationID: application.ID.String(),
		AIEvaluation:  application.AIEvaluation,
	})
}

// HandleListByJob handles GET /applications/job/:id, ranked best first.
func (h *ApplicationHandler) HandleListByJob(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return respondError(c, h.log, err)
	}

	views, err := h.recruiting.ListRankedApplications(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(views)
}

// HandleExport handles GET /applications/job/:id/export
func (h *ApplicationHandler) HandleExport(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id", "job")
	if err != nil {
		return respondError(c, h.log, err)
	}

	buf, job, err := h.recruiting.ExportRankedApplications(c.UserContext(), jobID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFilename(job.Title, jobID)))
	return c.Send(buf.Bytes())
}

// exportFilename turns the job title into a header-safe file name,
// falling back to the job ID when nothing usable is left.
func exportFilename(title string, jobID uuid.UUID) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		slug = jobID.String()
	}
	return "ranking_" + slug + ".xlsx"
}

func formValuePtr(c *fiber.Ctx, key string) *string {
	value := c.FormValue(key)
	if value == "" {
		return nil
	}
	return &value
}
