package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(api fiber.Router, jobs *JobHandler, applications *ApplicationHandler) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/jobs", jobs.HandleCreate)
	api.Get("/jobs", jobs.HandleList)
	api.Get("/jobs/:id", jobs.HandleGet)
	api.Delete("/jobs/:id", jobs.HandleDelete)
	api.Get("/jobs/:id/questions", jobs.HandleQuestions)

	api.Post("/applications/apply", applications.HandleApply)
	api.Get("/applications/job/:id", applications.HandleListByJob)
	api.Get("/applications/job/:id/export", applications.HandleExport)
}
