package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrportal/recruiting-api/internal/config"
	"hrportal/recruiting-api/internal/handlers"
	"hrportal/recruiting-api/internal/repositories"
	"hrportal/recruiting-api/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	log.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("model", cfg.LLM.Model))

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Error("failed to initialize database", zap.Error(err))
		return err
	}

	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Error("failed to create upload directory", zap.Error(err))
		return err
	}

	llm, err := services.NewGeminiService(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, log)
	if err != nil {
		log.Error("failed to initialize Gemini client", zap.Error(err))
		return err
	}

	recruiting := services.NewRecruitingService(
		jobRepo,
		appRepo,
		storageService,
		services.NewDocumentExtractor(),
		services.NewQuestionGenerator(llm, log),
		services.NewCandidateEvaluator(llm, log),
		log,
	)

	jobHandler := handlers.NewJobHandler(recruiting, cfg.LLM.RequestTimeout, log)
	applicationHandler := handlers.NewApplicationHandler(
		recruiting,
		cfg.Storage.MaxFileSize,
		cfg.LLM.RequestTimeout,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      "HR Recruiting Portal API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.RequestTimeout + 30*time.Second,
		// multipart overhead on top of the largest accepted resume
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.Server.CORSOrigins != "*",
	}))

	handlers.RegisterRoutes(app.Group("/api/v1"), jobHandler, applicationHandler)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HR Recruiting Portal API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"DELETE /api/v1/jobs/:id",
				"GET /api/v1/jobs/:id/questions",
				"POST /api/v1/applications/apply",
				"GET /api/v1/applications/job/:id",
				"GET /api/v1/applications/job/:id/export",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", zap.Error(err))
		return err
	}
	return nil
}

func customErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}
}
