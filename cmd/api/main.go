package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/academics-api/internal/config"
	"github.com/opencampus/academics-api/internal/database"
	"github.com/opencampus/academics-api/internal/handler"
	"github.com/opencampus/academics-api/internal/middleware"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/observability"
	"github.com/opencampus/academics-api/internal/repository"
	"github.com/opencampus/academics-api/internal/router"
	"github.com/opencampus/academics-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Department{},
		&models.Course{},
		&models.AcademicYear{},
		&models.StudentBatch{},
		&models.CourseSection{},
		&models.Faculty{},
		&models.Student{},
		&models.AssignmentCategory{},
		&models.Assignment{},
		&models.AssignmentGroup{},
		&models.LearningOutcome{},
		&models.AssignmentSubmission{},
		&models.AssignmentGrade{},
		&models.GradeHistory{},
		&models.PeerReview{},
		&models.PlagiarismCheck{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	events := service.NewEventPublisher(natsConn, logger)
	activityService := service.NewActivityService(activityRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, catalogRepo, validate, activityService, events, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, events, logger)
	gradingService := service.NewGradingService(submissionRepo, gradeRepo, validate, activityService, events, logger)
	dashboardService := service.NewSectionDashboardService(assignmentRepo, submissionRepo, catalogRepo, redisClient, cfg.DashboardCacheTTL, logger)
	catalogService := service.NewCatalogService(catalogRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler:       handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler:       handler.NewSubmissionHandler(submissionService, logger),
		GradingHandler:          handler.NewGradingHandler(gradingService, logger),
		CatalogHandler:          handler.NewCatalogHandler(catalogService, logger),
		SectionDashboardHandler: handler.NewSectionDashboardHandler(dashboardService, logger),
		ActivityHandler:         handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("server started")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
