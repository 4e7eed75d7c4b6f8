package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/opencampus/academics-api/internal/config"
	"github.com/opencampus/academics-api/internal/handler"
	"github.com/opencampus/academics-api/internal/middleware"
	"github.com/opencampus/academics-api/internal/observability"
	"github.com/opencampus/academics-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler       *handler.AssignmentHandler
	SubmissionHandler       *handler.SubmissionHandler
	GradingHandler          *handler.GradingHandler
	CatalogHandler          *handler.CatalogHandler
	SectionDashboardHandler *handler.SectionDashboardHandler
	ActivityHandler         *handler.ActivityHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	facultyOnly := middleware.RequireRole(service.RoleFaculty, service.RoleAdmin)
	adminOnly := middleware.RequireRole(service.RoleAdmin)
	studentOnly := middleware.RequireRole(service.RoleStudent)

	academics := app.Group("/api/v1/academics",
		middleware.RateLimit("academics", cfg.RateLimitMax, cfg.RateLimitWindow),
		jwtMiddleware,
	)

	if deps.AssignmentHandler != nil {
		assignmentGroup := academics.Group("/assignments")
		deps.AssignmentHandler.Register(assignmentGroup, facultyOnly)
	}

	if deps.SubmissionHandler != nil {
		submissionGroup := academics.Group("/submissions")
		deps.SubmissionHandler.Register(submissionGroup, studentOnly)

		if deps.GradingHandler != nil {
			deps.GradingHandler.Register(submissionGroup, facultyOnly)
		}
	}

	if deps.CatalogHandler != nil {
		catalogGroup := academics.Group("/catalog")
		deps.CatalogHandler.Register(catalogGroup)
	}

	if deps.SectionDashboardHandler != nil {
		deps.SectionDashboardHandler.Register(academics, facultyOnly)
	}

	if deps.ActivityHandler != nil {
		activityGroup := academics.Group("/activity", adminOnly)
		deps.ActivityHandler.Register(activityGroup)
	}
}
