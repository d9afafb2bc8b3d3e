package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/config"
	"github.com/edupoint-labs/exam-portal-api/internal/handler"
	"github.com/edupoint-labs/exam-portal-api/internal/middleware"
	"github.com/edupoint-labs/exam-portal-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	CatalogHandler    *handler.CatalogHandler
	ExamHandler       *handler.ExamHandler
	QuizHandler       *handler.QuizHandler
	SubmissionHandler *handler.SubmissionHandler
	ResultHandler     *handler.ResultHandler
	PaperHandler      *handler.PaperHandler
	FileHandler       *handler.FileHandler
	ActivityHandler   *handler.ActivityHandler
	TokenResolver     middleware.TokenResolver
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Every route below resolves a bearer token into a principal when one is
	// present; per-route role guards take it from there.
	optionalAuth := middleware.OptionalAuth(deps.TokenResolver)

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.CatalogHandler != nil {
		deps.CatalogHandler.Register(api.Group("/public"))
	}

	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(api.Group("/exams", optionalAuth))
	}

	if deps.QuizHandler != nil {
		deps.QuizHandler.Register(api.Group("/quizzes", optionalAuth))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", optionalAuth))
		deps.SubmissionHandler.RegisterAnswerAppend(api.Group("", optionalAuth))
	}

	if deps.ResultHandler != nil {
		deps.ResultHandler.Register(api.Group("/results", optionalAuth))
	}

	if deps.PaperHandler != nil {
		deps.PaperHandler.Register(api.Group("/papers", optionalAuth))
	}

	if deps.FileHandler != nil {
		deps.FileHandler.Register(api.Group("/files", middleware.RequireAuth(deps.TokenResolver)))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activities", optionalAuth, middleware.RequireRole(auth.RoleAdmin)))
	}
}
