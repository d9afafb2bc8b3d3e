package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/edupoint-labs/exam-portal-api/internal/config"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

var startedAt = time.Now()

// HealthResponse is the payload served by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      string    `json:"uptime"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck returns a handler reporting liveness and basic identity.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "service healthy", HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Uptime:      time.Since(startedAt).Round(time.Second).String(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		})
	}
}
