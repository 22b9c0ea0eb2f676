package handlers

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/config"
	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/storage"
)

// HealthHandler handles health probe requests
type HealthHandler struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Store storage.Store
	Log   *logger.Logger
}

// Get handles GET /api/health
// @Summary Service health
// @Description Probes the database and object storage. Returns 503 when any
// @Description dependency is unreachable.
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	result := services.HealthCheck(c.Context(), h.Cfg, h.DB, h.Store, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
