package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/askexpert/api/http/presenter"
	"github.com/artem13815/askexpert/pkg/health"
)

const readinessTimeout = time.Second

// HealthHandler serves liveness and readiness. Neither endpoint calls the model.
type HealthHandler struct {
	readiness health.ReadinessUseCase
}

func NewHealthHandler(readiness health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

// Health reports the process is serving.
// @Summary Liveness check
// @Tags    health
// @Produce json
// @Success 200 {object} presenter.StatusResponse
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.Status(c, http.StatusOK, "ok", nil)
}

// Ready lists every checker; 503 while any fails (e.g. no API key).
// @Summary Readiness check
// @Tags    health
// @Produce json
// @Success 200 {object} presenter.StatusResponse
// @Failure 503 {object} presenter.StatusResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	report := h.readiness.Report(ctx)
	if !report.Ready {
		return presenter.Status(c, http.StatusServiceUnavailable, "not_ready", report.Checks)
	}
	return presenter.Status(c, http.StatusOK, "ready", report.Checks)
}
