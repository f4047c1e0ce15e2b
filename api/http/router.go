package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/askexpert/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, roles *handlers.RolesHandler, ask *handlers.AskHandler, form *handlers.FormHandler) {
	// Server-rendered form
	app.Get("/", form.Show)
	app.Post("/", form.Submit)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	v1.Get("/roles", roles.List)
	v1.Post("/ask", ask.Ask)
}
