package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// StatusResponse is the body of the health and readiness endpoints.
type StatusResponse struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Fail replies with a message and a machine-readable failure kind.
func Fail(c *fiber.Ctx, status int, kind, message string) error {
	return JSON(c, status, ErrorResponse{Message: message, Kind: kind})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return Fail(c, status, "", message)
}

func Status(c *fiber.Ctx, status int, state string, details map[string]string) error {
	return JSON(c, status, StatusResponse{Status: state, Details: details})
}
