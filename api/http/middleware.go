package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// BaseContext gives every request a user context derived from base, so
// in-flight asks are cancelled when base is (server shutdown). The request
// context is also cancelled once the handler returns.
func BaseContext(base context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithCancel(base)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
