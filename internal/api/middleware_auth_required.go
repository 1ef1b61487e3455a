package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/security"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	if rawToken == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	claims, err := security.ParseToken(handler.secretKey, rawToken, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextActorKey, claims.Subject)
	return c.Next()
}
