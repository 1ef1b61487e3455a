package api

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/i18n"
	"github.com/terraincognita07/localediff/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps service and loader errors to an HTTP status.
// Unknown errors are logged and hidden behind a generic 500.
func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var (
		encodingErr *i18n.EncodingError
		parseErr    *i18n.ParseError
	)

	switch {
	case errors.Is(err, services.ErrTranslationFileNotFound):
		return apiError(c, fiber.StatusNotFound, "translation file not found")
	case errors.Is(err, services.ErrTranslationFileExists):
		return apiError(c, fiber.StatusConflict, "translation file already exists")
	case errors.Is(err, services.ErrProtectedTranslationFile):
		return apiError(c, fiber.StatusBadRequest, "default translation files cannot be deleted")
	case errors.Is(err, services.ErrInvalidTranslationName),
		errors.Is(err, services.ErrUnknownLanguage),
		errors.Is(err, services.ErrInvalidTranslationPatch):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &encodingErr), errors.As(err, &parseErr):
		return apiError(c, fiber.StatusUnprocessableEntity, "translation file is not a valid document")
	default:
		log.Printf("api: %s %s: %v", c.Method(), c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func parseLimitQuery(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.Atoi(trimmed)
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

func currentActor(c *fiber.Ctx) string {
	actor, _ := c.Locals(contextActorKey).(string)
	return actor
}
