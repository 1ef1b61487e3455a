package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/services"
)

func NewHandler(files *services.TranslationFileService, diffs *services.DiffService, config HandlerConfig) (*Handler, error) {
	if files == nil || diffs == nil {
		return nil, errors.New("translation and diff services are required")
	}
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	tokenTTL := config.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}

	return &Handler{
		files:             files,
		diffs:             diffs,
		secretKey:         []byte(config.SecretKey),
		adminUsername:     strings.TrimSpace(config.AdminUsername),
		adminPasswordHash: strings.TrimSpace(config.AdminPasswordHash),
		tokenTTL:          tokenTTL,
		loginLimiter:      newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:               time.Now,
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
