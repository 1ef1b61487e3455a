package api

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/security"
)

func (handler *Handler) IssueToken(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	request := tokenRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	username := strings.TrimSpace(request.Username)
	if username == "" || request.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if !handler.validAdminCredentials(username, request.Password) {
		handler.loginLimiter.fail(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := security.IssueToken(handler.secretKey, username, handler.tokenTTL, now)
	if err != nil {
		log.Printf("api: issue token: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create token")
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"tokenType": "Bearer",
		"expiresAt": now.Add(handler.tokenTTL).UTC(),
	})
}

func (handler *Handler) validAdminCredentials(username string, password string) bool {
	if handler.adminUsername == "" || handler.adminPasswordHash == "" {
		return false
	}
	usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(handler.adminUsername)) == 1
	passwordMatches := security.CheckPassword(handler.adminPasswordHash, password)
	return usernameMatches && passwordMatches
}
