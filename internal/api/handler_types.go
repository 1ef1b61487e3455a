package api

import (
	"time"

	"github.com/terraincognita07/localediff/internal/services"
)

const (
	defaultAuthTokenTTL = 12 * time.Hour
	loginAttemptLimit   = 5
	loginAttemptWindow  = 15 * time.Minute
	contextActorKey     = "actor"
)

type Handler struct {
	files             *services.TranslationFileService
	diffs             *services.DiffService
	secretKey         []byte
	adminUsername     string
	adminPasswordHash string
	tokenTTL          time.Duration
	loginLimiter      *attemptLimiter
	now               func() time.Time
}

type HandlerConfig struct {
	SecretKey         string
	AdminUsername     string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

type tokenRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type createTranslationFileRequest struct {
	FileName string         `json:"fileName"`
	Content  map[string]any `json:"content"`
}

type updateTranslationFileRequest struct {
	Content map[string]any `json:"content"`
}
