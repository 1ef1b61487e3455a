package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/localediff/internal/api"
	"github.com/terraincognita07/localediff/internal/cli"
	"github.com/terraincognita07/localediff/internal/db"
	"github.com/terraincognita07/localediff/internal/i18n"
	"github.com/terraincognita07/localediff/internal/security"
	"github.com/terraincognita07/localediff/internal/services"
)

const (
	minSecretKeyLength = 32
	requestLogFormat   = "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func main() {
	if len(os.Args) > 1 {
		runCommand(os.Args[1])
		return
	}

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	port, err := resolvePort()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	adminPasswordHash, err := resolveAdminPasswordHash()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	filter, err := i18n.ParseGlobFilter(getEnv("LOCALE_IGNORE", ""))
	if err != nil {
		log.Fatalf("invalid configuration: LOCALE_IGNORE: %v", err)
	}

	dbPath := getEnv("DB_PATH", filepath.Join("data", "localediff.db"))
	translationsDir := getEnv("TRANSLATIONS_DIR", "translations")
	localesSourceDir := getEnv("LOCALES_SOURCE_DIR", filepath.Join("frontend", "src", "locales"))
	adminUsername := getEnv("ADMIN_USERNAME", "admin")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repositories := db.NewRepositories(database)

	files := services.NewTranslationFileService(translationsDir, repositories.FileChanges)
	if err := files.EnsureDefaults(localesSourceDir); err != nil {
		log.Fatalf("translations init failed: %v", err)
	}
	diffs := services.NewDiffService(files, repositories.DiffRuns, filter)

	handler, err := api.NewHandler(files, diffs, api.HandlerConfig{
		SecretKey:         secretKey,
		AdminUsername:     adminUsername,
		AdminPasswordHash: adminPasswordHash,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}
	if adminPasswordHash == "" {
		log.Printf("ADMIN_PASSWORD_HASH is not set, write routes are disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:               "localediff",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Format: requestLogFormat}))
	app.Use(compress.New())
	if origins := resolveAllowedOrigins(); origins != "" {
		app.Use(cors.New(corsMiddlewareConfig(origins)))
	}
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("localediff listening on http://0.0.0.0:%s (db: %s, translations: %s)", port, dbPath, translationsDir)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(name string) {
	var err error
	switch name {
	case "hash-password":
		err = cli.RunHashPasswordCommand(os.Stdin, os.Stdout)
	case "generate-secret":
		err = cli.RunGenerateSecretCommand(os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q (expected hash-password or generate-secret)", name)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", name, err)
	}
}

func resolveSecretKey() (string, error) {
	secretKey := getEnv("SECRET_KEY", "")
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secretKey]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveAdminPasswordHash() (string, error) {
	hash := getEnv("ADMIN_PASSWORD_HASH", "")
	if hash == "" {
		return "", nil
	}
	if err := security.ValidatePasswordHash(hash); err != nil {
		return "", fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
	}
	return hash, nil
}

func resolveAllowedOrigins() string {
	parts := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", ""), ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return strings.Join(origins, ",")
}

func corsMiddlewareConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Authorization,Content-Type",
	}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
