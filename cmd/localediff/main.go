package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/terraincognita07/localediff/internal/i18n"
	"github.com/terraincognita07/localediff/internal/report"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitDifferences = 2
)

var (
	defaultLocaleAPath = filepath.Join("frontend", "src", "locales", "fa.json")
	defaultLocaleBPath = filepath.Join("frontend", "src", "locales", "en.json")
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

func run(stdout io.Writer, stderr io.Writer) int {
	logger := log.New(stderr, "localediff: ", 0)

	format, err := resolveOutputFormat()
	if err != nil {
		logger.Printf("invalid configuration: %v", err)
		return exitFailure
	}
	filter, err := i18n.ParseGlobFilter(getEnv("LOCALE_IGNORE", ""))
	if err != nil {
		logger.Printf("invalid configuration: LOCALE_IGNORE: %v", err)
		return exitFailure
	}

	pathA := getEnv("LOCALE_A_PATH", defaultLocaleAPath)
	pathB := getEnv("LOCALE_B_PATH", defaultLocaleBPath)

	result, err := i18n.Compare(pathA, pathB, filter)
	if err != nil {
		logger.Print(err)
		return exitFailure
	}

	if err := report.Write(stdout, format, result); err != nil {
		logger.Printf("write report: %v", err)
		return exitFailure
	}

	if resolveStrict() && result.HasDifferences() {
		return exitDifferences
	}
	return exitOK
}

func resolveOutputFormat() (string, error) {
	format := strings.ToLower(getEnv("LOCALE_OUTPUT", report.FormatText))
	switch format {
	case report.FormatText, report.FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("LOCALE_OUTPUT must be %q or %q, got %q", report.FormatText, report.FormatJSON, format)
	}
}

func resolveStrict() bool {
	switch strings.ToLower(getEnv("LOCALE_STRICT", "")) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
