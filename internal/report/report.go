package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/localediff/internal/i18n"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

const emptySet = "(none)"

// Write renders result in the requested format.
func Write(w io.Writer, format string, result i18n.Result) error {
	switch format {
	case "", FormatText:
		return WriteText(w, result)
	case FormatJSON:
		return WriteJSON(w, result)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteText prints one line per side: "keys only in fa: a.b, c".
func WriteText(w io.Writer, result i18n.Result) error {
	if _, err := fmt.Fprintf(w, "keys only in %s: %s\n", label(result.LanguageA, "A"), joinKeys(result.OnlyInA)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "keys only in %s: %s\n", label(result.LanguageB, "B"), joinKeys(result.OnlyInB))
	return err
}

func WriteJSON(w io.Writer, result i18n.Result) error {
	if result.OnlyInA == nil {
		result.OnlyInA = []string{}
	}
	if result.OnlyInB == nil {
		result.OnlyInB = []string{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return emptySet
	}
	return strings.Join(keys, ", ")
}

func label(language string, fallback string) string {
	if strings.TrimSpace(language) == "" {
		return fallback
	}
	return language
}
