package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errNotMapping = errors.New("top-level value is not an object")

// NotFoundError reports a locale file that does not exist or cannot be read.
type NotFoundError struct {
	Path string
	Err  error
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("read locale %s: %v", err.Path, err.Err)
}

func (err *NotFoundError) Unwrap() error {
	return err.Err
}

// EncodingError reports a locale file that is not valid UTF-8.
type EncodingError struct {
	Path   string
	Offset int
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("decode locale %s: invalid UTF-8 at byte %d", err.Path, err.Offset)
}

// ParseError reports a locale file whose content is not a document mapping.
type ParseError struct {
	Path string
	Err  error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse locale %s: %v", err.Path, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// LoadDocument reads and parses the locale file at path. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadDocument(path string) (Document, error) {
	content, err := readLocaleFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(path, content)
}

// ParseDocument parses content as the locale file named path.
func ParseDocument(path string, content []byte) (Document, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if offset := invalidUTF8Offset(content); offset >= 0 {
		return nil, &EncodingError{Path: path, Offset: offset}
	}

	var (
		raw any
		err error
	)
	if IsYAMLPath(path) {
		err = yaml.Unmarshal(content, &raw)
		raw = normalizeYAML(raw)
	} else {
		err = json.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	document, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Err: errNotMapping}
	}
	return Document(document), nil
}

// LanguageFromPath derives a locale label from a file name: "locales/fa.json" -> "fa".
func LanguageFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SideLabels labels the two sides of a comparison. Paths sharing a base name
// are labelled by their full path, identical paths by "A" and "B".
func SideLabels(pathA string, pathB string) (string, string) {
	labelA := LanguageFromPath(pathA)
	labelB := LanguageFromPath(pathB)
	if labelA != labelB {
		return labelA, labelB
	}

	cleanA := filepath.Clean(pathA)
	cleanB := filepath.Clean(pathB)
	if cleanA != cleanB {
		return cleanA, cleanB
	}
	return "A", "B"
}

func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func readLocaleFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return content, nil
}

func invalidUTF8Offset(content []byte) int {
	if utf8.Valid(content) {
		return -1
	}
	for offset := 0; offset < len(content); {
		r, size := utf8.DecodeRune(content[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return -1
}

// normalizeYAML converts the map[any]any values yaml.v3 produces for
// non-string keys into map[string]any.
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, nested := range typed {
			typed[key] = normalizeYAML(nested)
		}
		return typed
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, nested := range typed {
			converted[fmt.Sprint(key)] = normalizeYAML(nested)
		}
		return converted
	case []any:
		for index, nested := range typed {
			typed[index] = normalizeYAML(nested)
		}
		return typed
	default:
		return value
	}
}
