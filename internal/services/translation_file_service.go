package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/terraincognita07/localediff/internal/i18n"
	"github.com/terraincognita07/localediff/internal/models"
	"golang.org/x/text/language"
)

const (
	translationFileExt = ".json"
	systemActor        = "system"
)

var (
	ErrTranslationFileNotFound  = errors.New("translation file not found")
	ErrTranslationFileExists    = errors.New("translation file already exists")
	ErrInvalidTranslationName   = errors.New("translation file name must look like xx.json")
	ErrUnknownLanguage          = errors.New("translation file name is not a known language code")
	ErrProtectedTranslationFile = errors.New("default translation files cannot be deleted")
	ErrInvalidTranslationPatch  = errors.New("invalid merge patch")
)

var newTranslationNamePattern = regexp.MustCompile(`^[a-z]{2}\.json$`)

// DefaultTranslationFiles cannot be deleted and are seeded by EnsureDefaults.
var DefaultTranslationFiles = []string{"fa.json", "en.json"}

type TranslationFile struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Language  string `json:"language"`
	IsDefault bool   `json:"isDefault"`
}

type FileChangeStore interface {
	Create(change *models.TranslationFileChange) error
	ListByFile(fileName string, limit int) ([]models.TranslationFileChange, error)
}

// TranslationFileService manages the JSON translation files of one directory.
type TranslationFileService struct {
	dir     string
	changes FileChangeStore
	mu      sync.RWMutex
}

func NewTranslationFileService(dir string, changes FileChangeStore) *TranslationFileService {
	return &TranslationFileService{dir: dir, changes: changes}
}

func (service *TranslationFileService) Dir() string {
	return service.dir
}

// EnsureDefaults creates the translations directory and copies the default
// files from sourceDir when they are missing. A missing source file is logged
// and skipped.
func (service *TranslationFileService) EnsureDefaults(sourceDir string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if err := os.MkdirAll(service.dir, 0o755); err != nil {
		return fmt.Errorf("create translations directory: %w", err)
	}

	for _, name := range DefaultTranslationFiles {
		target := filepath.Join(service.dir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat translation file %s: %w", name, err)
		}

		content, err := os.ReadFile(filepath.Join(sourceDir, name))
		if err != nil {
			log.Printf("translations: copy default %s skipped: %v", name, err)
			continue
		}
		if err := writeFileAtomic(target, content); err != nil {
			return fmt.Errorf("copy default translation %s: %w", name, err)
		}
		log.Printf("translations: copied default %s from %s", name, sourceDir)
	}
	return nil
}

func (service *TranslationFileService) List() ([]TranslationFile, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	entries, err := os.ReadDir(service.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []TranslationFile{}, nil
		}
		return nil, fmt.Errorf("read translations directory: %w", err)
	}

	files := make([]TranslationFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != translationFileExt {
			continue
		}
		files = append(files, describeTranslationFile(entry.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func (service *TranslationFileService) Read(name string) (i18n.Document, error) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	return service.readLocked(name)
}

// Create writes a new translation file. A nil content scaffolds the file
// from the key paths of the first default file present, with empty values.
func (service *TranslationFileService) Create(name string, content map[string]any, actor string) (TranslationFile, error) {
	if err := validateNewTranslationName(name); err != nil {
		return TranslationFile{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	path := filepath.Join(service.dir, name)
	if _, err := os.Stat(path); err == nil {
		return TranslationFile{}, ErrTranslationFileExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return TranslationFile{}, fmt.Errorf("stat translation file %s: %w", name, err)
	}

	if content == nil {
		content = service.scaffoldLocked()
	}
	if err := os.MkdirAll(service.dir, 0o755); err != nil {
		return TranslationFile{}, fmt.Errorf("create translations directory: %w", err)
	}
	if err := writeDocument(path, content); err != nil {
		return TranslationFile{}, err
	}

	service.recordChange(name, models.FileActionCreate, actor)
	return describeTranslationFile(name), nil
}

func (service *TranslationFileService) Update(name string, content map[string]any, actor string) error {
	if err := validateExistingTranslationName(name); err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("%w: content must be an object", ErrInvalidTranslationPatch)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	path := filepath.Join(service.dir, name)
	if err := requireFile(path); err != nil {
		return err
	}
	if err := writeDocument(path, content); err != nil {
		return err
	}

	service.recordChange(name, models.FileActionUpdate, actor)
	return nil
}

// Patch applies an RFC 7386 JSON merge patch to the file and returns the
// resulting document. A stored file that does not parse is reported with the
// loader's error, not as a bad patch.
func (service *TranslationFileService) Patch(name string, mergePatch []byte, actor string) (i18n.Document, error) {
	if err := validateExistingTranslationName(name); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	path := filepath.Join(service.dir, name)
	stored, err := service.readLocked(name)
	if err != nil {
		return nil, err
	}
	current, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode translation file %s: %w", name, err)
	}

	patched, err := jsonpatch.MergePatch(current, mergePatch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTranslationPatch, err)
	}
	document, err := i18n.ParseDocument(path, patched)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTranslationPatch, err)
	}
	if err := writeDocument(path, document); err != nil {
		return nil, err
	}

	service.recordChange(name, models.FileActionPatch, actor)
	return document, nil
}

func (service *TranslationFileService) Delete(name string, actor string) error {
	if err := validateExistingTranslationName(name); err != nil {
		return err
	}
	if isDefaultTranslationFile(name) {
		return ErrProtectedTranslationFile
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	path := filepath.Join(service.dir, name)
	if err := requireFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete translation file %s: %w", name, err)
	}

	service.recordChange(name, models.FileActionDelete, actor)
	return nil
}

// Changes returns the recorded mutations of name, newest first. Files that
// were deleted keep their history.
func (service *TranslationFileService) Changes(name string, limit int) ([]models.TranslationFileChange, error) {
	if err := validateExistingTranslationName(name); err != nil {
		return nil, err
	}
	if service.changes == nil {
		return []models.TranslationFileChange{}, nil
	}

	changes, err := service.changes.ListByFile(name, ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("load changes of %s: %w", name, err)
	}
	return changes, nil
}

func (service *TranslationFileService) readLocked(name string) (i18n.Document, error) {
	if err := validateExistingTranslationName(name); err != nil {
		return nil, err
	}

	document, err := i18n.LoadDocument(filepath.Join(service.dir, name))
	if err != nil {
		var notFound *i18n.NotFoundError
		if errors.As(err, &notFound) && errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTranslationFileNotFound
		}
		return nil, err
	}
	return document, nil
}

func (service *TranslationFileService) scaffoldLocked() map[string]any {
	for _, name := range DefaultTranslationFiles {
		reference, err := service.readLocked(name)
		if err != nil {
			continue
		}
		flat := i18n.Flatten(reference, "")
		for key := range flat {
			flat[key] = ""
		}
		return i18n.Expand(flat)
	}
	return map[string]any{}
}

func (service *TranslationFileService) recordChange(name string, action string, actor string) {
	if service.changes == nil {
		return
	}
	if strings.TrimSpace(actor) == "" {
		actor = systemActor
	}
	change := &models.TranslationFileChange{FileName: name, Action: action, Actor: actor}
	if err := service.changes.Create(change); err != nil {
		log.Printf("translations: record %s of %s failed: %v", action, name, err)
	}
}

func describeTranslationFile(name string) TranslationFile {
	return TranslationFile{
		Name:      name,
		Label:     name,
		Language:  strings.TrimSuffix(name, translationFileExt),
		IsDefault: isDefaultTranslationFile(name),
	}
}

func isDefaultTranslationFile(name string) bool {
	for _, defaultName := range DefaultTranslationFiles {
		if name == defaultName {
			return true
		}
	}
	return false
}

func validateNewTranslationName(name string) error {
	if !newTranslationNamePattern.MatchString(name) {
		return ErrInvalidTranslationName
	}
	if _, err := language.ParseBase(strings.TrimSuffix(name, translationFileExt)); err != nil {
		return ErrUnknownLanguage
	}
	return nil
}

// validateExistingTranslationName accepts any plain *.json file name inside
// the directory, so files created by hand stay reachable.
func validateExistingTranslationName(name string) error {
	if name == "" || filepath.Ext(name) != translationFileExt {
		return ErrInvalidTranslationName
	}
	if strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidTranslationName
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrTranslationFileNotFound
		}
		return fmt.Errorf("stat translation file: %w", err)
	}
	if info.IsDir() {
		return ErrTranslationFileNotFound
	}
	return nil
}

func writeDocument(path string, content map[string]any) error {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(content); err != nil {
		return fmt.Errorf("encode translation file %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, buffer.Bytes())
}

func writeFileAtomic(path string, content []byte) error {
	temp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := temp.Name()
	defer os.Remove(tempPath)

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
