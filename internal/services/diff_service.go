package services

import (
	"fmt"
	"log"

	"github.com/terraincognita07/localediff/internal/i18n"
	"github.com/terraincognita07/localediff/internal/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type DiffRunStore interface {
	Create(run *models.DiffRun) error
	ListRecent(limit int) ([]models.DiffRun, error)
}

type TranslationReader interface {
	Read(name string) (i18n.Document, error)
}

type DiffService struct {
	files  TranslationReader
	runs   DiffRunStore
	filter *i18n.GlobFilter
}

func NewDiffService(files TranslationReader, runs DiffRunStore, filter *i18n.GlobFilter) *DiffService {
	return &DiffService{files: files, runs: runs, filter: filter}
}

// Compare diffs two translation files by name and records the run.
func (service *DiffService) Compare(nameA string, nameB string) (i18n.Result, error) {
	documentA, err := service.files.Read(nameA)
	if err != nil {
		return i18n.Result{}, err
	}
	documentB, err := service.files.Read(nameB)
	if err != nil {
		return i18n.Result{}, err
	}

	result := i18n.Diff(documentA, documentB, service.filter)
	result.LanguageA, result.LanguageB = i18n.SideLabels(nameA, nameB)

	if service.runs != nil {
		run := &models.DiffRun{
			LocaleA:        nameA,
			LocaleB:        nameB,
			KeysA:          result.KeysA,
			KeysB:          result.KeysB,
			OnlyInA:        emptyIfNil(result.OnlyInA),
			OnlyInB:        emptyIfNil(result.OnlyInB),
			IgnorePatterns: emptyIfNil(service.filter.Patterns()),
		}
		if err := service.runs.Create(run); err != nil {
			log.Printf("diff: record run %s/%s failed: %v", nameA, nameB, err)
		}
	}
	return result, nil
}

func (service *DiffService) History(limit int) ([]models.DiffRun, error) {
	if service.runs == nil {
		return []models.DiffRun{}, nil
	}
	runs, err := service.runs.ListRecent(ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("load diff history: %w", err)
	}
	return runs, nil
}

// ClampHistoryLimit maps non-positive limits to the default and caps the rest.
func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

// emptyIfNil keeps gorm's JSON serializer from writing NULL into the
// NOT NULL list columns.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
