package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/models"
	"github.com/terraincognita07/localediff/internal/services"
)

const (
	defaultDiffFileA = "fa.json"
	defaultDiffFileB = "en.json"
)

type diffRunView struct {
	ID             uint      `json:"id"`
	LocaleA        string    `json:"localeA"`
	LocaleB        string    `json:"localeB"`
	KeysA          int       `json:"keysA"`
	KeysB          int       `json:"keysB"`
	OnlyInA        []string  `json:"onlyInA"`
	OnlyInB        []string  `json:"onlyInB"`
	IgnorePatterns []string  `json:"ignorePatterns"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (handler *Handler) DiffTranslationFiles(c *fiber.Ctx) error {
	nameA := strings.TrimSpace(c.Query("a", defaultDiffFileA))
	nameB := strings.TrimSpace(c.Query("b", defaultDiffFileB))

	result, err := handler.diffs.Compare(nameA, nameB)
	if err != nil {
		return respondServiceError(c, err, "failed to compare translation files")
	}
	return c.JSON(result)
}

func (handler *Handler) DiffHistory(c *fiber.Ctx) error {
	limit, err := parseLimitQuery(c.Query("limit"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}

	runs, err := handler.diffs.History(limit)
	if err != nil {
		return respondServiceError(c, err, "failed to load diff history")
	}

	views := make([]diffRunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, newDiffRunView(run))
	}
	return c.JSON(fiber.Map{"runs": views, "limit": services.ClampHistoryLimit(limit)})
}

func newDiffRunView(run models.DiffRun) diffRunView {
	return diffRunView{
		ID:             run.ID,
		LocaleA:        run.LocaleA,
		LocaleB:        run.LocaleB,
		KeysA:          run.KeysA,
		KeysB:          run.KeysB,
		OnlyInA:        nonNilStrings(run.OnlyInA),
		OnlyInB:        nonNilStrings(run.OnlyInB),
		IgnorePatterns: nonNilStrings(run.IgnorePatterns),
		CreatedAt:      run.CreatedAt.UTC(),
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
