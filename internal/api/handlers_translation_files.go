package api

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/localediff/internal/services"
)

type fileChangeView struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"fileName"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}

func (handler *Handler) ListTranslationFiles(c *fiber.Ctx) error {
	files, err := handler.files.List()
	if err != nil {
		return respondServiceError(c, err, "failed to list translation files")
	}
	return c.JSON(fiber.Map{"files": files})
}

func (handler *Handler) CreateTranslationFile(c *fiber.Ctx) error {
	request := createTranslationFileRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	file, err := handler.files.Create(request.FileName, request.Content, currentActor(c))
	if err != nil {
		return respondServiceError(c, err, "failed to create translation file")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"file": file})
}

func (handler *Handler) GetTranslationFileContent(c *fiber.Ctx) error {
	content, err := handler.files.Read(fileNameParam(c))
	if err != nil {
		return respondServiceError(c, err, "failed to read translation file")
	}
	return c.JSON(fiber.Map{"content": content})
}

func (handler *Handler) GetTranslationFileChanges(c *fiber.Ctx) error {
	limit, err := parseLimitQuery(c.Query("limit"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}

	changes, err := handler.files.Changes(fileNameParam(c), limit)
	if err != nil {
		return respondServiceError(c, err, "failed to load translation file changes")
	}

	views := make([]fileChangeView, 0, len(changes))
	for _, change := range changes {
		views = append(views, fileChangeView{
			ID:        change.ID,
			FileName:  change.FileName,
			Action:    change.Action,
			Actor:     change.Actor,
			CreatedAt: change.CreatedAt.UTC(),
		})
	}
	return c.JSON(fiber.Map{"changes": views, "limit": services.ClampHistoryLimit(limit)})
}

func (handler *Handler) UpdateTranslationFile(c *fiber.Ctx) error {
	request := updateTranslationFileRequest{}
	if err := c.BodyParser(&request); err != nil || request.Content == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.files.Update(fileNameParam(c), request.Content, currentActor(c)); err != nil {
		return respondServiceError(c, err, "failed to update translation file")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// PatchTranslationFile takes a JSON merge patch as the raw request body.
func (handler *Handler) PatchTranslationFile(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	content, err := handler.files.Patch(fileNameParam(c), body, currentActor(c))
	if err != nil {
		return respondServiceError(c, err, "failed to patch translation file")
	}
	return c.JSON(fiber.Map{"content": content})
}

func (handler *Handler) DeleteTranslationFile(c *fiber.Ctx) error {
	if err := handler.files.Delete(fileNameParam(c), currentActor(c)); err != nil {
		return respondServiceError(c, err, "failed to delete translation file")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func fileNameParam(c *fiber.Ctx) string {
	raw := c.Params("fileName")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
