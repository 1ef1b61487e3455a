package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/token", handler.IssueToken)

	files := api.Group("/translation-files")
	files.Get("", handler.ListTranslationFiles)
	files.Post("", handler.AuthRequired, handler.CreateTranslationFile)
	files.Get("/diff", handler.DiffTranslationFiles)
	files.Get("/diff/history", handler.DiffHistory)
	files.Get("/:fileName/content", handler.GetTranslationFileContent)
	files.Get("/:fileName/changes", handler.GetTranslationFileChanges)
	files.Put("/:fileName", handler.AuthRequired, handler.UpdateTranslationFile)
	files.Patch("/:fileName", handler.AuthRequired, handler.PatchTranslationFile)
	files.Delete("/:fileName", handler.AuthRequired, handler.DeleteTranslationFile)
}
