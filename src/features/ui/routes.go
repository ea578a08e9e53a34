package ui

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the UI feature.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/", handler.RenderIndex)
	app.Get("/analysis", handler.RenderAnalysis)
	app.Get("/about", handler.RenderAbout)
}
