package charts

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the chart routes and serves the rendered images.
func RegisterRoutes(app *fiber.App, service *Service, outputDir string) {
	handler := NewHandler(service)

	app.Static(URLPrefix, outputDir)

	api := app.Group("/api/charts")
	api.Get("/", handler.ListCharts)
	api.Post("/render", handler.RenderCharts)
}
