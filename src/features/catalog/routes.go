package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the catalog feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	api := app.Group("/api")
	api.Get("/data", handler.GetData)
	api.Get("/stats", handler.GetStats)
	api.Get("/filter", handler.GetFilter)
	api.Get("/genres", handler.GetGenres)
	api.Get("/artists", handler.GetArtists)
	api.Get("/distinct/:field", handler.GetDistinct)
	api.Get("/dataset", handler.GetDataset)
	api.Post("/dataset/reload", handler.ReloadDataset)
}
