package metrics

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the metrics routes with the Fiber app.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/metrics", Exposition())

	// API routes for chart data
	api := app.Group("/api/metrics")
	api.Get("/", handler.GetMetricsOverview)
	api.Get("/genre-chart", handler.GetGenreChart)
	api.Get("/artist-chart", handler.GetArtistChart)
	api.Get("/year-chart", handler.GetYearChart)
	api.Get("/play-trend-chart", handler.GetPlayTrendChart)
}
