package metrics

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the metrics feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new metrics handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetMetricsOverview returns every chart series at once.
func (h *Handler) GetMetricsOverview(c *fiber.Ctx) error {
	slog.Debug("GetMetricsOverview handler called")
	return c.JSON(h.service.GetAllMetrics(c.UserContext()))
}

// GetGenreChart returns the genre distribution in Chart.js format.
func (h *Handler) GetGenreChart(c *fiber.Ctx) error {
	slog.Debug("GetGenreChart handler called")
	return c.JSON(h.service.GetAllMetrics(c.UserContext()).Genres)
}

// GetArtistChart returns the top artists in Chart.js format.
func (h *Handler) GetArtistChart(c *fiber.Ctx) error {
	slog.Debug("GetArtistChart handler called")
	return c.JSON(h.service.GetAllMetrics(c.UserContext()).Artists)
}

// GetYearChart returns tracks per release year in Chart.js format.
func (h *Handler) GetYearChart(c *fiber.Ctx) error {
	slog.Debug("GetYearChart handler called")
	return c.JSON(h.service.GetAllMetrics(c.UserContext()).Years)
}

// GetPlayTrendChart returns yearly mean play counts in Chart.js format.
func (h *Handler) GetPlayTrendChart(c *fiber.Ctx) error {
	slog.Debug("GetPlayTrendChart handler called")
	return c.JSON(h.service.GetAllMetrics(c.UserContext()).PlayTrend)
}
