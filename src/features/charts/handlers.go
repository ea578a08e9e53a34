package charts

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the charts feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the charts feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListCharts returns the chart catalogue with image URLs.
func (h *Handler) ListCharts(c *fiber.Ctx) error {
	slog.Debug("ListCharts handler called")
	return c.JSON(fiber.Map{"charts": h.service.List()})
}

// RenderCharts re-renders every chart from the current dataset.
func (h *Handler) RenderCharts(c *fiber.Ctx) error {
	slog.Debug("RenderCharts handler called")
	charts, err := h.service.RenderAll(c.UserContext(), nil)
	if errors.Is(err, ErrNoData) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"charts": charts})
}
