package catalog

import (
	"errors"
	"log/slog"

	"github.com/contre95/songstats/src/features/metrics"
	"github.com/contre95/songstats/src/query"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the catalog feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the catalog feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func badRequest(c *fiber.Ctx, family string, err error) error {
	metrics.RejectQuery(family)
	slog.Warn("Rejected query", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// GetData returns the first tracks of the dataset.
func (h *Handler) GetData(c *fiber.Ctx) error {
	slog.Debug("GetData handler called")
	return c.JSON(h.service.List(c.UserContext()))
}

// GetStats returns the aggregate statistics, or an empty object without a dataset.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	slog.Debug("GetStats handler called")
	stats := h.service.Stats(c.UserContext())
	if stats == nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(stats)
}

// GetFilter applies the query-string criteria.
func (h *Handler) GetFilter(c *fiber.Ctx) error {
	slog.Debug("GetFilter handler called", "query", string(c.Request().URI().QueryString()))
	criteria, err := query.ParseCriteria(func(key string) string { return c.Query(key) })
	if err != nil {
		return badRequest(c, "filter", err)
	}
	return c.JSON(h.service.Filter(c.UserContext(), criteria))
}

// GetGenres returns the distinct genres.
func (h *Handler) GetGenres(c *fiber.Ctx) error {
	return h.distinct(c, query.FieldGenre)
}

// GetArtists returns the distinct artists.
func (h *Handler) GetArtists(c *fiber.Ctx) error {
	return h.distinct(c, query.FieldArtist)
}

// GetDistinct returns the distinct values of the :field path parameter.
func (h *Handler) GetDistinct(c *fiber.Ctx) error {
	field, err := query.ParseField(c.Params("field"))
	if err != nil {
		return badRequest(c, "distinct", err)
	}
	return h.distinct(c, field)
}

func (h *Handler) distinct(c *fiber.Ctx, field query.Field) error {
	slog.Debug("Distinct handler called", "field", field)
	values, err := h.service.Distinct(c.UserContext(), field)
	if err != nil {
		if errors.Is(err, query.ErrUnknownField) {
			return badRequest(c, "distinct", err)
		}
		return err
	}
	return c.JSON(values)
}

// GetDataset describes the dataset being served.
func (h *Handler) GetDataset(c *fiber.Ctx) error {
	return c.JSON(h.service.Info(c.UserContext()))
}

// ReloadDataset rereads the dataset file.
func (h *Handler) ReloadDataset(c *fiber.Ctx) error {
	slog.Info("Dataset reload requested")
	info, err := h.service.Reload(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   err.Error(),
			"dataset": info,
		})
	}
	return c.JSON(info)
}
