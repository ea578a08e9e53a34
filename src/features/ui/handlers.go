package ui

import (
	"log/slog"

	"github.com/contre95/songstats/src/features/catalog"
	"github.com/contre95/songstats/src/features/charts"
	"github.com/contre95/songstats/src/features/config"
	"github.com/gofiber/fiber/v2"
)

const layout = "layouts/main"

// Handler is the handler for the UI feature.
type Handler struct {
	configManager *config.Manager
	catalog       *catalog.Service
	charts        *charts.Service
}

// NewHandler creates a new handler for the UI feature.
func NewHandler(configManager *config.Manager, catalogService *catalog.Service, chartsService *charts.Service) *Handler {
	return &Handler{
		configManager: configManager,
		catalog:       catalogService,
		charts:        chartsService,
	}
}

// RenderIndex renders the catalogue overview with the filter form.
func (h *Handler) RenderIndex(c *fiber.Ctx) error {
	slog.Debug("RenderIndex handler called")
	ctx := c.UserContext()
	return c.Render("index", fiber.Map{
		"Title":   "Catalogue",
		"Section": "index",
		"Stats":   h.catalog.Stats(ctx),
		"Dataset": h.catalog.Info(ctx),
		"Genres":  h.catalog.GenreDistribution(ctx),
		"Tracks":  h.catalog.List(ctx),
	}, layout)
}

// RenderAnalysis renders the chart gallery and the interactive charts.
func (h *Handler) RenderAnalysis(c *fiber.Ctx) error {
	slog.Debug("RenderAnalysis handler called")
	return c.Render("analysis", fiber.Map{
		"Title":   "Analysis",
		"Section": "analysis",
		"Charts":  h.charts.List(),
	}, layout)
}

// RenderAbout renders the about page.
func (h *Handler) RenderAbout(c *fiber.Ctx) error {
	slog.Debug("RenderAbout handler called")
	cfg := h.configManager.Get()
	return c.Render("about", fiber.Map{
		"Title":     "About",
		"Section":   "about",
		"Dataset":   h.catalog.Info(c.UserContext()),
		"Window":    cfg.YearWindow().String(),
		"Generator": cfg.Generator,
		"Routes":    apiRoutes,
	}, layout)
}

type route struct {
	Method, Path, Description string
}

var apiRoutes = []route{
	{"GET", "/api/data", "First tracks of the catalogue"},
	{"GET", "/api/stats", "Aggregate statistics"},
	{"GET", "/api/filter", "Filter by genre, artist, min_rating, max_rating, year_from, year_to"},
	{"GET", "/api/genres", "Distinct genres"},
	{"GET", "/api/artists", "Distinct artists"},
	{"GET", "/api/dataset", "Loaded dataset info"},
	{"POST", "/api/dataset/reload", "Reload the dataset file"},
	{"GET", "/api/charts", "Rendered charts"},
	{"POST", "/api/charts/render", "Render every chart again"},
	{"GET", "/api/metrics", "Chart.js series"},
	{"GET", "/metrics", "Prometheus metrics"},
}
