package hosting

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/songstats/src/features/catalog"
	"github.com/contre95/songstats/src/features/charts"
	"github.com/contre95/songstats/src/features/config"
	"github.com/contre95/songstats/src/features/metrics"
	"github.com/contre95/songstats/src/features/ui"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server rendering pages from ./views.
func NewServer(cfg *config.Manager, catalogService *catalog.Service, metricsService *metrics.Service, chartsService *charts.Service) *Server {
	return &Server{
		app:  newApp(cfg, "./views", catalogService, metricsService, chartsService),
		port: cfg.Get().Server.Port,
	}
}

func newEngine(cfg *config.Manager, viewsDir string) *html.Engine {
	engine := html.New(viewsDir, ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("duration", func(seconds int) string {
		if seconds == 0 {
			return "0:00"
		}
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	})
	engine.AddFunc("percent", func(part, total int) string {
		if total == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
	})
	return engine
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || c.Accepts(fiber.MIMETextHTML) == ""
}

func newApp(cfg *config.Manager, viewsDir string, catalogService *catalog.Service, metricsService *metrics.Service, chartsService *charts.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		Views: newEngine(cfg, viewsDir),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "path", c.Path(), "error", err)
			}
			if wantsJSON(c) {
				return c.Status(code).JSON(fiber.Map{"error": err.Error()})
			}
			if code == fiber.StatusNotFound {
				return c.Status(code).Render("404", fiber.Map{"Title": "Not found", "Section": "", "Path": c.Path()}, "layouts/main")
			}
			return c.Status(code).Render("500", fiber.Map{"Title": "Server error", "Section": ""}, "layouts/main")
		},
		AppName:               "SongStats",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	// Add middleware
	app.Use(RequestIDMiddleware())
	app.Use(LogAllRequestsMiddleware())
	app.Use(metrics.Middleware())

	app.Static("/", "./public")
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	config.RegisterRoutes(app, cfg)
	catalog.RegisterRoutes(app, catalogService)
	metrics.RegisterRoutes(app, metrics.NewHandler(metricsService))
	charts.RegisterRoutes(app, chartsService, cfg.Get().Charts.OutputDir)
	ui.RegisterRoutes(app, ui.NewHandler(cfg, catalogService, chartsService))

	// Anything left unmatched
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app
}

// App exposes the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "port", s.port)
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
