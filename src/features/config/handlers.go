package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager) *Handler {
	return &Handler{
		configManager: configManager,
	}
}

// GetConfig returns the current configuration in the requested format.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	format := c.Query("format", c.Query("fmt", "json"))
	slog.Debug("GetConfig handler called", "format", format)

	switch format {
	case "yaml":
		c.Set(fiber.HeaderContentType, "text/yaml; charset=utf-8")
		return c.SendString(h.configManager.GetYAML())
	case "json":
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(h.configManager.GetJSON())
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid format, use 'json' or 'yaml'"})
	}
}

// UpdateConfig replaces the configuration with the JSON or YAML request body.
// Omitted keys keep their current value; server settings only change on restart.
func (h *Handler) UpdateConfig(c *fiber.Ctx) error {
	slog.Info("Configuration update requested")

	current := h.configManager.Get()
	newConfig := *current

	var err error
	if strings.Contains(c.Get(fiber.HeaderContentType), "json") {
		err = json.Unmarshal(c.Body(), &newConfig)
	} else {
		err = yaml.NewDecoder(bytes.NewReader(c.Body())).Decode(&newConfig)
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid config body: " + err.Error()})
	}

	newConfig.Server = current.Server
	if newConfig.Telegram.Token == redacted {
		newConfig.Telegram.Token = current.Telegram.Token
	}
	if err := Validate(&newConfig); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	h.configManager.Update(&newConfig)
	if err := h.configManager.EnsureDirectories(); err != nil {
		slog.Warn("failed to create configured directories", "error", err)
	}
	if path := h.configManager.Path(); path != "" {
		if err := h.configManager.Save(path); err != nil {
			slog.Warn("failed to save config to file", "path", path, "error", err)
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(h.configManager.GetJSON())
}
