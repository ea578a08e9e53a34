package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/contre95/songstats/src/music"
	"gopkg.in/yaml.v3"
)

// Manager holds the application configuration and provides thread-safe access to it.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	path   string
}

// NewManager creates a new ConfigManager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the file the configuration was loaded from, empty when it was built in memory.
func (m *Manager) Path() string {
	return m.path
}

// Update updates the configuration.
func (m *Manager) Update(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldConfig := m.config
	m.config = config

	if oldConfig != nil {
		slog.Debug("Configuration updated",
			"dataset_path_changed", oldConfig.Dataset.Path != config.Dataset.Path,
			"year_window_changed", oldConfig.YearWindow() != config.YearWindow(),
			"charts_dir_changed", oldConfig.Charts.OutputDir != config.Charts.OutputDir,
			"telegram_enabled_changed", oldConfig.Telegram.Enabled != config.Telegram.Enabled,
			"logger_enabled_changed", oldConfig.Logger.Enabled != config.Logger.Enabled,
		)
	}
}

// Save writes the current configuration to the specified file path.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create config file", "path", path, "error", err)
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(m.config); err != nil {
		slog.Error("failed to encode config", "path", path, "error", err)
		return err
	}

	slog.Info("Configuration saved successfully", "path", path)
	return nil
}

// EnsureDirectories creates the chart output directory and the dataset's parent directory.
func (m *Manager) EnsureDirectories() error {
	cfg := m.Get()

	if err := os.MkdirAll(cfg.Charts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create charts directory %s: %w", cfg.Charts.OutputDir, err)
	}
	datasetDir := filepath.Dir(cfg.Dataset.Path)
	if err := os.MkdirAll(datasetDir, 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory %s: %w", datasetDir, err)
	}

	slog.Info("Required directories created/verified", "charts", cfg.Charts.OutputDir, "dataset", datasetDir)
	return nil
}

// YearWindow returns the configured release year range.
func (c *Config) YearWindow() music.YearWindow {
	return music.YearWindow{From: c.Dataset.YearFrom, To: c.Dataset.YearTo}
}

// Debounce returns how long the watcher waits for writes to settle.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Dataset.DebounceMS) * time.Millisecond
}

const redacted = "<redacted>"

// redactedCfg gets a redacted copy of the Config
func (m *Manager) redactedCfg() Config {
	cfgCpy := *m.config
	if cfgCpy.Telegram.Token != "" {
		cfgCpy.Telegram.Token = redacted
	}
	return cfgCpy
}

// GetJSON returns the current configuration as a JSON string.
func (m *Manager) GetJSON() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jsonBytes, err := json.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to JSON", "error", err)
		return err.Error()
	}
	return string(jsonBytes)
}

func (m *Manager) GetYAML() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	yamlBytes, err := yaml.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to YAML", "error", err)
		return err.Error()
	}
	return string(yamlBytes)
}
