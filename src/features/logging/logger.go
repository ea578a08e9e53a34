package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/contre95/songstats/src/features/config"
)

// SetupLogger builds the slog logger described by the logger section of cfg.
func SetupLogger(cfg *config.Manager) *slog.Logger {
	return newLogger(os.Stderr, cfg.Get().Logger)
}

func newLogger(w io.Writer, opts config.Logger) *slog.Logger {
	if !opts.Enabled {
		w = io.Discard
	}

	var formatter log.Formatter
	switch opts.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	level := log.InfoLevel
	switch opts.Level {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "SongStats",
		Formatter:       formatter,
		Level:           level,
	})

	logger := slog.New(handler)
	logger.Info("Logger initialized", "time", time.Now().Format(time.RFC3339), "level", level.String())
	return logger
}
