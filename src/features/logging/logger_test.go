package logging

import (
	"bytes"
	"testing"

	"github.com/contre95/songstats/src/features/config"
	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.Logger{Enabled: true, Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("dataset missing", "path", "songs.csv")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"dataset missing"`)
	assert.Contains(t, out, `"path":"songs.csv"`)
	assert.Contains(t, out, "SongStats")
}

func TestDisabledLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.Logger{Enabled: false, Level: "debug"})
	logger.Error("boom")
	assert.Empty(t, buf.String())
}
