package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", "menu")

	logger.Info("hidden")
	logger.Warn("shown", "dish", "tacos")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "dish=tacos")
	assert.Contains(t, out, "menu")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "loud", "")

	logger.Debug("debug")
	logger.Info("info")

	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "info")
}
