package core

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_DefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("Default logger should not be enabled at any level")
	}
}

func TestLogger_SetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("render finished", "raycasts", 3)

	if !strings.Contains(buf.String(), "raycasts=3") {
		t.Errorf("Expected log output to contain attribute, got %q", buf.String())
	}
}
