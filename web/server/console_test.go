package server

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsole_BasicLogging(t *testing.T) {
	console := NewConsole(10)
	var out bytes.Buffer
	logger := slog.New(console.Handler(slog.NewTextHandler(&out, nil)))

	logger.Info("render started", "width", 4)

	messages := console.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Message != "render started width=4" {
		t.Errorf("Unexpected message %q", msg.Message)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
	if !strings.Contains(out.String(), "render started") {
		t.Errorf("Expected the record passed on, got %q", out.String())
	}
}

func TestConsole_WithAttrs(t *testing.T) {
	console := NewConsole(10)
	logger := slog.New(console.Handler(slog.NewTextHandler(&bytes.Buffer{}, nil))).With("render_id", "abc")

	logger.Warn("render aborted")

	messages := console.Messages()
	if len(messages) != 1 || messages[0].Message != "render aborted render_id=abc" || messages[0].Level != "warn" {
		t.Errorf("Unexpected messages %+v", messages)
	}
}

func TestConsole_LevelFiltered(t *testing.T) {
	console := NewConsole(10)
	logger := slog.New(console.Handler(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	// The text handler defaults to info
	logger.Debug("texture cached")

	if n := len(console.Messages()); n != 0 {
		t.Errorf("Expected debug messages dropped, got %d", n)
	}
}

func TestConsole_Capacity(t *testing.T) {
	console := NewConsole(3)
	logger := slog.New(console.Handler(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	for _, msg := range []string{"Message 1", "Message 2", "Message 3", "Message 4"} {
		logger.Info(msg)
	}

	messages := console.Messages()
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
	if messages[0].Message != "Message 2" || messages[2].Message != "Message 4" {
		t.Errorf("Expected the oldest message dropped, got %+v", messages)
	}
}
