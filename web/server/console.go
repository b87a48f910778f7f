package server

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
}

// Console keeps the most recent log messages for the web console
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	capacity int
}

// NewConsole creates a console holding up to capacity messages
func NewConsole(capacity int) *Console {
	return &Console{capacity: max(capacity, 1)}
}

// Messages returns a copy of the stored messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

func (c *Console) add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == c.capacity {
		c.messages = c.messages[1:]
	}
	c.messages = append(c.messages, msg)
}

// Handler returns a slog.Handler that stores records in the console and
// passes them on to next
func (c *Console) Handler(next slog.Handler) slog.Handler {
	return &consoleHandler{console: c, next: next}
}

type consoleHandler struct {
	console *Console
	next    slog.Handler
	attrs   []slog.Attr
}

func (h *consoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		sb.WriteString(" " + a.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" " + a.String())
		return true
	})

	h.console.add(ConsoleMessage{
		Message:   sb.String(),
		Timestamp: r.Time,
		Level:     strings.ToLower(r.Level.String()),
	})
	return h.next.Handle(ctx, r)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		console: h.console,
		next:    h.next.WithAttrs(attrs),
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

// WithGroup only affects the next handler; console lines stay flat
func (h *consoleHandler) WithGroup(name string) slog.Handler {
	return &consoleHandler{console: h.console, next: h.next.WithGroup(name), attrs: h.attrs}
}
