package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	verbose := flag.Bool("v", false, "Log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	// Log to stderr and keep recent messages for /api/console
	console := server.NewConsole(200)
	logger := slog.New(console.Handler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	core.SetLogger(logger)

	webServer := server.NewServer(*port, console)

	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
