// Package logging provides structured logging setup for the threads server.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the default slog logger on stdout.
// Dev mode uses human-readable text at debug level; otherwise JSON at info.
func Setup(devMode bool) {
	SetupWriter(os.Stdout, devMode)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, devMode bool) {
	var handler slog.Handler
	if devMode {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
