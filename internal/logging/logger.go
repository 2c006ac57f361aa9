package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler(os.Stdout)))
}

// WithSinks replaces the global logger with one that writes to stdout and
// to every extra sink.
func WithSinks(sinks ...slog.Handler) {
	handlers := append([]slog.Handler{stdoutHandler(os.Stdout)}, sinks...)
	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))
}

func stdoutHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
