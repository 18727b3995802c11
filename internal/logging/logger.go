package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewStdoutHandler is the JSON console handler. Development builds log at
// DEBUG, everything else at INFO.
func NewStdoutHandler(w io.Writer, env string) slog.Handler {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(env string) {
	slog.SetDefault(slog.New(NewStdoutHandler(os.Stdout, env)))
}
