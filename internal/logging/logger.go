package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a JSON logger on stdout as the slog default and returns its handler
// so it can be combined with a PGHandler once the database is up.
func Setup() slog.Handler {
	handler := NewStdoutHandler(os.Stdout)
	slog.SetDefault(slog.New(handler))
	return handler
}

func NewStdoutHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
