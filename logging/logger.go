package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

type Config struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer
	Level  slog.Leveler
	JSON   bool
}

// New returns a JSON logger when cfg.JSON is set and a colored text logger
// otherwise.
func New(cfg Config) *slog.Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}

	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{Level: cfg.Level}))
	}
	return slog.New(tint.NewHandler(cfg.Writer, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: "2006-01-02 15:04:05",
	}))
}

// Discard is a logger for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
