package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the logger settings read from the environment
type Config struct {
	// Level is debug, info, warn or error
	Level string
	// Format is json or text
	Format string
	// Directory receives one file per day; empty disables file output
	Directory string
	AddSource bool
}

// ParseLevel converts textual levels into slog levels, defaulting to info
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "dbg":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a slog.Logger writing to w
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup writes to stdout and, when a directory is configured, to a dated log file.
// The stdlib log package is pointed at the same writer. The returned closer
// releases the file.
func Setup(cfg Config) (io.Closer, *slog.Logger, io.Writer, error) {
	var writer io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		name := filepath.Join(cfg.Directory, time.Now().UTC().Format("2006-01-02")+".log")
		file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writer = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	logger := New(writer, cfg)
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return closer, logger, writer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
