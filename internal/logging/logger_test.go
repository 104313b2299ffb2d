package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("application submitted", slog.String("applicationId", "a1"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Debug line should be filtered at info level")
	}
	if !strings.Contains(out, `"applicationId":"a1"`) {
		t.Errorf("Expected JSON attribute, got %s", out)
	}
}

func TestSetupWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	closer, logger, _, err := Setup(Config{Directory: dir, Format: "text"})
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	name := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Errorf("Unexpected log content %q", data)
	}
}
