package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/logging"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/session"
)

// Constants
const (
	DefaultPort        = 8080
	DefaultTimezone    = "Europe/Oslo"
	DefaultKafkaTopic  = "parking.applications"
	DefaultNotifyQueue = 64
	DefaultAuthFile    = "auth.secret"
	SessionCookie      = "parkering_session"

	// Error messages
	ErrInvalidDay       = "Invalid day"
	ErrInvalidDirection = "Invalid direction"
	ErrInvalidFormat    = "Invalid format"
	ErrInvalidBody      = "Invalid request body"
	ErrInternalServer   = "Internal server error"

	// ICS constants
	ICSProductID = "-//Borettslag//Midlertidig Parkering//NB"
	ICSDomain    = "parkering"
)

// Config is read from the environment (after .env) and flags
type Config struct {
	Port         int
	Location     *time.Location
	SessionTTL   time.Duration
	AuthFile     string
	KafkaBrokers []string
	KafkaTopic   string
	NotifyQueue  int
	Logging      logging.Config
}

// LoadConfig reads the PORT, TIMEZONE, SESSION_TTL, AUTH_FILE, KAFKA_*,
// NOTIFY_QUEUE and LOG_* variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		KafkaTopic: getEnv("KAFKA_TOPIC", DefaultKafkaTopic),
		Logging: logging.Config{
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
			Directory: getEnv("LOG_DIR", "./logs"),
		},
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort))); err != nil {
		return cfg, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.NotifyQueue, err = strconv.Atoi(getEnv("NOTIFY_QUEUE", strconv.Itoa(DefaultNotifyQueue))); err != nil {
		return cfg, fmt.Errorf("invalid NOTIFY_QUEUE: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", session.DefaultTTL.String())); err != nil {
		return cfg, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", DefaultTimezone)); err != nil {
		return cfg, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.AuthFile, err = authFilePath(); err != nil {
		return cfg, err
	}
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))

	return cfg, nil
}

// authFilePath is AUTH_FILE, or auth.secret next to the binary
func authFilePath() (string, error) {
	if path := os.Getenv("AUTH_FILE"); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	slog.Debug("env not set, using default", slog.String("key", key), slog.String("default", fallback))
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
