package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/app"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/commands"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/logging"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/notify"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := commands.HashPassword(cfg.AuthFile, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	flag.Parse()

	logFile, logger, _, err := logging.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	auth, err := app.LoadAuth(cfg.AuthFile)
	if err != nil {
		return fmt.Errorf("load auth credentials: %w", err)
	}

	ledger := notify.NewLedger()
	hub := notify.NewHub()
	channels := notify.Fanout{notify.LogPublisher{Logger: slog.Default()}, hub}
	kafka := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if kafka != nil {
		channels = append(channels, kafka)
		slog.Info("kafka notifications enabled", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	}
	async := notify.NewAsync(channels, cfg.NotifyQueue, 0)

	// the ledger is written synchronously so the board sees a submission at once
	var publisher parking.Publisher = notify.Fanout{ledger, async}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := calendar.SystemClock(cfg.Location)
	sessions := session.NewManager(clock, publisher, cfg.SessionTTL)
	go sessions.Run(ctx, 10*time.Minute)

	e := app.NewServer(cfg, clock, sessions, ledger, hub, auth).Echo()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting parking application server",
			slog.String("addr", fmt.Sprintf("http://localhost:%d", cfg.Port)),
			slog.String("timezone", cfg.Location.String()),
			slog.Bool("adminAuth", auth.Enabled()),
		)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var errs []error
	select {
	case err := <-errCh:
		if err != nil {
			errs = append(errs, err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	hub.Close()
	if err := async.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("drain notifications: %w", err))
	}
	if kafka != nil {
		if err := kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka writer: %w", err))
		}
	}
	return errors.Join(errs...)
}
