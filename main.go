package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielhkuo/health-inference/cliparse"
	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/menu"
	"github.com/danielhkuo/health-inference/middleware"
	"github.com/danielhkuo/health-inference/router"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// The menu owns stdout, so logs go to stderr
	slog.SetDefault(newLogger(cfg, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database and create the schema
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	slog.Info("Database schema ready", "type", conn.Dialect.String())

	if cfg.Interactive {
		if err := menu.New(conn, cfg).Run(ctx, os.Stdin, os.Stdout); err != nil {
			slog.Error("menu failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(conn, cfg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// newLogger builds the slog handler selected by LogLevel and LogFormat
func newLogger(cfg cliparse.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
