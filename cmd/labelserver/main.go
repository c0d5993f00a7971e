// Command labelserver hosts the record label page, its websocket click
// channel, one-shot table fragments, render history and metrics.
// Usage: go run ./cmd/labelserver [-config labelboard.yaml] [-listen :8080] [-base http://localhost:8081] [-history]
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raysh454/labelboard/internal/app"
	"github.com/raysh454/labelboard/internal/cli"
	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.NewStdoutLogger("labelserver").Error("exiting", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := cli.ParseServerArgs(argv)
	if err != nil {
		return err
	}

	cfg, err := app.LoadConfig(args.ConfigPath)
	if err != nil {
		return err
	}
	args.Apply(cfg)

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(os.Stdout, "labelserver", level)

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(server.Config{
		ListenAddr: cfg.ListenAddr,
		App:        application,
		Logger:     logger.With(logging.Field{Key: "component", Value: "server"}),
	})
	if err != nil {
		_ = application.Shutdown(context.Background())
		return err
	}
	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			logging.Field{Key: "addr", Value: httpServer.Addr},
			logging.Field{Key: "backend", Value: cfg.Backend.BaseURL},
			logging.Field{Key: "variant", Value: string(cfg.Backend.Variant)})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		if appErr := application.Shutdown(shutdownCtx); err == nil {
			err = appErr
		}
		return err
	})

	return g.Wait()
}
