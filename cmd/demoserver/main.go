// Command demoserver starts the fixture record label backend for local runs.
// Usage: go run ./cmd/demoserver [port]
// Default port: 8081
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/raysh454/labelboard/internal/demoserver"
	"github.com/raysh454/labelboard/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	logger := logging.NewStdoutLogger("demoserver")
	srv := demoserver.NewDemoServer(cfg, logger).HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("demo backend starting",
		logging.Field{Key: "addr", Value: "http://localhost" + srv.Addr},
		logging.Field{Key: "control_panel", Value: "http://localhost" + srv.Addr + "/demo/control"})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
