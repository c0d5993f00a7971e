// Command labeltable fetches the record label list once and prints the
// rendered table to stdout.
// Usage: go run ./cmd/labeltable -base http://localhost:8081 [-search Atlantic] [-order name] [-variant fixed]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/raysh454/labelboard/internal/app"
	"github.com/raysh454/labelboard/internal/cli"
	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "labeltable:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := cli.ParseArgs(argv)
	if err != nil {
		return err
	}

	cfg, err := app.LoadConfig(args.ConfigPath)
	if err != nil {
		return err
	}
	args.Apply(cfg)
	// A one-shot run has nothing to journal.
	cfg.History.Enabled = false

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(os.Stderr, "labeltable", level)

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Shutdown(context.Background())

	target := labels.NewNodeTarget("recordLabelData")
	renderer, err := application.NewRenderer(target, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := renderer.Render(ctx, labels.Inputs{
		SearchName: args.SearchName,
		Filter:     args.Filter,
		OrderBy:    args.OrderBy,
	}); err != nil {
		return err
	}

	if args.Outer {
		fmt.Println(target.OuterHTML())
	} else {
		fmt.Println(target.HTML())
	}
	return nil
}
