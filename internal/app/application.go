package app

import (
	"context"
	"errors"
	"time"

	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/logging"
)

const journalTimeout = 5 * time.Second

// Application is the global runtime state container. It holds the config,
// the logger and the shared components. Pass Application into modules that
// need access to the global state rather than using package-level variables.
type Application struct {
	Config     *Config
	Logger     logging.Logger
	Components *Components
}

// NewApplication validates cfg and constructs the shared components.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comps, err := NewComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, Logger: logger, Components: comps}, nil
}

// NewApplicationWith wraps already-constructed components, so tests can
// pass dummies.
func NewApplicationWith(cfg *Config, logger logging.Logger, comps *Components) *Application {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	if comps == nil {
		comps = &Components{}
	}
	return &Application{Config: cfg, Logger: logger, Components: comps}
}

// NewRenderer builds a renderer for target using the configured variant,
// base URL and stale-response policy. onApplied may be nil.
func (a *Application) NewRenderer(target labels.Target, onApplied func(labels.RenderEvent)) (*labels.Renderer, error) {
	return labels.NewRenderer(labels.Options{
		Client:           a.Components.WebClient,
		URLs:             a.Config.URLBuilder(),
		Target:           target,
		Logger:           a.Logger,
		BaseURL:          a.Config.Backend.BaseURL,
		Variant:          string(a.Config.Backend.Variant),
		AllowStale:       !a.Config.Render.DiscardStale,
		CancelSuperseded: a.Config.Render.CancelSuperseded,
		OnApplied:        onApplied,
	})
}

// HistoryEnabled reports whether renders are journaled.
func (a *Application) HistoryEnabled() bool {
	return a.Components.Tracker != nil
}

// Journal returns an OnApplied hook that records renders of session, or nil
// when the journal is disabled. Journal failures are logged and never fail
// the render.
func (a *Application) Journal(session string) func(labels.RenderEvent) {
	tr := a.Components.Tracker
	if tr == nil {
		return nil
	}
	return func(ev labels.RenderEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		if _, err := tr.Record(ctx, session, ev); err != nil {
			a.Logger.Warn("failed to journal render",
				logging.Field{Key: "session", Value: session},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

// Shutdown releases the shared components.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	done := make(chan error, 1)
	go func() { done <- a.Components.Close() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
