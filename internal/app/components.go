package app

import (
	"fmt"

	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/tracker"
	"github.com/raysh454/labelboard/internal/utils"
	"github.com/raysh454/labelboard/internal/webclient"
)

// Components are the long-lived services every renderer shares.
type Components struct {
	WebClient webclient.WebClient

	// Tracker is nil when the render journal is disabled.
	Tracker *tracker.SQLiteTracker
}

// NewComponents builds the web client and, when enabled, opens the journal.
func NewComponents(cfg *Config, logger logging.Logger) (*Components, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	wc, err := webclient.NewWebClient(cfg.WebClientConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("new webclient: %w", err)
	}

	comps := &Components{WebClient: wc}
	if !cfg.History.Enabled {
		return comps, nil
	}

	path, err := utils.ExpandHome(cfg.History.Path)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	tr, err := tracker.Open(path, logger)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("new tracker: %w", err)
	}
	comps.Tracker = tr
	return comps, nil
}

// Close releases the web client and the journal.
func (c *Components) Close() error {
	var firstErr error
	if c.WebClient != nil {
		if err := c.WebClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close webclient: %w", err)
		}
	}
	if c.Tracker != nil {
		if err := c.Tracker.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close tracker: %w", err)
		}
	}
	return firstErr
}
