package webclient

import "time"

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config carries the settings every backend constructor reads from.
type Config struct {
	Client Client

	// Timeout bounds a single request. Zero means 30s.
	Timeout time.Duration

	// RateLimitRPS caps outgoing requests per second for the nethttp
	// backend. Zero disables limiting.
	RateLimitRPS float64

	// ShowBrowser runs chromedp with a visible window.
	ShowBrowser bool

	// IdleAfter is how long chromedp waits with no network activity before
	// reading the page. Zero means 2s.
	IdleAfter time.Duration
}

const (
	defaultTimeout   = 30 * time.Second
	defaultIdleAfter = 2 * time.Second
)

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c Config) idleAfter() time.Duration {
	if c.IdleAfter > 0 {
		return c.IdleAfter
	}
	return defaultIdleAfter
}
