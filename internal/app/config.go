package app

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/utils"
	"github.com/raysh454/labelboard/internal/webclient"
)

// Variant selects how the record label URL is built.
type Variant string

const (
	// VariantQuery appends searchName, filter and ordering to QueryPath.
	VariantQuery Variant = "query"
	// VariantFixed always requests FixedPath.
	VariantFixed Variant = "fixed"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	ListenAddr string          `yaml:"listen_addr"`
	LogLevel   string          `yaml:"log_level"`
	Backend    BackendConfig   `yaml:"backend"`
	WebClient  WebClientConfig `yaml:"webclient"`
	Render     RenderConfig    `yaml:"render"`
	History    HistoryConfig   `yaml:"history"`
}

// BackendConfig locates the record label API.
type BackendConfig struct {
	// BaseURL is the origin prepended to the API paths.
	BaseURL   string  `yaml:"base_url"`
	Variant   Variant `yaml:"variant"`
	QueryPath string  `yaml:"query_path"`
	FixedPath string  `yaml:"fixed_path"`
}

type WebClientConfig struct {
	Backend      string   `yaml:"backend"`
	Timeout      Duration `yaml:"timeout"`
	RateLimitRPS float64  `yaml:"rate_limit_rps"`
	Headless     bool     `yaml:"headless"`
	IdleAfter    Duration `yaml:"idle_after"`
}

type RenderConfig struct {
	// DiscardStale drops responses whose request is no longer the latest.
	DiscardStale     bool `yaml:"discard_stale"`
	CancelSuperseded bool `yaml:"cancel_superseded"`
}

// HistoryConfig controls the render journal.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "500ms" or "30s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = dur
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// DefaultConfig returns a Config populated with development defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8081",
			Variant:   VariantQuery,
			QueryPath: labels.DefaultQueryPath,
			FixedPath: labels.DefaultFixedPath,
		},
		WebClient: WebClientConfig{
			Backend:   string(webclient.ClientNetHTTP),
			Timeout:   Duration{10 * time.Second},
			Headless:  true,
			IdleAfter: Duration{2 * time.Second},
		},
		Render: RenderConfig{
			DiscardStale: true,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "~/.config/labelboard/history.db",
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Environment variables in
// the file are expanded. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config and normalises the base URL in place.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, errors.New("listen_addr is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch c.Backend.Variant {
	case VariantQuery:
		if c.Backend.QueryPath == "" {
			errs = append(errs, errors.New("backend.query_path is required for the query variant"))
		}
	case VariantFixed:
		if c.Backend.FixedPath == "" {
			errs = append(errs, errors.New("backend.fixed_path is required for the fixed variant"))
		}
	default:
		errs = append(errs, fmt.Errorf("backend.variant %q must be %q or %q", c.Backend.Variant, VariantQuery, VariantFixed))
	}

	if c.Backend.BaseURL != "" {
		base, err := utils.NormalizeBaseURL(c.Backend.BaseURL, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("backend.base_url: %w", err))
		} else {
			c.Backend.BaseURL = base
		}
	}

	backend := strings.ToLower(strings.TrimSpace(c.WebClient.Backend))
	if backend != "" && !slices.Contains(webclient.ListBackends(), backend) {
		errs = append(errs, fmt.Errorf("webclient.backend %q is not one of %v", c.WebClient.Backend, webclient.ListBackends()))
	}
	if c.WebClient.Timeout.Duration < 0 {
		errs = append(errs, errors.New("webclient.timeout must not be negative"))
	}
	if c.WebClient.RateLimitRPS < 0 {
		errs = append(errs, errors.New("webclient.rate_limit_rps must not be negative"))
	}

	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		errs = append(errs, errors.New("history.path is required when history is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// URLBuilder returns the builder for the configured variant.
func (c *Config) URLBuilder() labels.URLBuilder {
	if c.Backend.Variant == VariantFixed {
		return labels.FixedURL(c.Backend.FixedPath)
	}
	return labels.QueryURL(c.Backend.QueryPath)
}

// WebClientConfig maps the YAML settings to the webclient package's config.
func (c *Config) WebClientConfig() webclient.Config {
	return webclient.Config{
		Client:       webclient.Client(c.WebClient.Backend),
		Timeout:      c.WebClient.Timeout.Duration,
		RateLimitRPS: c.WebClient.RateLimitRPS,
		ShowBrowser:  !c.WebClient.Headless,
		IdleAfter:    c.WebClient.IdleAfter.Duration,
	}
}
