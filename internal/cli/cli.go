package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raysh454/labelboard/internal/app"
)

// CLIArgs are the command-line arguments of a single labeltable run.
// Empty or zero fields leave the config file's value in place.
type CLIArgs struct {
	ConfigPath string
	BaseURL    string
	Variant    string
	Backend    string
	Timeout    time.Duration
	LogLevel   string

	SearchName string
	Filter     string
	OrderBy    string

	// Outer wraps the output in the recordLabelData container.
	Outer bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("labeltable", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Path to a YAML config file")
		baseURL    = fs.String("base", "", "Backend origin, e.g. http://localhost:8081")
		variant    = fs.String("variant", "", "URL variant: query|fixed")
		backend    = fs.String("backend", "", "Web client backend: nethttp|chromedp")
		timeout    = fs.Duration("timeout", 0, "Request timeout (0=use config)")
		logLevel   = fs.String("log-level", "", "Log level: debug|info|warn|error")
		searchName = fs.String("search", "", "searchName input")
		filter     = fs.String("filter", "", "filter input")
		orderBy    = fs.String("order", "", "orderBy input")
		outer      = fs.Bool("outer", false, "Print the container element, not just its contents")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	v := strings.ToLower(strings.TrimSpace(*variant))
	if v != "" && v != string(app.VariantQuery) && v != string(app.VariantFixed) {
		return nil, fmt.Errorf("invalid -variant %q: want query or fixed", *variant)
	}
	if *timeout < 0 {
		return nil, fmt.Errorf("invalid -timeout %s", *timeout)
	}

	return &CLIArgs{
		ConfigPath: *configPath,
		BaseURL:    *baseURL,
		Variant:    v,
		Backend:    *backend,
		Timeout:    *timeout,
		LogLevel:   *logLevel,
		SearchName: *searchName,
		Filter:     *filter,
		OrderBy:    *orderBy,
		Outer:      *outer,
		RawArgs:    args,
	}, nil
}

// Apply overrides cfg with the flags that were set.
func (a *CLIArgs) Apply(cfg *app.Config) {
	if a.BaseURL != "" {
		cfg.Backend.BaseURL = a.BaseURL
	}
	if a.Variant != "" {
		cfg.Backend.Variant = app.Variant(a.Variant)
	}
	if a.Backend != "" {
		cfg.WebClient.Backend = a.Backend
	}
	if a.Timeout > 0 {
		cfg.WebClient.Timeout = app.Duration{Duration: a.Timeout}
	}
	if a.LogLevel != "" {
		cfg.LogLevel = a.LogLevel
	}
}

// ServerArgs are the command-line arguments of the page host.
type ServerArgs struct {
	ConfigPath string
	ListenAddr string
	BaseURL    string
	LogLevel   string
	History    bool
	RawArgs    []string
}

// ParseServerArgs parses the labelserver flags.
func ParseServerArgs(args []string) (*ServerArgs, error) {
	fs := flag.NewFlagSet("labelserver", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Path to a YAML config file")
		listen     = fs.String("listen", "", "Listen address, e.g. :8080")
		baseURL    = fs.String("base", "", "Backend origin, e.g. http://localhost:8081")
		logLevel   = fs.String("log-level", "", "Log level: debug|info|warn|error")
		history    = fs.Bool("history", false, "Journal renders to the configured SQLite file")
	)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return &ServerArgs{
		ConfigPath: *configPath,
		ListenAddr: *listen,
		BaseURL:    *baseURL,
		LogLevel:   *logLevel,
		History:    *history,
		RawArgs:    args,
	}, nil
}

// Apply overrides cfg with the flags that were set.
func (a *ServerArgs) Apply(cfg *app.Config) {
	if a.ListenAddr != "" {
		cfg.ListenAddr = a.ListenAddr
	}
	if a.BaseURL != "" {
		cfg.Backend.BaseURL = a.BaseURL
	}
	if a.LogLevel != "" {
		cfg.LogLevel = a.LogLevel
	}
	if a.History {
		cfg.History.Enabled = true
	}
}
