package labels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/metrics"
	"github.com/raysh454/labelboard/internal/model"
	"github.com/raysh454/labelboard/internal/webclient"
)

var (
	// ErrMissingDependency is returned by NewRenderer when the client, URL
	// builder or target is absent.
	ErrMissingDependency = errors.New("labels: missing renderer dependency")

	// ErrSuperseded means a newer Render started before this one's response
	// could be applied; the target was left alone.
	ErrSuperseded = errors.New("labels: response superseded by a newer request")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("network response was not ok: %s", e.Status)
}

// RenderEvent describes one applied render.
type RenderEvent struct {
	ID         string    `json:"id"`
	Generation uint64    `json:"generation"`
	URL        string    `json:"url"`
	Records    int       `json:"records"`
	HTML       string    `json:"html"`
	Changes    []Change  `json:"changes,omitempty"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Result summarises a successful Render.
type Result struct {
	Generation uint64
	URL        string
	Records    int
}

// Empty reports whether the response had no records.
func (r *Result) Empty() bool { return r.Records == 0 }

// Options configures a Renderer.
type Options struct {
	Client webclient.WebClient
	URLs   URLBuilder
	Target Target
	Logger logging.Logger

	// BaseURL is prepended to URLs that start with "/".
	BaseURL string

	// Variant labels fetch metrics, e.g. "query" or "fixed".
	Variant string

	// AllowStale applies every successful response in arrival order, so an
	// older response can overwrite a newer one. By default only the latest
	// generation is applied.
	AllowStale bool

	// CancelSuperseded aborts the in-flight request when a newer Render starts.
	CancelSuperseded bool

	// OnApplied is called after each applied render, while the target is
	// still locked. It must not call Render.
	OnApplied func(RenderEvent)
}

// Renderer fetches the record label list and renders it into a Target.
type Renderer struct {
	opts   Options
	logger logging.Logger

	gen atomic.Uint64

	inflightMu sync.Mutex
	cancelPrev context.CancelFunc

	applyMu  sync.Mutex
	lastHTML string
}

// NewRenderer validates opts and returns a Renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	var missing []string
	if opts.Client == nil {
		missing = append(missing, "client")
	}
	if opts.URLs == nil {
		missing = append(missing, "url builder")
	}
	if opts.Target == nil {
		missing = append(missing, "target")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingDependency, strings.Join(missing, ", "))
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	if opts.Variant == "" {
		opts.Variant = "custom"
	}

	return &Renderer{
		opts:   opts,
		logger: logger.With(logging.Field{Key: "component", Value: "renderer"}),
	}, nil
}

// Generation returns the number of Render calls started so far.
func (r *Renderer) Generation() uint64 {
	return r.gen.Load()
}

// Render performs one trigger: build the URL, GET it and, on a 2xx JSON
// array, replace the target's content. Any failure is logged and returned
// and leaves the target untouched.
func (r *Renderer) Render(ctx context.Context, in Inputs) (*Result, error) {
	ctx, gen, done := r.begin(ctx)
	defer done()

	url := r.resolve(r.opts.URLs.BuildURL(in))
	log := r.logger.With(
		logging.Field{Key: "generation", Value: gen},
		logging.Field{Key: "url", Value: url})

	start := time.Now()
	resp, err := r.opts.Client.Get(ctx, url)
	metrics.FetchDuration.WithLabelValues(r.opts.Variant).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, r.fail(log, gen, fmt.Errorf("fetch %s: %w", url, err))
	}
	if !resp.OK() {
		return nil, r.fail(log, gen, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status})
	}

	records, err := model.DecodeRecords(resp.Body)
	if err != nil {
		return nil, r.fail(log, gen, fmt.Errorf("decode response: %w", err))
	}

	return r.apply(log, gen, url, records)
}

// begin takes the next generation and, when configured, cancels the
// previous in-flight request. Both happen under one lock so generations and
// cancel funcs stay paired.
func (r *Renderer) begin(ctx context.Context) (context.Context, uint64, func()) {
	r.inflightMu.Lock()
	defer r.inflightMu.Unlock()

	gen := r.gen.Add(1)
	if !r.opts.CancelSuperseded {
		return ctx, gen, func() {}
	}

	if r.cancelPrev != nil {
		r.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancelPrev = cancel
	return ctx, gen, cancel
}

func (r *Renderer) resolve(u string) string {
	if r.opts.BaseURL == "" || !strings.HasPrefix(u, "/") {
		return u
	}
	return strings.TrimRight(r.opts.BaseURL, "/") + u
}

func (r *Renderer) fail(log logging.Logger, gen uint64, err error) error {
	if r.opts.CancelSuperseded && errors.Is(err, context.Canceled) && gen != r.gen.Load() {
		metrics.RendersTotal.WithLabelValues(metrics.OutcomeSuperseded).Inc()
		log.Debug("request cancelled by newer render")
		return ErrSuperseded
	}
	metrics.RendersTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
	log.Error("fetching record labels failed", logging.Field{Key: "error", Value: err.Error()})
	return err
}

func (r *Renderer) apply(log logging.Logger, gen uint64, url string, records []model.Record) (*Result, error) {
	r.applyMu.Lock()
	defer r.applyMu.Unlock()

	if latest := r.gen.Load(); !r.opts.AllowStale && gen != latest {
		metrics.RendersTotal.WithLabelValues(metrics.OutcomeSuperseded).Inc()
		log.Info("discarding stale response", logging.Field{Key: "latest_generation", Value: latest})
		return nil, ErrSuperseded
	}

	r.opts.Target.Clear()
	table := BuildTable(records)
	if len(records) == 0 {
		r.opts.Target.SetText(NoRecordsMessage)
	}
	// The table is appended even when empty, after the message.
	r.opts.Target.Append(table)

	outcome := metrics.OutcomeApplied
	if len(records) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RendersTotal.WithLabelValues(outcome).Inc()
	log.Info("rendered record labels", logging.Field{Key: "records", Value: len(records)})

	if r.opts.OnApplied != nil {
		ev := RenderEvent{
			ID:         uuid.New().String(),
			Generation: gen,
			URL:        url,
			Records:    len(records),
			RenderedAt: time.Now().UTC(),
		}
		if h, ok := r.opts.Target.(interface{ HTML() string }); ok {
			ev.HTML = h.HTML()
			ev.Changes = Diff(r.lastHTML, ev.HTML)
			r.lastHTML = ev.HTML
		}
		r.opts.OnApplied(ev)
	}

	return &Result{Generation: gen, URL: url, Records: len(records)}, nil
}
