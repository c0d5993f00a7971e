package labels_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/testutil"
	"github.com/raysh454/labelboard/internal/webclient"
)

const threeLabels = `[
	{"id":1,"name":"Atlantic","address":"1633 Broadway","email":"info@atlantic.com"},
	{"id":2,"name":"Motown","address":"2648 W Grand Blvd","email":"hello@motown.com"},
	{"id":3,"name":"Sub Pop","address":"2013 4th Ave","email":"info@subpop.com"}
]`

func newRenderer(t *testing.T, opts labels.Options) *labels.Renderer {
	t.Helper()
	r, err := labels.NewRenderer(opts)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewRenderer_MissingDependencies(t *testing.T) {
	t.Parallel()
	cases := map[string]labels.Options{
		"client": {URLs: labels.FixedURL("/x"), Target: labels.NewNodeTarget("")},
		"url builder": {Client: &testutil.DummyWebClient{}, Target: labels.NewNodeTarget("")},
		"target":      {Client: &testutil.DummyWebClient{}, URLs: labels.FixedURL("/x")},
	}
	for name, opts := range cases {
		_, err := labels.NewRenderer(opts)
		if !errors.Is(err, labels.ErrMissingDependency) {
			t.Errorf("%s: expected ErrMissingDependency, got %v", name, err)
			continue
		}
		if !strings.Contains(err.Error(), name) {
			t.Errorf("%s: error should name the dependency: %v", name, err)
		}
	}
}

// ─── Success paths ─────────────────────────────────────────────────────

func TestRender_BuildsTable(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{Body: threeLabels}
	target := labels.NewNodeTarget("recordLabelData")
	r := newRenderer(t, labels.Options{Client: client, URLs: labels.FixedURL(labels.DefaultFixedPath), Target: target})

	res, err := r.Render(context.Background(), labels.Inputs{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Records != 3 || res.Empty() {
		t.Errorf("unexpected result %+v", res)
	}

	doc := parseDoc(t, target.OuterHTML())
	if got := doc.Find("#recordLabelData tr").Length(); got != 4 {
		t.Errorf("expected 4 rows, got %d", got)
	}
	if got := doc.Find("th").Length(); got != 4 {
		t.Errorf("expected 4 header cells, got %d", got)
	}
	if got := doc.Find("th").First().Text(); got != "Id" {
		t.Errorf("expected first header Id, got %q", got)
	}
	if got := doc.Find("table").Length(); got != 1 {
		t.Errorf("expected exactly one table, got %d", got)
	}
}

func TestRender_EmptyShowsMessageAndEmptyTable(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{Body: "[]"}
	target := labels.NewNodeTarget("recordLabelData")
	r := newRenderer(t, labels.Options{Client: client, URLs: labels.FixedURL("/x"), Target: target})

	res, err := r.Render(context.Background(), labels.Inputs{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result")
	}
	if target.Text() != labels.NoRecordsMessage {
		t.Errorf("expected %q, got %q", labels.NoRecordsMessage, target.Text())
	}
	if got := target.HTML(); got != "No record labels found.<table></table>" {
		t.Errorf("unexpected inner HTML %q", got)
	}
}

func TestRender_ReplacesPreviousContent(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{Body: threeLabels}
	target := labels.NewNodeTarget("")
	r := newRenderer(t, labels.Options{Client: client, URLs: labels.FixedURL("/x"), Target: target})

	if _, err := r.Render(context.Background(), labels.Inputs{}); err != nil {
		t.Fatalf("first Render: %v", err)
	}
	client.Body = `[{"name":"Only"}]`
	if _, err := r.Render(context.Background(), labels.Inputs{}); err != nil {
		t.Fatalf("second Render: %v", err)
	}

	doc := parseDoc(t, target.HTML())
	if got := doc.Find("table").Length(); got != 1 {
		t.Errorf("expected a single table after re-render, got %d", got)
	}
	if got := doc.Find("tr").Length(); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
}

func TestRender_QueryVariantRequestsBuiltURL(t *testing.T) {
	t.Parallel()
	client := &testutil.DummyWebClient{}
	r := newRenderer(t, labels.Options{
		Client:  client,
		URLs:    labels.QueryURL(labels.DefaultQueryPath),
		Target:  labels.NewNodeTarget(""),
		BaseURL: "http://backend.local/",
	})

	if _, err := r.Render(context.Background(), labels.Inputs{SearchName: "Atlantic", OrderBy: "name"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	urls := client.RequestedURLs()
	want := "http://backend.local/main_app/api/record_label/?searchName=Atlantic&ordering=name&"
	if len(urls) != 1 || urls[0] != want {
		t.Errorf("requested %v, want %q", urls, want)
	}
}

// ─── Failure paths ─────────────────────────────────────────────────────

func TestRender_NonOKLeavesTargetAndLogs(t *testing.T) {
	t.Parallel()
	logger := &testutil.DummyLogger{}
	client := &testutil.DummyWebClient{Body: threeLabels}
	target := labels.NewNodeTarget("")
	r := newRenderer(t, labels.Options{Client: client, URLs: labels.FixedURL("/x"), Target: target, Logger: logger})

	if _, err := r.Render(context.Background(), labels.Inputs{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	before := target.HTML()

	client.StatusCode = http.StatusInternalServerError
	_, err := r.Render(context.Background(), labels.Inputs{})

	var se *labels.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != 500 || !strings.Contains(se.Error(), "Internal Server Error") {
		t.Errorf("unexpected status error %v", se)
	}
	if target.HTML() != before {
		t.Error("target changed after failed render")
	}
	if logger.ErrorCount() != 1 {
		t.Errorf("expected one error log, got %d", logger.ErrorCount())
	}
}

func TestRender_TransportAndDecodeErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]*testutil.DummyWebClient{
		"network": {Errors: map[string]error{"/x": errors.New("connection refused")}},
		"not json": {Body: "<html>oops</html>"},
		"object":   {Body: `{"detail":"nope"}`},
	}
	for name, client := range cases {
		client := client
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			target := labels.NewNodeTarget("")
			target.SetText("stale")
			logger := &testutil.DummyLogger{}
			r := newRenderer(t, labels.Options{Client: client, URLs: labels.FixedURL("/x"), Target: target, Logger: logger})

			if _, err := r.Render(context.Background(), labels.Inputs{}); err == nil {
				t.Fatal("expected error")
			}
			if target.Text() != "stale" {
				t.Errorf("target changed to %q", target.Text())
			}
			if logger.ErrorCount() != 1 {
				t.Errorf("expected one error log, got %d", logger.ErrorCount())
			}
		})
	}
}

// ─── Overlapping requests ──────────────────────────────────────────────

// gateClient holds every request until the test releases it.
type gateClient struct {
	mu      sync.Mutex
	gates   []chan string
	started chan struct{}
}

func newGateClient() *gateClient {
	return &gateClient{started: make(chan struct{}, 8)}
}

func (g *gateClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	return g.Get(ctx, req.URL)
}

func (g *gateClient) Get(ctx context.Context, _ string) (*webclient.Response, error) {
	gate := make(chan string, 1)
	g.mu.Lock()
	g.gates = append(g.gates, gate)
	g.mu.Unlock()
	g.started <- struct{}{}

	select {
	case body := <-gate:
		return testutil.JSONResponse(http.StatusOK, body), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gateClient) Close() error { return nil }

func (g *gateClient) release(i int, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gates[i] <- body
}

func (g *gateClient) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(2 * time.Second):
		t.Fatal("request never started")
	}
}

type outcome struct {
	res *labels.Result
	err error
}

// overlap starts two renders, resolves the second one first, then the first.
func overlap(t *testing.T, r *labels.Renderer, g *gateClient) (first, second outcome) {
	t.Helper()
	firstDone := make(chan outcome, 1)
	secondDone := make(chan outcome, 1)

	go func() {
		res, err := r.Render(context.Background(), labels.Inputs{})
		firstDone <- outcome{res, err}
	}()
	g.waitStarted(t)
	go func() {
		res, err := r.Render(context.Background(), labels.Inputs{})
		secondDone <- outcome{res, err}
	}()
	g.waitStarted(t)

	g.release(1, `[{"name":"second"}]`)
	second = <-secondDone
	g.release(0, `[{"name":"first"}]`)
	first = <-firstDone
	return first, second
}

func TestRender_LatestGenerationWins(t *testing.T) {
	t.Parallel()
	g := newGateClient()
	target := labels.NewNodeTarget("")
	r := newRenderer(t, labels.Options{Client: g, URLs: labels.FixedURL("/x"), Target: target})

	first, second := overlap(t, r, g)

	if second.err != nil || second.res.Generation != 2 {
		t.Fatalf("second render: %+v", second)
	}
	if !errors.Is(first.err, labels.ErrSuperseded) {
		t.Fatalf("expected first render to be superseded, got %v", first.err)
	}
	if !strings.Contains(target.Text(), "second") || strings.Contains(target.Text(), "first") {
		t.Errorf("expected target to show the newest click, got %q", target.Text())
	}
}

func TestRender_AllowStale_LastArrivalWins(t *testing.T) {
	t.Parallel()
	g := newGateClient()
	target := labels.NewNodeTarget("")
	r := newRenderer(t, labels.Options{Client: g, URLs: labels.FixedURL("/x"), Target: target, AllowStale: true})

	first, second := overlap(t, r, g)

	if first.err != nil || second.err != nil {
		t.Fatalf("unexpected errors: %v / %v", first.err, second.err)
	}
	if !strings.Contains(target.Text(), "first") {
		t.Errorf("expected the last response to arrive to be shown, got %q", target.Text())
	}
}

func TestRender_CancelSuperseded(t *testing.T) {
	t.Parallel()
	g := newGateClient()
	target := labels.NewNodeTarget("")
	r := newRenderer(t, labels.Options{Client: g, URLs: labels.FixedURL("/x"), Target: target, CancelSuperseded: true})

	firstDone := make(chan error, 1)
	go func() {
		_, err := r.Render(context.Background(), labels.Inputs{})
		firstDone <- err
	}()
	g.waitStarted(t)

	secondDone := make(chan error, 1)
	go func() {
		_, err := r.Render(context.Background(), labels.Inputs{})
		secondDone <- err
	}()
	g.waitStarted(t)

	select {
	case err := <-firstDone:
		if !errors.Is(err, labels.ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first render was not cancelled")
	}

	g.release(1, `[{"name":"second"}]`)
	if err := <-secondDone; err != nil {
		t.Fatalf("second render: %v", err)
	}
	if r.Generation() != 2 {
		t.Errorf("expected generation 2, got %d", r.Generation())
	}
	if !strings.Contains(target.Text(), "second") {
		t.Errorf("unexpected target %q", target.Text())
	}
}

// ─── Observers ─────────────────────────────────────────────────────────

func TestRender_OnAppliedReportsDiff(t *testing.T) {
	t.Parallel()
	var events []labels.RenderEvent
	client := &testutil.DummyWebClient{Body: `[{"name":"Atlantic"}]`}
	r := newRenderer(t, labels.Options{
		Client:    client,
		URLs:      labels.FixedURL("/x"),
		Target:    labels.NewNodeTarget(""),
		OnApplied: func(ev labels.RenderEvent) { events = append(events, ev) },
	})

	if _, err := r.Render(context.Background(), labels.Inputs{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	client.Body = `[{"name":"Motown"}]`
	if _, err := r.Render(context.Background(), labels.Inputs{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID == "" || events[0].ID == events[1].ID {
		t.Errorf("expected distinct event ids")
	}
	if !strings.Contains(events[1].HTML, "Motown") {
		t.Errorf("event html missing new content: %s", events[1].HTML)
	}
	var added, removed bool
	for _, c := range events[1].Changes {
		added = added || c.Type == "added"
		removed = removed || c.Type == "removed"
	}
	if !added || !removed {
		t.Errorf("unexpected changes %+v", events[1].Changes)
	}
}
