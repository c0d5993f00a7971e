package demoserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/raysh454/labelboard/internal/demoserver"
	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/testutil"
	"github.com/raysh454/labelboard/internal/webclient"
)

func newDemo(t *testing.T) (*demoserver.DemoServer, *httptest.Server) {
	t.Helper()
	demo := demoserver.NewDemoServer(demoserver.DefaultConfig(), &testutil.DummyLogger{})
	ts := httptest.NewServer(demo.Handler())
	t.Cleanup(ts.Close)
	return demo, ts
}

func getLabels(t *testing.T, rawURL string) (int, []demoserver.RecordLabel) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var out []demoserver.RecordLabel
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, out
}

func post(t *testing.T, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.PostForm(rawURL, form)
	if err != nil {
		t.Fatalf("POST %s: %v", rawURL, err)
	}
	resp.Body.Close()
	return resp
}

func names(ls []demoserver.RecordLabel) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return out
}

// ─── Fixture routes ────────────────────────────────────────────────────

func TestDemoServer_FixedRouteIgnoresParameters(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	code, got := getLabels(t, ts.URL+labels.DefaultFixedPath+"?searchName=zzz")
	if code != http.StatusOK || len(got) != len(demoserver.DefaultRecordLabels()) {
		t.Fatalf("expected full list, got %d %v", code, names(got))
	}
}

func TestDemoServer_QueryRouteFilters(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	_, got := getLabels(t, ts.URL+labels.DefaultQueryPath+"?searchName=SU&ordering=-name&")
	if diff := cmp.Diff([]string{"Sun Records", "Sub Pop"}, names(got)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	_, got = getLabels(t, ts.URL+labels.DefaultQueryPath+"?filter=london&")
	if len(got) != 1 || got[0].Name != "Rough Trade" {
		t.Errorf("unexpected labels %v", names(got))
	}
}

func TestDemoServer_KeyOrder(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	resp, err := http.Get(ts.URL + labels.DefaultFixedPath)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw[0]), `{"id":1,"name":`) {
		t.Errorf("unexpected key order %s", raw[0])
	}
}

// ─── Control endpoints ─────────────────────────────────────────────────

func TestDemoServer_SetStatus(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	if resp := post(t, ts.URL+"/demo/set-status", url.Values{"code": {"503"}}); resp.StatusCode != http.StatusOK {
		t.Fatalf("set-status: %d", resp.StatusCode)
	}
	if code, _ := getLabels(t, ts.URL+labels.DefaultFixedPath); code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", code)
	}

	post(t, ts.URL+"/demo/reset", nil)
	if code, _ := getLabels(t, ts.URL+labels.DefaultFixedPath); code != http.StatusOK {
		t.Errorf("expected 200 after reset, got %d", code)
	}
}

func TestDemoServer_ControlValidation(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	tests := []struct {
		path string
		form url.Values
	}{
		{"/demo/set-status", url.Values{"code": {"abc"}}},
		{"/demo/set-status", url.Values{"code": {"42"}}},
		{"/demo/set-delay", url.Values{"delay": {"soon"}}},
		{"/demo/set-delay", url.Values{"sequence": {"1s,-1s"}}},
	}
	for _, tc := range tests {
		if resp := post(t, ts.URL+tc.path, tc.form); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s %v: expected 400, got %d", tc.path, tc.form, resp.StatusCode)
		}
	}

	resp, err := http.Get(ts.URL + "/demo/reset")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestDemoServer_RequestsAreRecorded(t *testing.T) {
	t.Parallel()
	demo, ts := newDemo(t)

	getLabels(t, ts.URL+labels.DefaultQueryPath+"?searchName=Motown&")
	getLabels(t, ts.URL+labels.DefaultFixedPath)

	want := []string{labels.DefaultQueryPath + "?searchName=Motown&", labels.DefaultFixedPath}
	if diff := cmp.Diff(want, demo.Requests()); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestDemoServer_ControlPanel(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	resp, err := http.Get(ts.URL + "/demo/control")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// ─── Renderer against the fixture ──────────────────────────────────────

func newRenderer(t *testing.T, baseURL string, urls labels.URLBuilder, target labels.Target) *labels.Renderer {
	t.Helper()
	wc, err := webclient.NewNetHTTPClient(webclient.Config{Timeout: 5 * time.Second}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err := labels.NewRenderer(labels.Options{
		Client:  wc,
		URLs:    urls,
		Target:  target,
		Logger:  &testutil.DummyLogger{},
		BaseURL: baseURL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRenderer_AgainstDemoServer(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	target := labels.NewNodeTarget("recordLabelData")
	r := newRenderer(t, ts.URL, labels.QueryURL(labels.DefaultQueryPath), target)

	res, err := r.Render(context.Background(), labels.Inputs{SearchName: "motown"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Records != 1 {
		t.Fatalf("expected 1 record, got %d", res.Records)
	}
	want := "<table><tr><th>Id</th><th>Name</th><th>Address</th><th>Email</th></tr>" +
		"<tr><td>2</td><td>Motown</td><td>2648 W Grand Blvd, Detroit, MI 48208</td><td>hello@motown.example</td></tr></table>"
	if got := target.HTML(); got != want {
		t.Errorf("unexpected html:\n got %s\nwant %s", got, want)
	}

	if _, err := r.Render(context.Background(), labels.Inputs{SearchName: "nothing matches"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := target.HTML(); got != "No record labels found.<table></table>" {
		t.Errorf("unexpected empty render %q", got)
	}
}

func TestRenderer_ForcedFailureKeepsPreviousTable(t *testing.T) {
	t.Parallel()
	_, ts := newDemo(t)

	target := labels.NewNodeTarget("")
	r := newRenderer(t, ts.URL, labels.FixedURL(labels.DefaultFixedPath), target)

	if _, err := r.Render(context.Background(), labels.Inputs{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	before := target.HTML()

	post(t, ts.URL+"/demo/set-status", url.Values{"code": {"500"}})
	_, err := r.Render(context.Background(), labels.Inputs{})
	var se *labels.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected StatusError 500, got %v", err)
	}
	if target.HTML() != before {
		t.Error("target changed after failed render")
	}
}

func TestRenderer_SlowEarlierResponseIsDiscarded(t *testing.T) {
	t.Parallel()
	demo, ts := newDemo(t)

	// First request is slow, second is immediate.
	post(t, ts.URL+"/demo/set-delay", url.Values{"sequence": {"300ms,0s"}})

	target := labels.NewNodeTarget("")
	r := newRenderer(t, ts.URL, labels.QueryURL(labels.DefaultQueryPath), target)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = r.Render(context.Background(), labels.Inputs{SearchName: "Atlantic"})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(demo.Requests()) < 1 {
		if time.Now().After(deadline) {
			t.Fatal("first request never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := r.Render(context.Background(), labels.Inputs{SearchName: "Motown"}); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	wg.Wait()

	if !errors.Is(firstErr, labels.ErrSuperseded) {
		t.Errorf("expected first render to be superseded, got %v", firstErr)
	}
	if html := target.HTML(); !strings.Contains(html, "Motown") || strings.Contains(html, "Atlantic") {
		t.Errorf("stale response applied: %s", html)
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()
	all := demoserver.DefaultRecordLabels()

	tests := []struct {
		search, filter, ordering string
		want                     string
	}{
		{"", "", "", "Atlantic Records,Motown,Sub Pop,Blue Note,Sun Records,Rough Trade"},
		{"", "", "-id", "Rough Trade,Sun Records,Blue Note,Sub Pop,Motown,Atlantic Records"},
		{"", "", "name", "Atlantic Records,Blue Note,Motown,Rough Trade,Sub Pop,Sun Records"},
		{"", "", "bogus", "Atlantic Records,Motown,Sub Pop,Blue Note,Sun Records,Rough Trade"},
		{"records", "", "", "Atlantic Records,Sun Records"},
		{"", "CA 9", "", "Blue Note"},
		{"", "@motown", "", "Motown"},
		{"x", "", "", ""},
	}
	for _, tc := range tests {
		got := strings.Join(names(demoserver.Query(all, tc.search, tc.filter, tc.ordering)), ",")
		if got != tc.want {
			t.Errorf("Query(%q,%q,%q) = %q, want %q", tc.search, tc.filter, tc.ordering, got, tc.want)
		}
	}
}
