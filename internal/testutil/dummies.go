// Package testutil provides shared test doubles for use across package tests.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ErrorCount returns the number of Error calls so far.
func (l *DummyLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Errors)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// Responses are looked up by URL; unknown URLs get StatusCode/Body defaults
// (200 and "[]").
type DummyWebClient struct {
	mu         sync.Mutex
	Responses  map[string]*webclient.Response
	Errors     map[string]error
	StatusCode int
	Body       string
	Requests   []string
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if req == nil {
		return nil, webclient.ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.Requests = append(d.Requests, req.URL)

	if err, ok := d.Errors[req.URL]; ok {
		return nil, err
	}
	if resp, ok := d.Responses[req.URL]; ok {
		cp := *resp
		cp.Request = req
		return &cp, nil
	}

	code := d.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	body := d.Body
	if body == "" {
		body = "[]"
	}
	return &webclient.Response{
		Request:    req,
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Body:       []byte(body),
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: http.MethodGet, URL: url})
}

func (d *DummyWebClient) Close() error { return nil }

// RequestedURLs returns a copy of the URLs requested so far.
func (d *DummyWebClient) RequestedURLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.Requests...)
}

// JSONResponse builds a response with the given status and body.
func JSONResponse(code int, body string) *webclient.Response {
	return &webclient.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Body:       []byte(body),
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
	}
}
