package demoserver

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/logging"
)

// DemoServer is a fixture record label backend for local runs and tests.
// Its control endpoints force failures and delays so error handling and
// overlapping requests can be exercised by hand.
type DemoServer struct {
	cfg    Config
	logger logging.Logger

	mu       sync.Mutex
	labels   []RecordLabel
	status   int             // forced status; 0 serves normally
	delays   []time.Duration // consumed one per request before cfg.Delay applies
	delay    time.Duration
	requests []string
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &DemoServer{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "demoserver"}),
		labels: DefaultRecordLabels(),
		delay:  cfg.Delay,
	}
}

// Handler returns the demo server's routes.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(labels.DefaultQueryPath, s.recordLabelsHandler(true))
	mux.HandleFunc(labels.DefaultFixedPath, s.recordLabelsHandler(false))

	// Control panel for failure and delay injection
	mux.HandleFunc("/demo/control", s.controlPanelHandler)
	mux.HandleFunc("/demo/set-status", s.setStatusHandler)
	mux.HandleFunc("/demo/set-delay", s.setDelayHandler)
	mux.HandleFunc("/demo/requests", s.requestsHandler)
	mux.HandleFunc("/demo/reset", s.resetHandler)

	return mux
}

// HTTPServer creates an *http.Server for the configured port.
func (s *DemoServer) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// recordLabelsHandler serves the fixture list. The query route honours
// searchName, filter and ordering; the fixed route ignores parameters.
func (s *DemoServer) recordLabelsHandler(query bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, r.URL.RequestURI())
		status := s.status
		delay := s.delay
		if len(s.delays) > 0 {
			delay = s.delays[0]
			s.delays = s.delays[1:]
		}
		all := append([]RecordLabel(nil), s.labels...)
		s.mu.Unlock()

		if delay > 0 {
			if err := sleep(r.Context(), delay); err != nil {
				return
			}
		}

		if status != 0 && (status < 200 || status > 299) {
			s.logger.Info("forcing failure status", logging.Field{Key: "status", Value: status})
			http.Error(w, http.StatusText(status), status)
			return
		}

		out := all
		if query {
			q := r.URL.Query()
			out = Query(all, q.Get("searchName"), q.Get("filter"), q.Get("ordering"))
		}

		code := http.StatusOK
		if status != 0 {
			code = status
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(out)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setStatusHandler forces every record label response to the given code.
// code=0 or code=200 restores normal responses.
func (s *DemoServer) setStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code, err := strconv.Atoi(r.FormValue("code"))
	if err != nil || (code != 0 && (code < 100 || code > 599)) {
		http.Error(w, "Invalid status code", http.StatusBadRequest)
		return
	}
	if code == http.StatusOK {
		code = 0
	}

	s.mu.Lock()
	s.status = code
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"success": true,
		"status":  code,
	})
}

// setDelayHandler sets the per-request delay ("delay=300ms") and/or a
// sequence consumed one per request ("sequence=2s,0s").
func (s *DemoServer) setDelayHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var delay time.Duration
	hasDelay := r.FormValue("delay") != ""
	if hasDelay {
		d, err := time.ParseDuration(r.FormValue("delay"))
		if err != nil || d < 0 {
			http.Error(w, "Invalid delay", http.StatusBadRequest)
			return
		}
		delay = d
	}

	var seq []time.Duration
	if raw := r.FormValue("sequence"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			d, err := time.ParseDuration(strings.TrimSpace(part))
			if err != nil || d < 0 {
				http.Error(w, "Invalid delay sequence", http.StatusBadRequest)
				return
			}
			seq = append(seq, d)
		}
	}

	s.mu.Lock()
	if hasDelay {
		s.delay = delay
	}
	s.delays = seq
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"delay":    delay.String(),
		"sequence": len(seq),
	})
}

// requestsHandler lists the record label request URIs received so far.
func (s *DemoServer) requestsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Requests())
}

// Requests returns a copy of the record label request URIs received so far.
func (s *DemoServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.requests...)
}

// resetHandler restores the fixture list, status and delays.
func (s *DemoServer) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	s.labels = DefaultRecordLabels()
	s.status = 0
	s.delay = s.cfg.Delay
	s.delays = nil
	s.requests = nil
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Demo state reset",
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// controlPanelHandler serves the control panel for failure and delay injection.
func (s *DemoServer) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := struct {
		Status   int
		Delay    string
		Pending  int
		Requests int
		Labels   int
	}{
		Status:   s.status,
		Delay:    s.delay.String(),
		Pending:  len(s.delays),
		Requests: len(s.requests),
		Labels:   len(s.labels),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html")
	_ = controlPanel.Execute(w, data)
}

var controlPanel = template.Must(template.New("control").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Record Label Demo Backend</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px; }
        .card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        button { padding: 8px 16px; border: none; border-radius: 4px; cursor: pointer; background: #007bff; color: white; }
        .reset-btn { background: #dc3545; }
    </style>
</head>
<body>
    <h1>Record Label Demo Backend</h1>
    <div class="card">
        <p>Labels: {{.Labels}} &middot; Requests served: {{.Requests}}</p>
        <p>Forced status: {{if .Status}}{{.Status}}{{else}}none{{end}} &middot; Delay: {{.Delay}} &middot; Queued delays: {{.Pending}}</p>
    </div>
    <div class="card">
        <form method="post" action="/demo/set-status">
            <label>Status code <input name="code" value="500"></label>
            <button type="submit">Force status</button>
        </form>
    </div>
    <div class="card">
        <form method="post" action="/demo/set-delay">
            <label>Delay <input name="delay" value="0s"></label>
            <label>Sequence <input name="sequence" placeholder="2s,0s"></label>
            <button type="submit">Set delay</button>
        </form>
    </div>
    <div class="card">
        <form method="post" action="/demo/reset">
            <button class="reset-btn" type="submit">Reset</button>
        </form>
    </div>
</body>
</html>`))
