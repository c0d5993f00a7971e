package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/raysh454/labelboard/docs/swagger" // registers the swag document
	"github.com/raysh454/labelboard/internal/app"
	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/metrics"
)

const (
	PagePath    = "/main_app/"
	StaticPath  = "/main_app/static/"
	SocketPath  = "/main_app/ws/record_labels"
	TablePath   = "/main_app/record_labels/table"
	HistoryPath = "/main_app/history"

	requestIDHeader = "X-Request-ID"
)

type ctxKey int

const requestIDKey ctxKey = iota

// Server is the HTTP + WebSocket page host for the record label table.
type Server struct {
	cfg      Config
	app      *app.Application
	router   chi.Router
	upgrader websocket.Upgrader
	page     *template.Template
	logger   logging.Logger
}

// NewServer wires the routes over cfg.App.
func NewServer(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("server: nil application")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = cfg.App.Config.ListenAddr
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:    cfg,
		app:    cfg.App,
		router: r,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict to the page host's own origin once it sits behind a fixed hostname
				return true
			},
		},
	}

	if err := s.loadPage(); err != nil {
		return nil, err
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.Recoverer)
	r.Use(s.requestIDMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.accessLogMiddleware)

	r.Options(TablePath, s.optionsHandler("GET"))
	r.Options(HistoryPath, s.optionsHandler("GET"))
	r.Options(HistoryPath+"/{id}", s.optionsHandler("GET"))

	// Page and browser glue
	r.Get("/", http.RedirectHandler(PagePath, http.StatusFound).ServeHTTP)
	r.Get(PagePath, s.handleIndex)
	r.Handle(StaticPath+"*", s.staticHandler())

	// Renders
	r.Get(SocketPath, s.handleRecordLabelsWS)
	r.Get(TablePath, s.handleTable)

	// Render journal
	r.Get(HistoryPath, s.handleListHistory)
	r.Get(HistoryPath+"/{id}", s.handleGetHistory)

	// Operations
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// requestIDMiddleware reuses an incoming X-Request-ID or assigns a new one.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()

		fields := []logging.Field{
			{Key: "request_id", Value: RequestID(r.Context())},
			{Key: "method", Value: r.Method},
			{Key: "path", Value: r.URL.Path},
			{Key: "status", Value: rec.status},
			{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
		}
		if q := r.URL.RawQuery; q != "" {
			fields = append(fields, logging.Field{Key: "query", Value: q})
		}
		s.logger.Info("http_request", fields...)
	})
}

// statusRecorder captures the response code. It keeps http.Hijacker so the
// websocket upgrade still works behind it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // websocket connections are long-lived
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// handleHealth godoc
// @Summary Liveness probe
// @Tags operations
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Variant: string(s.app.Config.Backend.Variant),
		History: s.app.HistoryEnabled(),
	})
}
