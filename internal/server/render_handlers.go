package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/metrics"
)

const (
	targetID         = "recordLabelData"
	fragmentSession  = "fragment"
	wsWriteTimeout   = 10 * time.Second
	maxMessageLength = 4096
)

func inputsFromQuery(r *http.Request) labels.Inputs {
	q := r.URL.Query()
	return labels.Inputs{
		SearchName: q.Get("searchName"),
		Filter:     q.Get("filter"),
		OrderBy:    q.Get("orderBy"),
	}
}

// handleTable godoc
// @Summary Render the record label table once
// @Description Fetches the record label list and returns the rendered inner HTML of the target container.
// @Tags renders
// @Produce html
// @Param searchName query string false "Name search"
// @Param filter query string false "Free-text filter"
// @Param orderBy query string false "Ordering field"
// @Success 200 {string} string "HTML fragment"
// @Failure 502 {object} ErrorResponse
// @Router /main_app/record_labels/table [get]
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	target := labels.NewNodeTarget(targetID)
	renderer, err := s.app.NewRenderer(target, s.app.Journal(fragmentSession))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := renderer.Render(r.Context(), inputsFromQuery(r))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Record-Count", strconv.Itoa(res.Records))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(target.HTML()))
}

// handleRecordLabelsWS godoc
// @Summary Record label click channel
// @Description Each inbound RenderRequest message is one click. Applied renders are pushed as RenderEvent messages and failures as ErrorResponse messages.
// @Tags renders
// @Success 101 {object} labels.RenderEvent
// @Router /main_app/ws/record_labels [get]
func (s *Server) handleRecordLabelsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageLength)

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	session := uuid.New().String()
	log := s.logger.With(logging.Field{Key: "session", Value: session})

	var writeMu sync.Mutex
	send := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(v)
	}

	journal := s.app.Journal(session)
	renderer, err := s.app.NewRenderer(labels.NewNodeTarget(targetID), func(ev labels.RenderEvent) {
		if journal != nil {
			journal(ev)
		}
		if err := send(ev); err != nil {
			log.Debug("pushing render event", logging.Field{Key: "error", Value: err.Error()})
		}
	})
	if err != nil {
		_ = send(ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	log.Info("record label socket opened")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("reading websocket", logging.Field{Key: "error", Value: err.Error()})
			}
			log.Info("record label socket closed")
			return
		}

		var req RenderRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			_ = send(ErrorResponse{Error: "invalid message: " + err.Error()})
			continue
		}

		// Clicks are not serialised; overlapping renders are resolved by
		// the renderer's generation check.
		wg.Add(1)
		go func(in labels.Inputs) {
			defer wg.Done()
			_, err := renderer.Render(ctx, in)
			if err == nil || errors.Is(err, labels.ErrSuperseded) || ctx.Err() != nil {
				return
			}
			if err := send(ErrorResponse{Error: err.Error()}); err != nil {
				log.Debug("pushing render error", logging.Field{Key: "error", Value: err.Error()})
			}
		}(labels.Inputs{SearchName: req.SearchName, Filter: req.Filter, OrderBy: req.OrderBy})
	}
}
