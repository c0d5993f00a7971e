package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/labelboard/internal/logging"
	"github.com/raysh454/labelboard/internal/tracker"
)

const errHistoryDisabled = "render history is disabled"

// handleListHistory godoc
// @Summary List journaled renders
// @Tags history
// @Produce json
// @Param session query string false "Websocket session id, or fragment"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} HistoryResponse
// @Failure 503 {object} ErrorResponse
// @Router /main_app/history [get]
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	tr := s.app.Components.Tracker
	if tr == nil {
		writeError(w, http.StatusServiceUnavailable, errHistoryDisabled)
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	snaps, err := tr.List(r.Context(), r.URL.Query().Get("session"), limit)
	if err != nil {
		s.logger.Error("listing history", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Snapshots: snaps})
}

// handleGetHistory godoc
// @Summary Get one journaled render with its diff
// @Tags history
// @Produce json
// @Param id path string true "Snapshot id"
// @Success 200 {object} tracker.Snapshot
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /main_app/history/{id} [get]
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	tr := s.app.Components.Tracker
	if tr == nil {
		writeError(w, http.StatusServiceUnavailable, errHistoryDisabled)
		return
	}

	snap, err := tr.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, tracker.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("getting history entry", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
