package server

import "github.com/raysh454/labelboard/internal/tracker"

// RenderRequest is one click sent over the record label websocket.
type RenderRequest struct {
	SearchName string `json:"searchName" example:"Atlantic"`
	Filter     string `json:"filter" example:"NY"`
	OrderBy    string `json:"orderBy" example:"name"`
}

// HistoryResponse lists journaled renders, newest first.
type HistoryResponse struct {
	Snapshots []tracker.Snapshot `json:"snapshots"`
}

// HealthResponse reports liveness and the active render settings.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Variant string `json:"variant" example:"query"`
	History bool   `json:"history" example:"false"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"network response was not ok: 500 Internal Server Error"`
}
