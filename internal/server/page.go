package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/raysh454/labelboard/internal/logging"
)

//go:embed web
var webFS embed.FS

type pageData struct {
	Title      string
	SocketPath string
	ScriptPath string
}

func (s *Server) loadPage() error {
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return fmt.Errorf("parse page template: %w", err)
	}
	s.page = tmpl
	return nil
}

// handleIndex serves the record label page. The element ids are the contract
// main_app.js relies on.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := s.page.Execute(&buf, pageData{
		Title:      "Record Labels",
		SocketPath: SocketPath,
		ScriptPath: StaticPath + "main_app.js",
	})
	if err != nil {
		s.logger.Error("rendering page", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) staticHandler() http.Handler {
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		// web/static is embedded at build time.
		panic(err)
	}
	return http.StripPrefix(StaticPath, http.FileServer(http.FS(static)))
}
