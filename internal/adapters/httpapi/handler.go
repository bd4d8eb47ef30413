package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/render"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// SnapshotSource takes a fresh snapshot for every call
type SnapshotSource interface {
	ReadSnapshot(ctx context.Context) domain.Snapshot
}

// Handler serves the dashboard and the metrics endpoint
type Handler struct {
	source SnapshotSource
}

// NewHandler creates a new HTTP handler
func NewHandler(source SnapshotSource) *Handler {
	return &Handler{source: source}
}

// NewRouter registers both routes, GET only, behind an access logger
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/metrics", h.Metrics).Methods(http.MethodGet)

	return handlers.CustomLoggingHandler(io.Discard, r, logRequest)
}

// Dashboard renders the HTML page from a fresh snapshot
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snapshot := h.source.ReadSnapshot(r.Context())
	write(w, contentTypeHTML, render.Dashboard(snapshot))
}

// Metrics renders the exposition text from a fresh snapshot
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	snapshot := h.source.ReadSnapshot(r.Context())
	write(w, contentTypeText, render.Metrics(snapshot))
}

func write(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		log.Debug().Err(err).Msg("client went away before response was written")
	}
}

// logRequest sends access log lines through zerolog instead of the Apache format writer
func logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	log.Info().
		Str("method", p.Request.Method).
		Str("path", p.URL.Path).
		Str("remote", p.Request.RemoteAddr).
		Int("status", p.StatusCode).
		Int("size", p.Size).
		Msg("http request")
}
