// Package httpadapter exposes engine results over HTTP. It is an inbound
// adapter: parameter parsing and JSON encoding only, all computation stays in
// the report service.
package httpadapter

import (
	"log/slog"
	"net/http"

	"adpace/internal/report"

	"github.com/go-chi/chi/v5"
)

// Handler holds the report service and registers the read-only endpoints on
// a chi.Router.
type Handler struct {
	svc    *report.Service
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc *report.Service, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rollup", h.handleRollup)
		r.Get("/pacing", h.handlePacing)
		r.Get("/allocations", h.handleAllocations)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
