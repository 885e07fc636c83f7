package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telhawk-systems/event-relay/internal/middleware"
)

// NewRouter constructs a ServeMux with the collector routes registered.
func NewRouter(h *CollectorHandler) http.Handler {
	mux := http.NewServeMux()

	// Host-facing collector endpoint
	mux.HandleFunc("/collector/event", h.HandleEvent)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
