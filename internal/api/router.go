package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleet-route-solver/internal/api/handlers"
	"fleet-route-solver/internal/platform/metrics"
	"fleet-route-solver/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.CustomerRepository, provider ports.TravelMatrixProvider) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	customerHandler := &handlers.CustomerHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:     repo,
		Provider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/customers", customerHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
