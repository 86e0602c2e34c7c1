package handler

import "net/http"

func NewRouter(dbctx *DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// API routes
	mux.HandleFunc("GET /api/v1/health", dbctx.HealthCheck)
	mux.HandleFunc("GET /api/v1/runs", dbctx.RunsHandler)
	mux.HandleFunc("GET /api/v1/runs/{run_id}/species", dbctx.SpeciesHandler)
	mux.HandleFunc("GET /api/v1/runs/{run_id}/species/{species}/clusters", dbctx.ClustersHandler)

	return mux
}
