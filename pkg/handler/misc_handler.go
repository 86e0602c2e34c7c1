// Handler for miscellaneous endpoints such as health check

package handler

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Database  bool      `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthCheck reports whether the cluster database answers.
func (dbctx *DBContext) HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Database:  dbctx.Cluster_DB.Ping(r.Context()) == nil,
		Timestamp: time.Now(),
	}
	if !response.Database {
		response.Health = "degraded"
	}

	writeJSON(w, http.StatusOK, response)
}
