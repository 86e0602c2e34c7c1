package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yumyai/exoclust/logger"
	ggdb "github.com/yumyai/exoclust/pkg/db"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type SpeciesResponse struct {
	RunID   string   `json:"run_id"`
	Species []string `json:"species"`
}

type ClustersResponse struct {
	RunID    string                `json:"run_id"`
	Species  string                `json:"species"`
	Clusters []*ggdb.StoredCluster `json:"clusters"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encode response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ggdb.ErrRunNotFound) {
		status = http.StatusNotFound
	} else {
		logger.Error("Query failed", zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Status: "error", Error: err.Error()})
}

// List all stored runs
func (dbctx *DBContext) RunsHandler(w http.ResponseWriter, r *http.Request) {

	runs, err := dbctx.Cluster_DB.Runs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*ggdb.Run{}
	}

	writeJSON(w, http.StatusOK, runs)
}

func (dbctx *DBContext) SpeciesHandler(w http.ResponseWriter, r *http.Request) {

	run_id := r.PathValue("run_id")

	species, err := dbctx.Cluster_DB.Species(r.Context(), run_id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SpeciesResponse{RunID: run_id, Species: species})
}

func (dbctx *DBContext) ClustersHandler(w http.ResponseWriter, r *http.Request) {

	run_id := r.PathValue("run_id")
	species := r.PathValue("species")

	logger.Debug("Clusters for", zap.String("run_id", run_id), zap.String("species", species))

	clusters, err := dbctx.Cluster_DB.Clusters(r.Context(), run_id, species)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ClustersResponse{RunID: run_id, Species: species, Clusters: clusters})
}
