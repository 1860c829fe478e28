package endpoints

import (
	"net/http"
	"os"

	"github.com/personahq/persona/pkg/server"
)

// StatusResponse represents the response from the / endpoint
type StatusResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse represents the response from the /health endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the status and health endpoints
func RegisterStatusEndpoints(srv *server.Server) {
	healthStore := srv.HealthStore

	// GET / - Status page (no auth required)
	srv.Router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("PERSONA_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{
			Service: "persona",
			Version: version,
			Status:  "ok",
		})
	}).Methods("GET")

	// GET /health - DB ping (no auth required)
	srv.Router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.Ping(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}).Methods("GET")
}
