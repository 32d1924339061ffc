package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bei612/meraki-workflows/internal/adapters/web/middleware"
)

// SetupRoutes builds the HTTP routing table.
func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	auth := middleware.TokenAuth(s.tokenHash)

	// Report generation fans out many upstream calls per request; keep a
	// tighter lid on it than on archive reads.
	generateLimiter := middleware.NewRateLimiter(30, 1*time.Minute)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth)
	api.Handle("/reports/{type}",
		middleware.RateLimit(generateLimiter)(http.HandlerFunc(s.Reports.HandleGenerate))).
		Methods(http.MethodPost)
	api.HandleFunc("/runs", s.Reports.HandleListRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.Reports.HandleGetRun).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}/pdf", s.Reports.HandleInspectionPDF).Methods(http.MethodGet)

	// WebSocket run feed (protected)
	r.Handle("/ws", auth(http.HandlerFunc(s.Hub.HandleWebSocket)))

	// Metrics endpoint (protected - requires authentication)
	r.Handle("/metrics", auth(promhttp.Handler()))

	// Liveness probe, deliberately unauthenticated
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
