package main

import (
	"context"
	"encoding/json"
	"net/http"
)

// corsMiddleware adds CORS headers to allow dashboard requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// StatusServer exposes the latest tick read-only over HTTP
type StatusServer struct {
	latest  *LatestReport
	metrics *PlannerCollector
	logger  Logger
}

func NewStatusServer(latest *LatestReport, metrics *PlannerCollector, logger Logger) *StatusServer {
	return &StatusServer{latest: latest, metrics: metrics, logger: logger}
}

// Handler routes /health, /report and /metrics
func (s *StatusServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.HandleFunc("/report", corsMiddleware(s.reportHandler))
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// GET /health
func (s *StatusServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, ok := s.latest.Get()
	status := "running"
	if !ok {
		status = "waiting for first tick"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"ticks":  report.Tick,
	})
}

// GET /report - most recent tick
func (s *StatusServer) reportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, ok := s.latest.Get()
	if !ok {
		http.Error(w, "No tick has completed yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Warn(r.Context(), "failed to encode report", Err(err))
	}
}

// Serve starts the server on addr in the background. The returned server is
// shut down by the caller.
func (s *StatusServer) Serve(addr string) *http.Server {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Warn(context.Background(), "status server exited", Err(err))
		}
	}()

	s.logger.Info(context.Background(), "serving status", String("addr", addr))
	return srv
}
