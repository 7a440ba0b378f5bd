package server

import (
	"net/http"
	"runtime"
	"time"
)

type healthResponse struct {
	Status     string   `json:"status"`
	Version    string   `json:"version"`
	GoVersion  string   `json:"go_version"`
	Uptime     string   `json:"uptime"`
	Store      string   `json:"store"`
	Algorithms []string `json:"algorithms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, healthResponse{
		Status:     "healthy",
		Version:    "0.1.0",
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Store:      "sqlite",
		Algorithms: s.registry.Names(),
	})
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, map[string]any{
		"name":    "taskplan",
		"version": "0.1.0",
		"endpoints": map[string]string{
			"health":     "/api/v1/health",
			"algorithms": "/api/v1/algorithms",
			"runs":       "/api/v1/runs",
			"compare":    "/api/v1/compare",
		},
	})
}

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, map[string]any{"algorithms": s.registry.Names()})
}
