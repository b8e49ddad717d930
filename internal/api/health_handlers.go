package api

import (
	"net/http"
	"os"

	"github.com/vytor/hippomemory/internal/logger"
)

// handleHealth is a liveness probe and always returns 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 once the web root is a readable directory.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	info, err := os.Stat(s.WebRoot)
	if err != nil || !info.IsDir() {
		log.Warn("readiness check failed - web root %s: %v", s.WebRoot, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Web root unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ready"))
}
