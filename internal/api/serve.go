package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/vytor/hippomemory/internal/logger"
)

const shutdownTimeout = 30 * time.Second

// ListenAndServe serves Routes on addr until ctx is cancelled, then drains
// open connections.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	log := logger.FromContext(ctx).WithPrefix("http")

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server error: %v", err)
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
		return err
	}
	return nil
}
