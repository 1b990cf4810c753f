// Package server wraps the gin engine in an *http.Server so it can be stopped gracefully.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// Server owns the HTTP listener.
type Server struct {
	logger          *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewServer wraps engine. Slow clients cannot hold a connection open past the read/write timeouts.
func NewServer(logger *slog.Logger, port string, engine *gin.Engine, shutdownTimeout time.Duration) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains in-flight requests
// for at most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", slog.Duration("timeout", s.shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
