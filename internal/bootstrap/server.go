package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/govidsearch/internal/api"
	"github.com/jonesrussell/govidsearch/internal/config"
	"github.com/jonesrussell/govidsearch/internal/handlers"
	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/metadata"
	"github.com/jonesrussell/govidsearch/internal/registry"
	"github.com/jonesrussell/govidsearch/internal/search"
	"github.com/jonesrussell/govidsearch/internal/sitetest"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server with lifecycle management.
type Server struct {
	server *http.Server
	logger logger.Logger
}

// SetupHTTPServer wires the services and handlers into a runnable server.
func SetupHTTPServer(cfg *config.Config, reg *registry.Registry, log logger.Logger) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	searchService := search.NewService(reg, cfg.Headers, log)
	validator := sitetest.NewValidator(reg, cfg.Headers, cfg.ConnectionTest, log)
	extractor := metadata.NewExtractor(log)

	videoHandler := handlers.NewVideoHandler(searchService, log)
	siteHandler := handlers.NewSiteHandler(reg, validator, extractor, log)

	router := api.NewRouter(cfg, videoHandler, siteHandler, log)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: log,
	}
}

// Run starts the server and blocks until a shutdown signal, a server error,
// or context cancellation, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("Shutdown signal received",
			logger.String("signal", sig.String()),
		)
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	// Fresh context for shutdown since the original may be cancelled
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}
