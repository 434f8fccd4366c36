// Package bootstrap handles application initialization and lifecycle
// management for the video search service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/govidsearch/internal/logger"
)

const version = "dev"

// Start initializes and runs the application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 3: Load the site registry and start the file watcher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg, store, err := SetupRegistry(cfg, publisher, log)
	if err != nil {
		return fmt.Errorf("failed to load site registry: %w", err)
	}
	if cfg.Sites.Watch {
		go func() {
			if watchErr := store.Watch(ctx, func() {
				if reloadErr := reg.Reload(); reloadErr != nil {
					log.Error("Failed to reload sites", logger.Error(reloadErr))
				}
			}); watchErr != nil {
				log.Warn("Sites file watcher stopped", logger.Error(watchErr))
			}
		}()
	}

	// Phase 4: Setup and run HTTP server
	server := SetupHTTPServer(cfg, reg, log)

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	if runErr := server.Run(ctx); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
