package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/govidsearch/internal/config"
	"github.com/jonesrussell/govidsearch/internal/events"
	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/registry"
	"github.com/jonesrussell/govidsearch/internal/repository"
)

// SetupRegistry loads the persisted site set into memory. The store is
// returned alongside so the caller can start the file watcher.
func SetupRegistry(cfg *config.Config, publisher *events.Publisher, log logger.Logger) (*registry.Registry, *repository.SiteStore, error) {
	store := repository.NewSiteStore(cfg.Sites.File, log)

	reg, err := registry.New(store, publisher, log)
	if err != nil {
		return nil, nil, fmt.Errorf("build registry: %w", err)
	}
	return reg, store, nil
}
