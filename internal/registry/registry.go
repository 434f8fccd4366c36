// Package registry owns the in-memory site-configuration set: lookup and
// validation before a search, enable/disable toggling, and summaries for
// the management API.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jonesrussell/govidsearch/internal/events"
	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/models"
)

var (
	// ErrEmptySiteID is returned when a blank site id is validated.
	ErrEmptySiteID = errors.New("site id must not be empty")
	// ErrSiteNotFound is returned for ids absent from the configured set.
	ErrSiteNotFound = errors.New("site not found")
	// ErrSiteDisabled is returned for known but disabled sites.
	ErrSiteDisabled = errors.New("site is disabled")
)

// Store persists the full site set. The registry does not own the format.
type Store interface {
	Load() ([]models.SiteConfig, error)
	Save(sites []models.SiteConfig) error
}

// Registry holds the configured sites. Reads take the shared lock; Toggle,
// Import and Reload take the exclusive lock and persist last-writer-wins.
type Registry struct {
	mu        sync.RWMutex
	sites     []models.SiteConfig // file order
	index     map[string]int      // site_id -> position in sites
	store     Store
	publisher *events.Publisher // nil when events are disabled
	logger    logger.Logger
}

// New builds a registry and loads the persisted set.
func New(store Store, publisher *events.Publisher, log logger.Logger) (*Registry, error) {
	r := &Registry{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload replaces the in-memory set from the store.
func (r *Registry) Reload() error {
	sites, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("load sites: %w", err)
	}

	index := make(map[string]int, len(sites))
	for i := range sites {
		index[sites[i].SiteID] = i
	}

	r.mu.Lock()
	r.sites = sites
	r.index = index
	r.mu.Unlock()
	return nil
}

// Validate checks that a site id is usable for a search: non-empty, known
// and enabled. On success the site's config is returned by value.
func (r *Registry) Validate(siteID string) (models.SiteConfig, error) {
	if siteID == "" {
		return models.SiteConfig{}, ErrEmptySiteID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[siteID]
	if !ok {
		return models.SiteConfig{}, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}

	site := r.sites[i]
	if !site.Enabled {
		return models.SiteConfig{}, fmt.Errorf("%w: %s", ErrSiteDisabled, site.Name)
	}
	return site, nil
}

// Get returns a site's config regardless of enabled state.
func (r *Registry) Get(siteID string) (models.SiteConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[siteID]
	if !ok {
		return models.SiteConfig{}, false
	}
	return r.sites[i], true
}

// Toggle flips a site's enabled flag, persists the full set and reports the
// new state. Unknown ids fail; disabled sites can of course be toggled.
func (r *Registry) Toggle(siteID string) (bool, error) {
	r.mu.Lock()

	i, ok := r.index[siteID]
	if !ok {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}

	r.sites[i].Enabled = !r.sites[i].Enabled
	site := r.sites[i]
	snapshot := make([]models.SiteConfig, len(r.sites))
	copy(snapshot, r.sites)
	r.mu.Unlock()

	if err := r.store.Save(snapshot); err != nil {
		return site.Enabled, fmt.Errorf("persist sites: %w", err)
	}

	r.logger.Info("Site toggled",
		logger.String("site_id", site.SiteID),
		logger.String("site_name", site.Name),
		logger.Bool("enabled", site.Enabled),
	)

	eventType := events.SiteDisabled
	if site.Enabled {
		eventType = events.SiteEnabled
	}
	r.publisher.PublishAsync(events.SiteEvent{
		EventType: eventType,
		SiteID:    site.SiteID,
		Payload:   events.TogglePayload{SiteName: site.Name, Enabled: site.Enabled},
	})

	return site.Enabled, nil
}

// List returns summaries for all sites, disabled ones included, in file
// order. Callers decide what to show.
func (r *Registry) List() []models.SiteSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.SiteSummary, 0, len(r.sites))
	for i := range r.sites {
		s := &r.sites[i]
		summaries = append(summaries, models.SiteSummary{
			SiteID:  s.SiteID,
			Name:    s.Name,
			BaseURL: s.BaseURL,
			Enabled: s.Enabled,
			Timeout: s.Timeout,
		})
	}
	return summaries
}

// Stats returns total and enabled site counts.
func (r *Registry) Stats() models.SiteStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled := 0
	for i := range r.sites {
		if r.sites[i].Enabled {
			enabled++
		}
	}
	return models.SiteStats{
		TotalSites:   len(r.sites),
		EnabledSites: enabled,
	}
}

// Import merges configs into the set: known site_ids are replaced, new ones
// appended, then the whole set is persisted once.
func (r *Registry) Import(incoming []models.SiteConfig) (added, updated int, err error) {
	r.mu.Lock()

	for _, site := range incoming {
		if validateErr := site.Validate(); validateErr != nil {
			continue
		}
		site.ApplyDefaults()

		if i, ok := r.index[site.SiteID]; ok {
			r.sites[i] = site
			updated++
		} else {
			r.index[site.SiteID] = len(r.sites)
			r.sites = append(r.sites, site)
			added++
		}
	}
	snapshot := make([]models.SiteConfig, len(r.sites))
	copy(snapshot, r.sites)
	r.mu.Unlock()

	if added == 0 && updated == 0 {
		return 0, 0, nil
	}

	if saveErr := r.store.Save(snapshot); saveErr != nil {
		return added, updated, fmt.Errorf("persist sites: %w", saveErr)
	}

	r.logger.Info("Sites imported",
		logger.Int("added", added),
		logger.Int("updated", updated),
	)
	r.publisher.PublishAsync(events.SiteEvent{
		EventType: events.SitesImported,
		Payload:   events.ImportPayload{Added: added, Updated: updated},
	})

	return added, updated, nil
}
