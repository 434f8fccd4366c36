// Package repository persists the site-configuration set. Sites live in a
// single JSON file that is read at startup and rewritten whole on change.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/models"
)

// siteFile is the on-disk document shape: {"sites": [...]}.
type siteFile struct {
	Sites []models.SiteConfig `json:"sites"`
}

// SiteStore loads and saves the site-configuration file.
type SiteStore struct {
	path   string
	logger logger.Logger
}

func NewSiteStore(path string, log logger.Logger) *SiteStore {
	return &SiteStore{
		path:   path,
		logger: log,
	}
}

// Path returns the backing file path.
func (s *SiteStore) Path() string {
	return s.path
}

// Load reads all site configs in file order. Entries without a site_id are
// skipped with a warning; missing optional fields get defaults. A missing
// file is not an error and yields an empty set.
func (s *SiteStore) Load() ([]models.SiteConfig, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Warn("Sites file does not exist, starting empty",
			logger.String("path", s.path),
		)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var doc siteFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sites file: %w", err)
	}

	sites := make([]models.SiteConfig, 0, len(doc.Sites))
	for i := range doc.Sites {
		site := doc.Sites[i]
		if validateErr := site.Validate(); validateErr != nil {
			s.logger.Warn("Skipping invalid site entry",
				logger.Int("index", i),
				logger.String("site_id", site.SiteID),
				logger.Error(validateErr),
			)
			continue
		}
		site.ApplyDefaults()
		sites = append(sites, site)
	}

	s.logger.Info("Loaded site configurations",
		logger.String("path", s.path),
		logger.Int("count", len(sites)),
	)
	return sites, nil
}

// Save rewrites the whole file. The write goes through a temp file in the
// same directory so a crash mid-write never truncates the live config.
func (s *SiteStore) Save(sites []models.SiteConfig) error {
	data, err := json.MarshalIndent(siteFile{Sites: sites}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sites: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".sites-*.json")
	if err != nil {
		return fmt.Errorf("create temp sites file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write sites file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close sites file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace sites file: %w", err)
	}

	return nil
}
