// Package models defines the data structures shared across the service.
package models

import "errors"

// Default request parameter names used by the common "maccms" style
// resource-site APIs when a site does not override them.
const (
	DefaultSearchParam = "wd"
	DefaultPageParam   = "pg"
	DefaultActionParam = "ac"

	DefaultTimeoutSeconds = 15
)

// SiteConfig is one resource site's configuration. The JSON tags are the
// persisted file format; site_id is unique and immutable once loaded.
type SiteConfig struct {
	SiteID      string `json:"site_id"`
	Name        string `json:"name"`
	BaseURL     string `json:"base_url"`
	Enabled     bool   `json:"enabled"`
	Timeout     int    `json:"timeout"` // seconds
	SearchParam string `json:"search_endpoint"`
	PageParam   string `json:"page_param"`
	ActionParam string `json:"action_param"`
}

// ErrInvalidSiteConfig is returned when a loaded site entry misses
// required fields.
var ErrInvalidSiteConfig = errors.New("site config requires site_id, name and base_url")

// Validate checks the required fields.
func (s *SiteConfig) Validate() error {
	if s.SiteID == "" || s.Name == "" || s.BaseURL == "" {
		return ErrInvalidSiteConfig
	}
	return nil
}

// ApplyDefaults fills unset optional fields with the conventional values.
func (s *SiteConfig) ApplyDefaults() {
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeoutSeconds
	}
	if s.SearchParam == "" {
		s.SearchParam = DefaultSearchParam
	}
	if s.PageParam == "" {
		s.PageParam = DefaultPageParam
	}
	if s.ActionParam == "" {
		s.ActionParam = DefaultActionParam
	}
}

// SiteSummary is the listing view of a site, disabled ones included.
type SiteSummary struct {
	SiteID  string `json:"site_id"`
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	Enabled bool   `json:"enabled"`
	Timeout int    `json:"timeout"`
}

// SiteStats holds registry-level counters.
type SiteStats struct {
	TotalSites   int `json:"total_sites"`
	EnabledSites int `json:"enabled_sites"`
}
