package search

import "github.com/jonesrussell/govidsearch/internal/models"

// SearchResult is one single-site search response. original_count is the
// raw item count before filtering, filtered_count the blacklisted items,
// display_count the records that survived id/title validation.
type SearchResult struct {
	Success       bool           `json:"success"`
	Error         string         `json:"error,omitempty"`
	SiteID        string         `json:"site_id"`
	SiteName      string         `json:"site_name"`
	Videos        []models.Video `json:"videos"`
	TotalCount    int            `json:"total_count"`
	OriginalCount int            `json:"original_count"`
	FilteredCount int            `json:"filtered_count"`
	DisplayCount  int            `json:"display_count"`
	ElapsedMs     int64          `json:"elapsed_ms"`
	Pagination    Pagination     `json:"pagination"`
}

// DetailResult is one video detail lookup response.
type DetailResult struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Video    *models.Video `json:"video"`
	SiteID   string        `json:"site_id,omitempty"`
	SiteName string        `json:"site_name,omitempty"`
}
