// Package metadata fetches a resource site's homepage and suggests values
// for prefilling a new site configuration.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/govidsearch/internal/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// vodAPIPath is the path convention most maccms-style resource sites expose
// their JSON API under.
const vodAPIPath = "/api.php/provide/vod/"

// MetadataResponse represents suggested values from URL extraction.
type MetadataResponse struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	SuggestedAPI string `json:"suggested_api,omitempty"`
	IsAPIURL     bool   `json:"is_api_url"`
}

// Extractor handles metadata extraction from URLs.
type Extractor struct {
	logger logger.Logger
	client *http.Client
}

// NewExtractor creates a new metadata extractor.
func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{
		logger: log,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Extract fetches a URL and extracts metadata for form prefilling.
func (e *Extractor) Extract(ctx context.Context, sourceURL string) (*MetadataResponse, error) {
	e.logger.Info("Extracting metadata from URL",
		logger.String("url", sourceURL),
	)

	parsedURL, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	metadata := &MetadataResponse{URL: sourceURL}
	if strings.Contains(parsedURL.Path, "api.php/provide/vod") {
		metadata.IsAPIURL = true
	} else {
		metadata.SuggestedAPI = strings.TrimSuffix(sourceURL, "/") + vodAPIPath
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent to avoid bot blocking
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; GoVidSearch/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	metadata.Name = e.extractName(doc, parsedURL)

	e.logger.Info("Metadata extraction complete",
		logger.String("url", sourceURL),
		logger.String("name", metadata.Name),
	)

	return metadata, nil
}

// extractName extracts a suggested site name from the page.
func (e *Extractor) extractName(doc *goquery.Document, parsedURL *url.URL) string {
	// Try OG site name first: resource sites usually put their brand there
	if ogSite, exists := doc.Find("meta[property='og:site_name']").Attr("content"); exists && ogSite != "" {
		return strings.TrimSpace(ogSite)
	}

	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && ogTitle != "" {
		return strings.TrimSpace(ogTitle)
	}

	if title := doc.Find("title").First().Text(); strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	// Fall back to domain name
	return parsedURL.Host
}
