// Package search orchestrates a single-site video search: site validation,
// the outbound request, normalization and pagination.
package search

import (
	"context"
	"net/http"

	"github.com/jonesrussell/govidsearch/internal/config"
	"github.com/jonesrussell/govidsearch/internal/httpclient"
	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/models"
	"github.com/jonesrussell/govidsearch/internal/normalize"
)

// detailPageSize widens the re-search a detail lookup performs so the wanted
// id is likely inside the first page.
const detailPageSize = 50

// SiteValidator resolves a site id to a usable config.
type SiteValidator interface {
	Validate(siteID string) (models.SiteConfig, error)
}

// Service runs searches against configured resource sites. All failure modes
// are reported inside the result; Search never returns an error.
type Service struct {
	registry SiteValidator
	client   *http.Client
	headers  map[string]string
	log      logger.Logger
}

func NewService(registry SiteValidator, headers config.HeaderProfiles, log logger.Logger) *Service {
	return &Service{
		registry: registry,
		client:   httpclient.NewTransportClient(),
		headers:  headers.Search,
		log:      log,
	}
}

// Search queries one site and normalizes its response. A failed result still
// carries the requested paging so clients render a consistent shape.
func (s *Service) Search(ctx context.Context, query string, page, pageSize int, siteID string) *SearchResult {
	site, err := s.registry.Validate(siteID)
	if err != nil {
		return s.failure(siteID, "", page, pageSize, err.Error(), 0)
	}

	executor := httpclient.NewExecutorWithClient(s.client, httpclient.NewRequestLog(s.log, site.Name))
	params := httpclient.BuildParams(map[string]any{
		site.ActionParam: "detail",
		site.SearchParam: query,
		site.PageParam:   page,
	})

	outcome := executor.Execute(ctx, site.BaseURL, params, s.headers, site.Timeout)
	if !outcome.Success {
		return s.failure(site.SiteID, site.Name, page, pageSize, outcome.Error, outcome.ElapsedMs)
	}

	payload, ok := outcome.Payload.(map[string]any)
	if !ok {
		return s.failure(site.SiteID, site.Name, page, pageSize, "unexpected data shape", outcome.ElapsedMs)
	}

	total := normalize.SafeGetInt(payload, "total", 0)
	items := normalize.Extract(payload)

	videos := make([]models.Video, 0, len(items))
	filtered := 0
	for _, item := range items {
		if normalize.ShouldDrop(item) {
			filtered++
			continue
		}
		video := normalize.MapFields(site.SiteID, site.Name, item)
		if video.Displayable() {
			videos = append(videos, video)
		}
	}

	s.log.Info("Search completed",
		logger.String("site_id", site.SiteID),
		logger.String("query", query),
		logger.Int("original_count", len(items)),
		logger.Int("display_count", len(videos)),
	)

	return &SearchResult{
		Success:       true,
		SiteID:        site.SiteID,
		SiteName:      site.Name,
		Videos:        videos,
		TotalCount:    total,
		OriginalCount: len(items),
		FilteredCount: filtered,
		DisplayCount:  len(videos),
		ElapsedMs:     outcome.ElapsedMs,
		Pagination:    CalculatePagination(page, pageSize, total),
	}
}

// GetDetail re-runs the search with a wide page and scans for the requested
// video id. Sites have no dedicated detail endpoint worth relying on.
func (s *Service) GetDetail(ctx context.Context, keyword string, page int, siteID, videoID string) *DetailResult {
	result := s.Search(ctx, keyword, page, detailPageSize, siteID)
	if !result.Success {
		return &DetailResult{
			Error:    result.Error,
			SiteID:   result.SiteID,
			SiteName: result.SiteName,
		}
	}

	for i := range result.Videos {
		if result.Videos[i].ID == videoID {
			return &DetailResult{
				Success:  true,
				Video:    &result.Videos[i],
				SiteID:   result.SiteID,
				SiteName: result.SiteName,
			}
		}
	}

	return &DetailResult{
		Error:    "video not found",
		SiteID:   result.SiteID,
		SiteName: result.SiteName,
	}
}

func (s *Service) failure(siteID, siteName string, page, pageSize int, msg string, elapsedMs int64) *SearchResult {
	return &SearchResult{
		SiteID:     siteID,
		SiteName:   siteName,
		Error:      msg,
		Videos:     []models.Video{},
		ElapsedMs:  elapsedMs,
		Pagination: CalculatePagination(page, pageSize, 0),
	}
}
