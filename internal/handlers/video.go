// Package handlers exposes the search and site-management API over gin.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/search"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// Searcher is the search surface the video endpoints need.
type Searcher interface {
	Search(ctx context.Context, query string, page, pageSize int, siteID string) *search.SearchResult
	GetDetail(ctx context.Context, keyword string, page int, siteID, videoID string) *search.DetailResult
}

type VideoHandler struct {
	search Searcher
	logger logger.Logger
}

func NewVideoHandler(searcher Searcher, log logger.Logger) *VideoHandler {
	return &VideoHandler{
		search: searcher,
		logger: log,
	}
}

// Search handles GET /videos/search. Site-side failures still answer 200
// with success=false inside the result; only bad input is a 400.
func (h *VideoHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("wd"))
	siteID := strings.TrimSpace(c.Query("site_id"))
	page := intQuery(c, "page", defaultPage)
	pageSize := intQuery(c, "pageSize", defaultPageSize)

	errors := map[string]string{}
	if query == "" {
		errors["wd"] = "search keyword is required"
	}
	if siteID == "" {
		errors["site_id"] = "site id is required"
	}
	if page < 1 {
		errors["page"] = "page must be at least 1"
	}
	if pageSize < 1 || pageSize > maxPageSize {
		errors["pageSize"] = "pageSize must be between 1 and 100"
	}
	if len(errors) > 0 {
		h.logger.Debug("Search rejected",
			logger.Int("error_count", len(errors)),
		)
		validationErrorResponse(c, errors)
		return
	}

	result := h.search.Search(c.Request.Context(), query, page, pageSize, siteID)
	successResponse(c, http.StatusOK, "search completed", result)
}

// Detail handles GET /videos/detail.
func (h *VideoHandler) Detail(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	siteID := strings.TrimSpace(c.Query("site_id"))
	videoID := strings.TrimSpace(c.Query("vod_id"))
	page := intQuery(c, "page", defaultPage)

	errors := map[string]string{}
	if keyword == "" {
		errors["keyword"] = "search keyword is required"
	}
	if siteID == "" {
		errors["site_id"] = "site id is required"
	}
	if videoID == "" {
		errors["vod_id"] = "video id is required"
	}
	if page < 1 {
		errors["page"] = "page must be at least 1"
	}
	if len(errors) > 0 {
		validationErrorResponse(c, errors)
		return
	}

	result := h.search.GetDetail(c.Request.Context(), keyword, page, siteID, videoID)
	if !result.Success {
		errorResponse(c, http.StatusNotFound, result.Error)
		return
	}

	successResponse(c, http.StatusOK, "video detail retrieved", result)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
