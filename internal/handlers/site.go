package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/govidsearch/internal/importer"
	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/metadata"
	"github.com/jonesrussell/govidsearch/internal/models"
	"github.com/jonesrussell/govidsearch/internal/sitetest"
)

// SiteManager is the registry surface the site endpoints need.
type SiteManager interface {
	List() []models.SiteSummary
	Stats() models.SiteStats
	Get(siteID string) (models.SiteConfig, bool)
	Toggle(siteID string) (bool, error)
	Import(sites []models.SiteConfig) (added, updated int, err error)
}

// ConnectionTester probes a site's API health.
type ConnectionTester interface {
	TestConnection(ctx context.Context, siteID string) (sitetest.Result, error)
}

// MetadataExtractor suggests config values from a site's homepage.
type MetadataExtractor interface {
	Extract(ctx context.Context, sourceURL string) (*metadata.MetadataResponse, error)
}

type SiteHandler struct {
	sites     SiteManager
	tester    ConnectionTester
	extractor MetadataExtractor
	logger    logger.Logger
}

func NewSiteHandler(sites SiteManager, tester ConnectionTester, extractor MetadataExtractor, log logger.Logger) *SiteHandler {
	return &SiteHandler{
		sites:     sites,
		tester:    tester,
		extractor: extractor,
		logger:    log,
	}
}

// List handles GET /sites.
func (h *SiteHandler) List(c *gin.Context) {
	successResponse(c, http.StatusOK, "sites retrieved", gin.H{
		"sites": h.sites.List(),
		"stats": h.sites.Stats(),
	})
}

// Get handles GET /sites/:id.
func (h *SiteHandler) Get(c *gin.Context) {
	id := c.Param("id")

	site, ok := h.sites.Get(id)
	if !ok {
		h.logger.Debug("Site not found",
			logger.String("site_id", id),
		)
		errorResponse(c, http.StatusNotFound, "site not found")
		return
	}

	successResponse(c, http.StatusOK, "site retrieved", site)
}

// Toggle handles POST /sites/:id/toggle.
func (h *SiteHandler) Toggle(c *gin.Context) {
	id := c.Param("id")

	if _, ok := h.sites.Get(id); !ok {
		errorResponse(c, http.StatusNotFound, "site not found")
		return
	}

	enabled, err := h.sites.Toggle(id)
	if err != nil {
		h.logger.Error("Failed to toggle site",
			logger.String("site_id", id),
			logger.Error(err),
		)
		errorResponse(c, http.StatusInternalServerError, "failed to toggle site")
		return
	}

	message := "site disabled"
	if enabled {
		message = "site enabled"
	}
	successResponse(c, http.StatusOK, message, gin.H{
		"site_id": id,
		"enabled": enabled,
	})
}

// Test handles POST /sites/:id/test.
func (h *SiteHandler) Test(c *gin.Context) {
	id := c.Param("id")

	result, err := h.tester.TestConnection(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, http.StatusNotFound, "site not found")
		return
	}

	successResponse(c, http.StatusOK, "connection test completed", result)
}

// Metadata handles GET /sites/metadata?url= for config form prefilling.
func (h *SiteHandler) Metadata(c *gin.Context) {
	sourceURL := strings.TrimSpace(c.Query("url"))
	if sourceURL == "" {
		validationErrorResponse(c, map[string]string{"url": "url is required"})
		return
	}

	resp, err := h.extractor.Extract(c.Request.Context(), sourceURL)
	if err != nil {
		h.logger.Warn("Metadata extraction failed",
			logger.String("url", sourceURL),
			logger.Error(err),
		)
		errorResponse(c, http.StatusBadGateway, "failed to extract metadata: "+err.Error())
		return
	}

	successResponse(c, http.StatusOK, "metadata extracted", resp)
}

// Import handles POST /sites/import with a multipart "file" field holding
// an Excel spreadsheet of site configurations.
func (h *SiteHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		validationErrorResponse(c, map[string]string{"file": "an Excel file upload is required"})
		return
	}

	opened, err := file.Open()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer func() { _ = opened.Close() }()

	rows, rowErrors := importer.ParseExcelFile(opened)

	sites := make([]models.SiteConfig, 0, len(rows))
	for _, row := range rows {
		sites = append(sites, importer.ToSiteConfig(row))
	}

	added, updated, err := h.sites.Import(sites)
	if err != nil {
		h.logger.Error("Failed to import sites",
			logger.Error(err),
		)
		errorResponse(c, http.StatusInternalServerError, "failed to import sites")
		return
	}

	successResponse(c, http.StatusOK, "import completed", gin.H{
		"added":   added,
		"updated": updated,
		"errors":  rowErrors,
	})
}
