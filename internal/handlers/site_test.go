package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/govidsearch/internal/handlers"
	"github.com/jonesrussell/govidsearch/internal/metadata"
	"github.com/jonesrussell/govidsearch/internal/models"
	"github.com/jonesrussell/govidsearch/internal/sitetest"
	"github.com/jonesrussell/govidsearch/internal/testhelpers"
)

type fakeSiteManager struct {
	sites      map[string]models.SiteConfig
	toggleErr  error
	importErr  error
	gotImport  []models.SiteConfig
	lastToggle string
}

func (f *fakeSiteManager) List() []models.SiteSummary {
	summaries := make([]models.SiteSummary, 0, len(f.sites))
	for _, s := range f.sites {
		summaries = append(summaries, models.SiteSummary{SiteID: s.SiteID, Name: s.Name, Enabled: s.Enabled})
	}
	return summaries
}

func (f *fakeSiteManager) Stats() models.SiteStats {
	return models.SiteStats{TotalSites: len(f.sites)}
}

func (f *fakeSiteManager) Get(siteID string) (models.SiteConfig, bool) {
	s, ok := f.sites[siteID]
	return s, ok
}

func (f *fakeSiteManager) Toggle(siteID string) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.lastToggle = siteID
	s := f.sites[siteID]
	s.Enabled = !s.Enabled
	f.sites[siteID] = s
	return s.Enabled, nil
}

func (f *fakeSiteManager) Import(sites []models.SiteConfig) (int, int, error) {
	if f.importErr != nil {
		return 0, 0, f.importErr
	}
	f.gotImport = sites
	return len(sites), 0, nil
}

type fakeTester struct {
	result sitetest.Result
	err    error
}

func (f *fakeTester) TestConnection(context.Context, string) (sitetest.Result, error) {
	return f.result, f.err
}

type fakeExtractor struct {
	resp *metadata.MetadataResponse
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string) (*metadata.MetadataResponse, error) {
	return f.resp, f.err
}

func siteRouter(sites handlers.SiteManager, tester handlers.ConnectionTester, extractor handlers.MetadataExtractor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewSiteHandler(sites, tester, extractor, testhelpers.NewTestLogger())
	router.GET("/sites", h.List)
	router.GET("/sites/metadata", h.Metadata)
	router.POST("/sites/import", h.Import)
	router.GET("/sites/:id", h.Get)
	router.POST("/sites/:id/toggle", h.Toggle)
	router.POST("/sites/:id/test", h.Test)
	return router
}

func oneSiteManager() *fakeSiteManager {
	return &fakeSiteManager{
		sites: map[string]models.SiteConfig{
			"ruyi": {SiteID: "ruyi", Name: "如意资源", BaseURL: "https://example.com", Enabled: true},
		},
	}
}

func TestListSites(t *testing.T) {
	router := siteRouter(oneSiteManager(), &fakeTester{}, &fakeExtractor{})

	w := performRequest(router, http.MethodGet, "/sites")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "sites")
	assert.Contains(t, data, "stats")
}

func TestGetSite(t *testing.T) {
	router := siteRouter(oneSiteManager(), &fakeTester{}, &fakeExtractor{})

	t.Run("known", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/sites/ruyi")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/sites/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "site not found", body["message"])
	})
}

func TestToggleSite(t *testing.T) {
	manager := oneSiteManager()
	router := siteRouter(manager, &fakeTester{}, &fakeExtractor{})

	w := performRequest(router, http.MethodPost, "/sites/ruyi/toggle")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ruyi", manager.lastToggle)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "site disabled", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["enabled"])
}

func TestToggleSite_Unknown(t *testing.T) {
	router := siteRouter(oneSiteManager(), &fakeTester{}, &fakeExtractor{})

	w := performRequest(router, http.MethodPost, "/sites/nope/toggle")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleSite_PersistError(t *testing.T) {
	manager := oneSiteManager()
	manager.toggleErr = errors.New("disk full")
	router := siteRouter(manager, &fakeTester{}, &fakeExtractor{})

	w := performRequest(router, http.MethodPost, "/sites/ruyi/toggle")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTestSite(t *testing.T) {
	tester := &fakeTester{result: sitetest.Result{Success: true, Message: "connection OK, API responded normally"}}
	router := siteRouter(oneSiteManager(), tester, &fakeExtractor{})

	w := performRequest(router, http.MethodPost, "/sites/ruyi/test")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "connection test completed", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
}

func TestTestSite_Unknown(t *testing.T) {
	tester := &fakeTester{err: errors.New("site not found: nope")}
	router := siteRouter(oneSiteManager(), tester, &fakeExtractor{})

	w := performRequest(router, http.MethodPost, "/sites/nope/test")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSiteMetadata(t *testing.T) {
	extractor := &fakeExtractor{resp: &metadata.MetadataResponse{Name: "如意资源网", URL: "https://example.com"}}
	router := siteRouter(oneSiteManager(), &fakeTester{}, extractor)

	w := performRequest(router, http.MethodGet, "/sites/metadata?url=https://example.com")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "如意资源网", data["name"])
}

func TestSiteMetadata_MissingURL(t *testing.T) {
	router := siteRouter(oneSiteManager(), &fakeTester{}, &fakeExtractor{})

	w := performRequest(router, http.MethodGet, "/sites/metadata")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSiteMetadata_FetchFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("unexpected status code: 403")}
	router := siteRouter(oneSiteManager(), &fakeTester{}, extractor)

	w := performRequest(router, http.MethodGet, "/sites/metadata?url=https://example.com")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// importUpload builds a multipart body carrying an in-memory spreadsheet.
func importUpload(t *testing.T, rows [][]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	headers := []string{"site_id", "name", "base_url", "enabled", "timeout"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}

	var sheet bytes.Buffer
	require.NoError(t, f.Write(&sheet))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "sites.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestImportSites(t *testing.T) {
	manager := oneSiteManager()
	router := siteRouter(manager, &fakeTester{}, &fakeExtractor{})

	body, contentType := importUpload(t, [][]string{
		{"bfzy", "暴风资源", "https://bfzyapi.com/api.php/provide/vod/", "true", "20"},
		{"", "缺ID", "https://example.com", "true", "15"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sites/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, manager.gotImport, 1)
	assert.Equal(t, "bfzy", manager.gotImport[0].SiteID)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(1), data["added"])
	rowErrors, ok := data["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, rowErrors, 1)
}

func TestImportSites_MissingFile(t *testing.T) {
	router := siteRouter(oneSiteManager(), &fakeTester{}, &fakeExtractor{})

	w := performRequest(router, http.MethodPost, "/sites/import")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
