package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/govidsearch/internal/config"
	"github.com/jonesrussell/govidsearch/internal/models"
	"github.com/jonesrussell/govidsearch/internal/registry"
	"github.com/jonesrussell/govidsearch/internal/search"
	"github.com/jonesrussell/govidsearch/internal/testhelpers"
)

type fakeRegistry struct {
	site models.SiteConfig
	err  error
}

func (f *fakeRegistry) Validate(string) (models.SiteConfig, error) {
	return f.site, f.err
}

func siteFor(server *httptest.Server) models.SiteConfig {
	return models.SiteConfig{
		SiteID:      "ruyi",
		Name:        "如意资源",
		BaseURL:     server.URL,
		Enabled:     true,
		Timeout:     5,
		SearchParam: "wd",
		PageParam:   "pg",
		ActionParam: "ac",
	}
}

func newService(site models.SiteConfig, err error) *search.Service {
	return search.NewService(
		&fakeRegistry{site: site, err: err},
		config.HeaderProfiles{Search: map[string]string{"Accept": "application/json"}},
		testhelpers.NewTestLogger(),
	)
}

func apiPayload() map[string]any {
	return map[string]any{
		"code":  1,
		"total": 45,
		"list": []any{
			map[string]any{
				"vod_id":        "1",
				"vod_name":      "喜羊羊与灰太狼",
				"type_name":     "国产动漫",
				"vod_play_from": "m3u8",
				"vod_play_url":  "第01集$https://cdn.example/1.m3u8",
			},
			map[string]any{
				"vod_id":    "2",
				"vod_name":  "某预告",
				"type_name": "预告片",
			},
			map[string]any{
				"vod_name":  "无ID条目",
				"type_name": "电影",
			},
		},
	}
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"ac": r.URL.Query().Get("ac"),
			"wd": r.URL.Query().Get("wd"),
			"pg": r.URL.Query().Get("pg"),
		}
		_ = json.NewEncoder(w).Encode(apiPayload())
	}))
	defer server.Close()

	svc := newService(siteFor(server), nil)
	result := svc.Search(context.Background(), "喜羊羊", 2, 20, "ruyi")

	require.True(t, result.Success)
	assert.Equal(t, map[string]string{"ac": "detail", "wd": "喜羊羊", "pg": "2"}, gotQuery)
	assert.Equal(t, "ruyi", result.SiteID)
	assert.Equal(t, "如意资源", result.SiteName)
	assert.Equal(t, 45, result.TotalCount)
	assert.Equal(t, 3, result.OriginalCount)
	assert.Equal(t, 1, result.FilteredCount) // trailer category
	assert.Equal(t, 1, result.DisplayCount)  // id-less item dropped after mapping
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "喜羊羊与灰太狼", result.Videos[0].Title)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
}

func TestSearch_ValidationFailure(t *testing.T) {
	svc := newService(models.SiteConfig{}, registry.ErrSiteNotFound)
	result := svc.Search(context.Background(), "喜羊羊", 1, 20, "nope")

	assert.False(t, result.Success)
	assert.Equal(t, registry.ErrSiteNotFound.Error(), result.Error)
	assert.NotNil(t, result.Videos)
	assert.Empty(t, result.Videos)
	assert.Zero(t, result.TotalCount)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestSearch_SiteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newService(siteFor(server), nil)
	result := svc.Search(context.Background(), "喜羊羊", 1, 20, "ruyi")

	assert.False(t, result.Success)
	assert.Equal(t, "HTTP error: 502", result.Error)
	assert.Equal(t, "如意资源", result.SiteName)
}

func TestSearch_NonMappingPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["not", "an", "object"]`))
	}))
	defer server.Close()

	svc := newService(siteFor(server), nil)
	result := svc.Search(context.Background(), "喜羊羊", 1, 20, "ruyi")

	assert.False(t, result.Success)
	assert.Equal(t, "unexpected data shape", result.Error)
}

func TestSearch_MissingListYieldsEmptySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code": 1, "total": 0}`))
	}))
	defer server.Close()

	svc := newService(siteFor(server), nil)
	result := svc.Search(context.Background(), "冷门词", 1, 20, "ruyi")

	require.True(t, result.Success)
	assert.Empty(t, result.Videos)
	assert.Zero(t, result.OriginalCount)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestGetDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// detail lookups widen the page to cover more candidates
		_ = json.NewEncoder(w).Encode(apiPayload())
	}))
	defer server.Close()

	svc := newService(siteFor(server), nil)

	t.Run("found", func(t *testing.T) {
		result := svc.GetDetail(context.Background(), "喜羊羊", 1, "ruyi", "1")
		require.True(t, result.Success)
		require.NotNil(t, result.Video)
		assert.Equal(t, "喜羊羊与灰太狼", result.Video.Title)
	})

	t.Run("missing id", func(t *testing.T) {
		result := svc.GetDetail(context.Background(), "喜羊羊", 1, "ruyi", "9999")
		assert.False(t, result.Success)
		assert.Equal(t, "video not found", result.Error)
		assert.Nil(t, result.Video)
	})
}

func TestGetDetail_SearchFailurePropagates(t *testing.T) {
	svc := newService(models.SiteConfig{}, registry.ErrSiteDisabled)
	result := svc.GetDetail(context.Background(), "喜羊羊", 1, "off", "1")

	assert.False(t, result.Success)
	assert.Equal(t, registry.ErrSiteDisabled.Error(), result.Error)
}
