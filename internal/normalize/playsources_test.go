package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/govidsearch/internal/models"
	"github.com/jonesrussell/govidsearch/internal/normalize"
)

func TestDecodePlaySources_SingleSource(t *testing.T) {
	got := normalize.DecodePlaySources(
		"第01集$https://cdn.example/ep1/index.m3u8#第02集$https://cdn.example/ep2/index.m3u8",
		"m3u8源",
	)

	require.Contains(t, got, "m3u8")
	assert.Equal(t, []models.PlaySource{
		{Name: "第01集", URL: "https://cdn.example/ep1/index.m3u8"},
		{Name: "第02集", URL: "https://cdn.example/ep2/index.m3u8"},
	}, got["m3u8"])
}

func TestDecodePlaySources_SameFormatGroupsMergeInOrder(t *testing.T) {
	// Two sources, both classified mp4 by extension: episodes append in
	// source order, the source-name grouping is lost.
	got := normalize.DecodePlaySources(
		"E1$http://x/u1.mp4#E2$http://x/u2.mp4$$$E1$http://y/u3.mp4",
		"A$$$B",
	)

	require.Len(t, got, 1)
	assert.Equal(t, []models.PlaySource{
		{Name: "E1", URL: "http://x/u1.mp4"},
		{Name: "E2", URL: "http://x/u2.mp4"},
		{Name: "E1", URL: "http://y/u3.mp4"},
	}, got["mp4"])
}

func TestDecodePlaySources_URLContainingDollarSurvives(t *testing.T) {
	got := normalize.DecodePlaySources("name$http://x/a$b.mp4", "")

	require.Contains(t, got, "mp4")
	require.Len(t, got["mp4"], 1)
	assert.Equal(t, "name", got["mp4"][0].Name)
	assert.Equal(t, "http://x/a$b.mp4", got["mp4"][0].URL)
}

func TestDecodePlaySources_NameShortfallGetsPlaceholders(t *testing.T) {
	got := normalize.DecodePlaySources(
		"E1$http://x/a.m3u8$$$E1$http://y/b.mp4",
		"只有一个源",
	)

	// Second group got a synthesized name; both still decode.
	require.Contains(t, got, "m3u8")
	require.Contains(t, got, "mp4")
	assert.Len(t, got["m3u8"], 1)
	assert.Len(t, got["mp4"], 1)
}

func TestDecodePlaySources_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		playURL  string
		playFrom string
		want     int // number of format groups
	}{
		{name: "empty url", playURL: "", playFrom: "src", want: 0},
		{name: "episodes without separator dropped", playURL: "justalabel#another", playFrom: "", want: 0},
		{name: "empty label dropped", playURL: "$http://x/a.mp4", playFrom: "", want: 0},
		{name: "empty url part dropped", playURL: "E1$", playFrom: "", want: 0},
		{name: "blank group contributes nothing", playURL: "   $$$E1$http://x/a.mp4", playFrom: "a$$$b", want: 1},
		{name: "whitespace around parts trimmed", playURL: " E1 $ http://x/a.mp4 ", playFrom: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.DecodePlaySources(tt.playURL, tt.playFrom)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDecodePlaySources_FormatClassification(t *testing.T) {
	tests := []struct {
		name       string
		sourceName string
		url        string
		want       string
	}{
		{name: "m3u8 extension", url: "https://x/v/index.m3u8", want: "m3u8"},
		{name: "mp4 extension", url: "https://x/v.mp4", want: "mp4"},
		{name: "flv extension", url: "https://x/v.flv", want: "flv"},
		{name: "avi extension", url: "https://x/v.avi", want: "avi"},
		{name: "extension beats name", sourceName: "mp4源", url: "https://x/v.flv", want: "flv"},
		{name: "m3u8 in source name", sourceName: "lzm3u8", url: "https://x/play/12345", want: "m3u8"},
		{name: "mp4 in source name", sourceName: "wjmp4", url: "https://x/play/12345", want: "mp4"},
		{name: "mkv classified mp4", url: "https://x/v.mkv", want: "mp4"},
		{name: "rmvb classified mp4", url: "https://x/v.rmvb", want: "mp4"},
		{name: "share url classified mp4", url: "https://pan.example/share/abc", want: "mp4"},
		{name: "share in name classified mp4", sourceName: "share源", url: "https://x/play/9", want: "mp4"},
		{name: "default mp4", sourceName: "unknown", url: "https://x/play/9", want: "mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.DecodePlaySources("E1$"+tt.url, tt.sourceName)
			require.Len(t, got, 1)
			assert.Contains(t, got, tt.want)
		})
	}
}
