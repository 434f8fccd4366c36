package normalize

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/govidsearch/internal/models"
)

// The legacy play-source wire convention used by resource-site APIs:
// alternate sources joined by "$$$", episodes joined by "#", episode label
// and URL joined by the first "$" only. Decoded defensively as a fixed
// external format.
const (
	sourceSeparator  = "$$$"
	episodeSeparator = "#"
	labelSeparator   = "$"
)

// DecodePlaySources parses the concatenated play-url string into episodes
// grouped by detected media format. Sources whose detected format collides
// are merged; only format and episode order survive. Empty input yields an
// empty map, not an error.
func DecodePlaySources(playURL, playFrom string) models.PlaySources {
	sources := models.PlaySources{}
	if playURL == "" {
		return sources
	}

	fromList := []string{""}
	if playFrom != "" {
		fromList = strings.Split(playFrom, sourceSeparator)
	}
	urlList := strings.Split(playURL, sourceSeparator)

	// Sites are unreliable about keeping the two arrays aligned;
	// synthesize placeholder names rather than failing.
	for len(fromList) < len(urlList) {
		fromList = append(fromList, fmt.Sprintf("source_%d", len(fromList)+1))
	}

	for i, group := range urlList {
		name := strings.TrimSpace(fromList[i])
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}

		var episodes []models.PlaySource
		for _, episode := range strings.Split(group, episodeSeparator) {
			episode = strings.TrimSpace(episode)
			if episode == "" {
				continue
			}

			// First "$" only, so URLs containing "$" survive.
			label, rawURL, ok := strings.Cut(episode, labelSeparator)
			if !ok {
				continue
			}
			label = strings.TrimSpace(label)
			rawURL = strings.TrimSpace(rawURL)
			if label == "" || rawURL == "" {
				continue
			}

			episodes = append(episodes, models.PlaySource{Name: label, URL: rawURL})
		}

		if len(episodes) == 0 {
			continue
		}

		format := classifyFormat(name, episodes[0].URL)
		sources[format] = append(sources[format], episodes...)
	}

	return sources
}

// classifyFormat detects a source group's media format from its first
// episode URL and the source name. The precedence mirrors what players
// downstream already rely on, shadowed branches included.
func classifyFormat(sourceName, sampleURL string) string {
	urlLower := strings.ToLower(sampleURL)
	switch {
	case strings.Contains(urlLower, ".m3u8"):
		return "m3u8"
	case strings.Contains(urlLower, ".mp4"):
		return "mp4"
	case strings.Contains(urlLower, ".flv"):
		return "flv"
	case strings.Contains(urlLower, ".avi"):
		return "avi"
	}

	nameLower := strings.ToLower(sourceName)
	if strings.Contains(nameLower, "m3u8") {
		return "m3u8"
	}
	if strings.Contains(nameLower, "mp4") {
		return "mp4"
	}

	if strings.Contains(sampleURL, "index.m3u8") {
		return "m3u8"
	}
	for _, ext := range []string{".mp4", ".mkv", ".avi", ".rmvb"} {
		if strings.Contains(urlLower, ext) {
			return "mp4"
		}
	}
	if strings.Contains(urlLower, "share") || strings.Contains(nameLower, "share") {
		return "mp4" // share links are served as direct files
	}

	return "mp4"
}
