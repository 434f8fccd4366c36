package normalize

import "github.com/jonesrussell/govidsearch/internal/models"

// MapFields converts one raw item into the canonical video record.
// Validation of id/title emptiness is the caller's job; this always returns
// a record. A non-mapping item yields the minimal fallback record rather
// than an error.
func MapFields(siteID, siteName string, item any) models.Video {
	platform := siteName
	if platform == "" {
		platform = siteID
	}

	m, ok := item.(map[string]any)
	if !ok {
		return models.Video{
			Platform:    platform,
			PlaySources: models.PlaySources{},
		}
	}

	video := models.Video{
		Platform:    platform,
		ID:          SafeGet(m, "vod_id"),
		Title:       SafeGet(m, "vod_name"),
		Description: SafeGet(m, "vod_content"),
		Thumbnail:   SafeGet(m, "vod_pic"),
		UploadDate:  SafeGet(m, "vod_pubdate"),
		Channel:     SafeGet(m, "vod_class"),
		Actor:       SafeGet(m, "vod_actor"),
		Area:        SafeGet(m, "vod_area"),
		Language:    SafeGet(m, "vod_lang"),
		Year:        SafeGet(m, "vod_year"),
		Status:      SafeGet(m, "vod_remarks"),
		TypeName:    SafeGet(m, "type_name"),
	}

	// Some sites report hits under a different key; the fallback only fires
	// when the primary is exactly zero.
	video.ViewCount = SafeGetInt(m, "vod_hits", 0)
	if video.ViewCount == 0 {
		video.ViewCount = SafeGetInt(m, "view_count", 0)
	}

	video.PlaySources = DecodePlaySources(
		SafeGet(m, "vod_play_url"),
		SafeGet(m, "vod_play_from"),
	)

	return video
}
