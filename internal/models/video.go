package models

// PlaySource is one playable episode entry: label plus stream URL.
type PlaySource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PlaySources groups episodes by detected media format (m3u8, mp4, flv,
// avi). Order within a format group is episode order and must be preserved.
type PlaySources map[string][]PlaySource

// Video is the canonical record every site's items are normalized into.
// A video is displayable only when both ID and Title are non-empty; the
// search layer drops the rest.
type Video struct {
	Platform    string      `json:"platform"`
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail"`
	ViewCount   int         `json:"view_count"`
	UploadDate  string      `json:"upload_date"`
	Channel     string      `json:"channel"`
	Actor       string      `json:"actor"`
	Area        string      `json:"area"`
	Language    string      `json:"language"`
	Year        string      `json:"year"`
	Status      string      `json:"status"`
	TypeName    string      `json:"type_name"`
	PlaySources PlaySources `json:"play_sources"`
}

// Displayable reports whether the record carries the minimum identifying
// fields.
func (v *Video) Displayable() bool {
	return v.ID != "" && v.Title != ""
}
