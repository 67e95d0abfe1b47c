package radio

import "strings"

// Station is one record from the radio-browser directory. Fields mirror the
// JSON the API returns; tags arrive as a single comma-joined string.
type Station struct {
	UUID        string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Tags        string `json:"tags"`
	CountryCode string `json:"countrycode"`
	Language    string `json:"language"`
	Bitrate     int    `json:"bitrate"`
	Codec       string `json:"codec"`
}

// StreamURL returns the playable URL, preferring the resolved one.
func (s Station) StreamURL() string {
	if strings.TrimSpace(s.URLResolved) != "" {
		return s.URLResolved
	}
	return s.URL
}

// TagList splits the comma-joined tag string into trimmed, non-empty tags.
func (s Station) TagList() []string {
	if strings.TrimSpace(s.Tags) == "" {
		return nil
	}
	parts := strings.Split(s.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Page is one fetched batch of stations. It is replaced wholesale on every
// successful search, never mutated in place.
type Page struct {
	Stations []Station
	Index    int
	HasMore  bool
}

func (p Page) Len() int { return len(p.Stations) }
