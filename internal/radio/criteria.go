package radio

import "strings"

// SearchCriteria holds committed search parameters. All fields are optional;
// empty means unset. Values are comparable with ==, which is how the session
// decides whether a committed filter actually changed.
type SearchCriteria struct {
	Name        string
	Tags        string // comma-joined, passed through to the API's tagList
	CountryCode string
	Language    string
}

// NormalizeCriteria turns free-form filter input into the structured form:
// whitespace trimmed, tags split on commas and rejoined, country code
// uppercased, language lowercased. Malformed ISO codes are passed through;
// the directory is the authority on validity.
func NormalizeCriteria(name, tags, country, language string) SearchCriteria {
	return SearchCriteria{
		Name:        strings.TrimSpace(name),
		Tags:        normalizeTags(tags),
		CountryCode: strings.ToUpper(strings.TrimSpace(country)),
		Language:    strings.ToLower(strings.TrimSpace(language)),
	}
}

func normalizeTags(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, ",")
}

// IsZero reports whether no criteria are set.
func (c SearchCriteria) IsZero() bool {
	return c == SearchCriteria{}
}
