package radio

import (
	"reflect"
	"testing"
)

func TestStation_StreamURL(t *testing.T) {
	tests := []struct {
		name     string
		station  Station
		expected string
	}{
		{"prefers resolved", Station{URL: "http://raw", URLResolved: "http://resolved"}, "http://resolved"},
		{"falls back to raw", Station{URL: "http://raw"}, "http://raw"},
		{"blank resolved ignored", Station{URL: "http://raw", URLResolved: "   "}, "http://raw"},
		{"both empty", Station{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.station.StreamURL(); got != tt.expected {
				t.Errorf("StreamURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStation_TagList(t *testing.T) {
	tests := []struct {
		name     string
		tags     string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"single", "jazz", []string{"jazz"}},
		{"multiple", "jazz,blues,soul", []string{"jazz", "blues", "soul"}},
		{"padded", " jazz , blues ", []string{"jazz", "blues"}},
		{"empty items dropped", "jazz,,blues,", []string{"jazz", "blues"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Station{Tags: tt.tags}.TagList()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("TagList() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNormalizeCriteria(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]string // name, tags, country, language
		expected SearchCriteria
	}{
		{
			"trims and cases",
			[4]string{" jazz ", " jazz , smooth ", " us ", " English "},
			SearchCriteria{Name: "jazz", Tags: "jazz,smooth", CountryCode: "US", Language: "english"},
		},
		{
			"all empty",
			[4]string{"", "", "", ""},
			SearchCriteria{},
		},
		{
			"malformed codes passed through",
			[4]string{"", "", "usa!", "ZZZZ"},
			SearchCriteria{CountryCode: "USA!", Language: "zzzz"},
		},
		{
			"tags collapse empties",
			[4]string{"", "a,,b, ,c", "", ""},
			SearchCriteria{Tags: "a,b,c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCriteria(tt.input[0], tt.input[1], tt.input[2], tt.input[3])
			if got != tt.expected {
				t.Errorf("NormalizeCriteria() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSearchCriteria_Equality(t *testing.T) {
	a := NormalizeCriteria("jazz", "jazz,smooth", "us", "English")
	b := NormalizeCriteria(" jazz ", " jazz ,smooth", "US", "english")
	if a != b {
		t.Error("normalized criteria should compare equal")
	}

	c := NormalizeCriteria("blues", "", "", "")
	if a == c {
		t.Error("different criteria should not compare equal")
	}
}

func TestSearchCriteria_IsZero(t *testing.T) {
	if !(SearchCriteria{}).IsZero() {
		t.Error("zero criteria should report IsZero")
	}
	if (SearchCriteria{Name: "x"}).IsZero() {
		t.Error("non-zero criteria should not report IsZero")
	}
}
