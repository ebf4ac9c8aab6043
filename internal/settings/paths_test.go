package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkpost/inkpost/internal/settings"
)

func TestFilterPaths(t *testing.T) {
	casper := map[string]any{"name": "Casper", "version": "1.0.0"}

	testCases := []struct {
		name    string
		listing settings.Listing
		active  any
		want    []settings.PathEntry
	}{
		{
			name:    "hidden entries are skipped",
			listing: settings.Listing{{Name: "a"}, {Name: ".hidden"}, {Name: "_messages"}},
			active:  "a",
			want:    []settings.PathEntry{{Name: "a", Package: false, Active: true}},
		},
		{
			name:    "readme is skipped",
			listing: settings.Listing{{Name: "README.md"}, {Name: "b"}},
			active:  "a",
			want:    []settings.PathEntry{{Name: "b", Package: false, Active: false}},
		},
		{
			name:    "package is passed through",
			listing: settings.Listing{{Name: "casper", Package: casper}},
			active:  "casper",
			want:    []settings.PathEntry{{Name: "casper", Package: casper, Active: true}},
		},
		{
			name:    "active list",
			listing: settings.Listing{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			active:  []string{"a", "c"},
			want: []settings.PathEntry{
				{Name: "a", Package: false, Active: true},
				{Name: "b", Package: false, Active: false},
				{Name: "c", Package: false, Active: true},
			},
		},
		{
			name:    "decoded JSON active list",
			listing: settings.Listing{{Name: "a"}, {Name: "b"}},
			active:  []any{"b", 42},
			want: []settings.PathEntry{
				{Name: "a", Package: false, Active: false},
				{Name: "b", Package: false, Active: true},
			},
		},
		{
			name:    "no active value",
			listing: settings.Listing{{Name: "a"}},
			active:  nil,
			want:    []settings.PathEntry{{Name: "a", Package: false, Active: false}},
		},
		{
			name:    "empty listing",
			listing: nil,
			active:  "a",
			want:    []settings.PathEntry{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, settings.FilterPaths(tc.listing, tc.active))
		})
	}
}
