// AngelaMos | 2026
// slug_test.go

package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "single word", title: "Electronics", want: "electronics"},
		{name: "two words", title: "Home Decor", want: "home_decor"},
		{
			name:  "multiple spaces collapse",
			title: "Baby   Care  Items",
			want:  "baby_care_items",
		},
		{
			name:  "punctuation stripped",
			title: "Toys & Games!",
			want:  "toys__games",
		},
		{name: "digits kept", title: "Top 10 Deals", want: "top_10_deals"},
		{
			name:  "leading and trailing space",
			title: "  Fashion  ",
			want:  "fashion",
		},
		{name: "empty", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}
