package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

// Every category the classifier can emit comes from either the keyword
// table or the Other fallback, and together they cover the full set.
func TestCategoryTableCoversAllCategories(t *testing.T) {
	covered := map[constants.Category]bool{constants.Other: true}
	for _, entry := range categoryKeywords {
		covered[entry.category] = true
	}
	for _, cat := range constants.AllCategories() {
		assert.True(t, covered[cat], "category %s has no keyword entry", cat)
	}
}

func TestCategoryCandidate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCat   constants.Category
		wantScore int
	}{
		{
			name:      "single keyword",
			text:      "SOME RESTAURANT\nTOTAL 10.00",
			wantCat:   constants.Food,
			wantScore: 65, // base 50 + one keyword
		},
		{
			name:      "multiple keywords capped",
			text:      "restaurant cafe coffee pizza burger lunch",
			wantCat:   constants.Food,
			wantScore: 90,
		},
		{
			name:      "shopping beats food on matches",
			text:      "HARDWARE STORE stationery book mart",
			wantCat:   constants.Shopping,
			wantScore: 90,
		},
		{
			name:      "travel",
			text:      "PETRONAS petrol station",
			wantCat:   constants.Travel,
			wantScore: 80,
		},
		{
			name:      "no keywords defaults to Other",
			text:      "xyzzy",
			wantCat:   constants.Other,
			wantScore: 30,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := categoryCandidate(NewDocument(tt.text))
			assert.Equal(t, string(tt.wantCat), c.Value)
			assert.Equal(t, tt.wantScore, c.Score)
		})
	}
}
