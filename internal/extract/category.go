package extract

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

const (
	categoryBaseScore    = 50
	categoryKeywordBoost = 15
	categoryMaxScore     = 90
	categoryDefaultScore = 30
)

// categoryCandidate scores each category by distinct keyword membership
// and returns the best. Falls back to Other at a fixed low score when
// nothing matches, so the field is never absent.
func categoryCandidate(doc *Document) Candidate {
	best := Candidate{
		Field:     constants.FieldCategory,
		Value:     string(constants.Other),
		Score:     0,
		Rationale: "",
	}

	for _, entry := range categoryKeywords {
		var matches []string
		for _, kw := range entry.keywords {
			if strings.Contains(doc.Lower, kw) {
				matches = append(matches, kw)
			}
		}
		if len(matches) == 0 {
			continue
		}
		score := min(categoryBaseScore+len(matches)*categoryKeywordBoost, categoryMaxScore)
		if score > best.Score {
			best = Candidate{
				Field:     constants.FieldCategory,
				Value:     string(entry.category),
				Score:     score,
				Rationale: fmt.Sprintf("Keyword matches: %s", strings.Join(matches, ", ")),
			}
		}
	}

	if best.Score == 0 {
		best.Score = categoryDefaultScore
		best.Rationale = "No category keywords matched"
	}
	return best
}
