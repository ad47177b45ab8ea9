package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

// Plausible magnitude range for a receipt total.
const (
	minPlausibleAmount = 0.10
	maxPlausibleAmount = 50000.0
)

// amountPattern is one monetary-token shape, tried per line.
type amountPattern struct {
	re       *regexp.Regexp
	name     string
	currency bool // currency-symbol prefix present
}

var amountPatterns = []amountPattern{
	{regexp.MustCompile(`(?i)RM\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`), "RM prefix", true},
	{regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`), "$ prefix", true},
	{regexp.MustCompile(`\b(\d+(?:,\d{3})*\.\d{2})\b`), "decimal number", false},
}

// amountCandidates scans line-by-line and scores every monetary-looking
// token by keyword proximity, exclusion penalties and document position.
// Totals cluster near the bottom of a receipt, so later lines score
// higher.
func amountCandidates(doc *Document) []Candidate {
	var cands []Candidate

	for i, line := range doc.Lines {
		lineLower := strings.ToLower(line)
		hasExclusion := containsAny(lineLower, excludeKeywords)

		for _, pat := range amountPatterns {
			for _, m := range pat.re.FindAllStringSubmatch(line, -1) {
				raw := strings.ReplaceAll(m[1], ",", "")
				amount, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					continue
				}
				if amount < minPlausibleAmount || amount > maxPlausibleAmount {
					continue
				}

				score := 50 // base
				reasons := []string{fmt.Sprintf("Found %.2f via %s", amount, pat.name)}

				// Total-class keyword on the same line.
				for _, kw := range totalKeywords {
					if strings.Contains(lineLower, kw.keyword) {
						score += kw.boost
						reasons = append(reasons, fmt.Sprintf("+%d for keyword %q", kw.boost, kw.keyword))
						break
					}
				}

				// Keyword on the preceding line, at reduced weight
				// ("TOTAL" is sometimes printed on its own line).
				if i > 0 {
					prevLower := strings.ToLower(doc.Lines[i-1])
					for _, kw := range totalKeywords {
						if strings.Contains(prevLower, kw.keyword) {
							boost := int(float64(kw.boost) * 0.6)
							score += boost
							reasons = append(reasons, fmt.Sprintf("+%d for %q in prev line", boost, kw.keyword))
							break
						}
					}
				}

				if hasExclusion {
					score -= 40
					reasons = append(reasons, "-40 for exclusion keyword")
				}

				// Position bonus for the bottom half of the document.
				positionRatio := float64(i) / float64(max(len(doc.Lines), 1))
				if positionRatio > 0.5 {
					bonus := int(20 * (positionRatio - 0.5) * 2)
					score += bonus
					reasons = append(reasons, fmt.Sprintf("+%d for position (%.0f%% through)", bonus, positionRatio*100))
				}

				if pat.currency {
					score += 15
					reasons = append(reasons, "+15 for currency prefix")
				}

				cands = append(cands, Candidate{
					Field:     constants.FieldAmount,
					Value:     amount,
					Score:     score,
					Rationale: strings.Join(reasons, "; "),
				})
			}
		}
	}

	return cands
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
