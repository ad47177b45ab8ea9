package eval

import (
	"math"
	"strings"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/normalize"
)

// Classifier assigns one error category to a failed match. The partial
// windows are heuristic approximations, kept as fields rather than
// hard-coded invariants.
type Classifier struct {
	GarbageRatio      float64 // non-readable character fraction above which a value is OCR garbage
	PartialSimilarity float64 // vendor similarity at or above which a miss is a partial match
	AmountRatioLow    float64 // extracted/reference window for a related-but-wrong amount
	AmountRatioHigh   float64
}

func NewClassifier() Classifier {
	return Classifier{
		GarbageRatio:      0.3,
		PartialSimilarity: 0.5,
		AmountRatioLow:    0.8,
		AmountRatioHigh:   1.2,
	}
}

// Vendor classifies a failed vendor match. similarity is the metric the
// Matcher already computed for the pair.
func (c Classifier) Vendor(extracted, reference string, similarity float64) constants.ErrorCategory {
	if extracted == "" {
		return constants.ErrNotExtracted
	}

	extUpper := strings.ToUpper(extracted)
	if garbageRatio(extUpper) > c.GarbageRatio || hasDigitSubstitution(extUpper) {
		return constants.ErrOCRGarbage
	}

	if similarity >= c.PartialSimilarity {
		return constants.ErrPartialMatch
	}

	// A short extraction against a long reference signals a
	// misidentified field, e.g. a cashier name taken for the vendor.
	if len(strings.Fields(extUpper)) <= 2 && len(strings.Fields(strings.ToUpper(reference))) > 3 {
		return constants.ErrWrongField
	}

	return constants.ErrWrongValue
}

// Amount classifies a failed amount match.
func (c Classifier) Amount(extracted, reference any) constants.ErrorCategory {
	if extracted == nil {
		return constants.ErrNotExtracted
	}

	ext, okE := normalize.Amount(extracted)
	if !okE {
		return constants.ErrOCRGarbage
	}
	ref, okR := normalize.Amount(reference)
	if !okR {
		return constants.ErrFormatMismatch
	}

	// A related value (subtotal, single item price) lands near the
	// reference without matching it.
	ratio := ext / math.Max(ref, 0.01)
	if ratio >= c.AmountRatioLow && ratio <= c.AmountRatioHigh {
		return constants.ErrPartialMatch
	}

	return constants.ErrWrongValue
}

// Date classifies a failed date match.
func (c Classifier) Date(extracted, reference string) constants.ErrorCategory {
	if extracted == "" {
		return constants.ErrNotExtracted
	}

	ext, okE := normalize.Date(extracted)
	if !okE {
		return constants.ErrFormatMismatch
	}
	ref, okR := normalize.Date(reference)
	if !okR {
		return constants.ErrFormatMismatch
	}

	// Same year counts as a partial extraction.
	if ext[:4] == ref[:4] {
		return constants.ErrPartialMatch
	}

	return constants.ErrWrongValue
}

// garbageRatio is the fraction of characters that are neither
// alphanumeric nor common punctuation.
func garbageRatio(s string) float64 {
	if s == "" {
		return 0
	}
	garbage := 0
	for _, r := range s {
		if !isReadable(r) {
			garbage++
		}
	}
	return float64(garbage) / float64(len([]rune(s)))
}

// hasDigitSubstitution reports a digit wedged between letters, the
// classic optical letter substitution (J0HN, 5MITH5 inside a word).
// Legitimate numeric tokens ("99 SPEED MART", "7-ELEVEN") are untouched
// because their digits are not letter-flanked.
func hasDigitSubstitution(s string) bool {
	runes := []rune(s)
	for i := 1; i < len(runes)-1; i++ {
		if isDigit(runes[i]) && isLetter(runes[i-1]) && isLetter(runes[i+1]) {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' }

func isReadable(r rune) bool {
	if r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
		return true
	}
	return strings.ContainsRune(" .,&'-", r)
}
