package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

const (
	vendorSuffixConfidence = 85  // fixed score for a company-suffix hit
	vendorQualityThreshold = 0.6 // minimum readable-character ratio for a header line
	vendorHeaderLines      = 5   // lines scanned by the header fallback
	vendorSuffixLines      = 10  // lines scanned for company suffixes
)

var (
	reRegistrationNo = regexp.MustCompile(`\([0-9A-Z\-]+\)`)
	reDashRuns       = regexp.MustCompile(`[—–\-=_|]{2,}`)
	reVendorNoise    = regexp.MustCompile(`[^\w\s.,&'"()\-]`)
)

// vendorCandidate runs three ordered strategies and stops at the first
// success. Unlike date/amount, candidates are NOT pooled: strategy order
// is itself the confidence ranking.
func vendorCandidate(doc *Document) (Candidate, bool) {
	// Strategy 1: curated table of known vendor fragments.
	for _, kv := range knownVendors {
		if strings.Contains(doc.Upper, kv.fragment) {
			return Candidate{
				Field:     constants.FieldVendor,
				Value:     kv.canonical,
				Score:     kv.confidence,
				Rationale: "Matched known vendor: " + kv.fragment,
			}, true
		}
	}

	// Strategy 2: legal-entity marker in the top lines.
	for i, line := range doc.Lines {
		if i >= vendorSuffixLines {
			break
		}
		lineUpper := strings.ToUpper(line)
		for _, suffix := range companySuffixes {
			if strings.Contains(lineUpper, suffix) {
				cleaned := cleanVendorName(line)
				if len(cleaned) > 3 {
					return Candidate{
						Field:     constants.FieldVendor,
						Value:     cleaned,
						Score:     vendorSuffixConfidence,
						Rationale: "Company suffix detected: " + suffix,
					}, true
				}
			}
		}
	}

	// Strategy 3: first header line clearing a text-quality bar.
	for i, line := range doc.Lines {
		if i >= vendorHeaderLines {
			break
		}
		cleaned := cleanVendorName(line)
		if len(cleaned) < 4 {
			continue
		}

		quality := textQuality(cleaned)
		if quality < vendorQualityThreshold {
			continue
		}
		if containsAny(strings.ToUpper(cleaned), addressTokens) {
			continue
		}
		if digitRatio(cleaned) > 0.5 {
			continue
		}

		return Candidate{
			Field:     constants.FieldVendor,
			Value:     cleaned,
			Score:     int(60 + quality*30),
			Rationale: fmt.Sprintf("Header extraction (quality=%.2f)", quality),
		}, true
	}

	return Candidate{}, false
}

// cleanVendorName strips registration numbers, dash runs and symbol
// noise, then collapses whitespace.
func cleanVendorName(s string) string {
	s = reRegistrationNo.ReplaceAllString(s, "")
	s = reDashRuns.ReplaceAllString(s, "")
	s = reVendorNoise.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// textQuality is the fraction of characters that are alphanumeric or
// common punctuation.
func textQuality(s string) float64 {
	if s == "" {
		return 0
	}
	valid := 0
	for _, r := range s {
		if isAlnum(r) || strings.ContainsRune(" .,&'-()/", r) {
			valid++
		}
	}
	return float64(valid) / float64(len([]rune(s)))
}

func digitRatio(s string) float64 {
	if s == "" {
		return 0
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return float64(digits) / float64(len([]rune(s)))
}

func isAlnum(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
