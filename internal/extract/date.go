package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

// Plausible transaction-year window for family-1 matches.
const (
	minReceiptYear = 2015
	maxReceiptYear = 2025
)

var (
	reDateDMY4    = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)
	reDateWritten = regexp.MustCompile(`(\d{1,2})\s+(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+(\d{4})`)
	reDateCompact = regexp.MustCompile(`\b(20\d{2})(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])\b`)
	reDateDMY2    = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})\b`)
)

var monthNumbers = map[string]string{
	"JAN": "01", "FEB": "02", "MAR": "03", "APR": "04",
	"MAY": "05", "JUN": "06", "JUL": "07", "AUG": "08",
	"SEP": "09", "OCT": "10", "NOV": "11", "DEC": "12",
}

// dateCandidates pools every match from every date pattern family.
// Values are emitted as DD/MM/YYYY; the evaluation stage normalizes.
func dateCandidates(doc *Document) []Candidate {
	var cands []Candidate

	// Family 1: DD/MM/YYYY with / - . separators, year sanity-checked.
	for _, m := range reDateDMY4.FindAllStringSubmatch(doc.Text, -1) {
		p1, p2, year := m[1], m[2], m[3]
		yearInt, _ := strconv.Atoi(year)
		if yearInt < minReceiptYear || yearInt > maxReceiptYear {
			continue
		}
		day, _ := strconv.Atoi(p1)
		month, _ := strconv.Atoi(p2)

		switch {
		case validDay(day) && validMonth(month):
			cands = append(cands, Candidate{
				Field:     constants.FieldDate,
				Value:     fmt.Sprintf("%s/%s/%s", pad2(p1), pad2(p2), year),
				Score:     92,
				Rationale: "Matched DD/MM/YYYY: " + m[0],
			})
		case validDay(month) && validMonth(day):
			// One side invalid but the swapped assignment is valid.
			cands = append(cands, Candidate{
				Field:     constants.FieldDate,
				Value:     fmt.Sprintf("%s/%s/%s", pad2(p2), pad2(p1), year),
				Score:     80,
				Rationale: "Swapped DD/MM: " + m[0],
			})
		case month > 12 && validDay(day):
			// Single-digit salvage for common optical misreads (40 -> 10).
			fixed := month % 10
			if fixed == 0 {
				fixed = 10
			}
			if validMonth(fixed) {
				cands = append(cands, Candidate{
					Field:     constants.FieldDate,
					Value:     fmt.Sprintf("%s/%02d/%s", pad2(p1), fixed, year),
					Score:     60,
					Rationale: fmt.Sprintf("OCR-corrected month %d->%d: %s", month, fixed, m[0]),
				})
			}
		}
	}

	// Family 2: DD MMM YYYY, the least ambiguous format.
	for _, m := range reDateWritten.FindAllStringSubmatch(doc.Upper, -1) {
		day, monthStr, year := m[1], m[2], m[3]
		cands = append(cands, Candidate{
			Field:     constants.FieldDate,
			Value:     fmt.Sprintf("%s/%s/%s", pad2(day), monthNumbers[monthStr], year),
			Score:     95,
			Rationale: "Matched DD MMM YYYY: " + m[0],
		})
	}

	// Family 3: compact YYYYMMDD.
	for _, m := range reDateCompact.FindAllStringSubmatch(doc.Text, -1) {
		year, month, day := m[1], m[2], m[3]
		cands = append(cands, Candidate{
			Field:     constants.FieldDate,
			Value:     fmt.Sprintf("%s/%s/%s", day, month, year),
			Score:     88,
			Rationale: "Matched YYYYMMDD: " + m[0],
		})
	}

	// Family 4: two-digit year variant, scored below family 1.
	for _, m := range reDateDMY2.FindAllStringSubmatch(doc.Text, -1) {
		p1, p2, yearShort := m[1], m[2], m[3]
		day, _ := strconv.Atoi(p1)
		month, _ := strconv.Atoi(p2)
		year := "20" + yearShort

		switch {
		case validDay(day) && validMonth(month):
			cands = append(cands, Candidate{
				Field:     constants.FieldDate,
				Value:     fmt.Sprintf("%s/%s/%s", pad2(p1), pad2(p2), year),
				Score:     85,
				Rationale: "Matched DD-MM-YY: " + m[0],
			})
		case validDay(month) && validMonth(day):
			cands = append(cands, Candidate{
				Field:     constants.FieldDate,
				Value:     fmt.Sprintf("%s/%s/%s", pad2(p2), pad2(p1), year),
				Score:     75,
				Rationale: "Swapped DD-MM-YY: " + m[0],
			})
		}
	}

	return cands
}

func validDay(d int) bool   { return d >= 1 && d <= 31 }
func validMonth(m int) bool { return m >= 1 && m <= 12 }

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
