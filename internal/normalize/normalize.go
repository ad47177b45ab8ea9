// Package normalize converts raw OCR strings into canonical comparable
// forms for text, dates and amounts. Pure functions, no dependencies.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	reNonAlnum   = regexp.MustCompile(`[^A-Z0-9\s]+`)
	reAmountJunk = regexp.MustCompile(`[^0-9.]+`)
)

// Text upper-cases, strips punctuation and collapses whitespace runs so
// two OCR readings of the same string compare equal.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	s = reNonAlnum.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// dateLayouts are tried in priority order. Order matters: it is the
// implicit tie-break when an input is ambiguous between layouts.
var dateLayouts = []string{
	"2/1/2006", "2-1-2006", "2.1.2006", // DD/MM/YYYY
	"2006-1-2", "2006/1/2", // ISO
	"20060102",        // no separator
	"2/1/06", "2-1-06", // short year
	"2 Jan 2006", "2 January 2006", // written month
}

// Date parses s against the fixed layout list and returns the canonical
// YYYY-MM-DD form. ok is false when no layout matches; never an error.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		candidate := s
		if strings.Contains(layout, "Jan") {
			candidate = titleCaseWords(s)
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// titleCaseWords maps "18 MAR 2018" / "18 mar 2018" onto the casing the
// written-month layouts expect.
func titleCaseWords(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		if len(runes) > 0 && unicode.IsLetter(runes[0]) {
			runes[0] = unicode.ToUpper(runes[0])
		}
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}

// Amount coerces v to a float value. Numeric inputs pass through;
// strings are stripped to digits and decimal point before parsing.
// ok is false when the remainder is empty or not a valid number.
func Amount(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		cleaned := reAmountJunk.ReplaceAllString(t, "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
