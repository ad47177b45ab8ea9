package constants

// ErrorCategory classifies why an extracted value failed to match its
// reference value. Assigned only after a match has already failed.
type ErrorCategory string

// Stable values (store these exact strings in reports).
const (
	ErrCorrect        ErrorCategory = "correct"
	ErrOCRGarbage     ErrorCategory = "ocr_garbage"
	ErrWrongField     ErrorCategory = "wrong_field"
	ErrFormatMismatch ErrorCategory = "format_mismatch"
	ErrPartialMatch   ErrorCategory = "partial_match"
	ErrNotExtracted   ErrorCategory = "not_extracted"
	ErrWrongValue     ErrorCategory = "wrong_value"
)

var errorCategoryDescriptions = map[ErrorCategory]string{
	ErrCorrect:        "Correct extraction",
	ErrOCRGarbage:     "OCR produced garbage characters",
	ErrWrongField:     "Extracted wrong field (e.g., cashier name instead of vendor)",
	ErrFormatMismatch: "Correct value but wrong format",
	ErrPartialMatch:   "Partially correct extraction",
	ErrNotExtracted:   "Could not extract any value",
	ErrWrongValue:     "Extracted a value but it was wrong",
}

// Describe returns a human-readable explanation for the category.
func (c ErrorCategory) Describe() string {
	if d, ok := errorCategoryDescriptions[c]; ok {
		return d
	}
	return string(c)
}
