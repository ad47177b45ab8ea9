// Package extract is the multi-strategy field-extraction engine. It
// turns a raw OCR transcript into typed readings of the transaction
// date, total amount, vendor name and spending category, each carrying
// a confidence score and a human-readable rationale.
package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
)

// Document is the immutable view of one OCR transcript. Lines are the
// non-empty trimmed lines; Upper and Lower are precomputed case folds
// shared by the pattern families.
type Document struct {
	Text  string
	Upper string
	Lower string
	Lines []string
}

// NewDocument precomputes the per-document views the generators scan.
func NewDocument(text string) *Document {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return &Document{
		Text:  text,
		Upper: strings.ToUpper(text),
		Lower: strings.ToLower(text),
		Lines: lines,
	}
}

// Engine orchestrates the candidate generators and the selector across
// all four fields for one document.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Extract runs all four fields over the transcript. It fails only on a
// structural problem (payload is not valid text); an empty transcript
// is a valid input that yields zero fields, not an error.
func (e *Engine) Extract(text string) (*Result, error) {
	if !utf8.ValidString(text) {
		return nil, common.NewAppError("EXTRACT_INPUT", "transcript is not valid UTF-8", common.ErrNotText)
	}

	doc := NewDocument(text)
	res := &Result{Fields: make(map[constants.Field]FieldResult, 4)}

	// Date and amount pool candidates from every pattern family.
	e.resolve(res, constants.FieldDate, dateCandidates(doc), "No date pattern matched")
	e.resolve(res, constants.FieldAmount, amountCandidates(doc), "No valid amount found")

	// Vendor uses ordered early-exit strategies instead of pooling.
	if c, ok := vendorCandidate(doc); ok {
		e.accept(res, c)
	} else {
		e.reject(res, constants.FieldVendor, "No vendor could be extracted")
	}

	// Category always yields a reading (Other at low confidence).
	e.accept(res, categoryCandidate(doc))

	res.OverallConfidence = overallConfidence(res)

	e.logger.Debug("extract.done",
		"overall_confidence", res.OverallConfidence,
		"lines", len(doc.Lines),
	)
	return res, nil
}

// resolve selects the winner from a candidate pool and records it, or
// records absence when the pool is empty.
func (e *Engine) resolve(res *Result, field constants.Field, cands []Candidate, emptyMsg string) {
	best, ok := selectBest(cands)
	if !ok {
		e.reject(res, field, emptyMsg)
		return
	}
	// Amount scores are open-ended; clamp into the confidence range.
	if field == constants.FieldAmount {
		best.Score = min(95, max(30, best.Score))
	}
	e.accept(res, best)
}

func (e *Engine) accept(res *Result, c Candidate) {
	res.Fields[c.Field] = FieldResult{
		Value:      c.Value,
		Confidence: c.Score,
		Rationale:  c.Rationale,
	}
	res.Log = append(res.Log, LogEntry{
		Field:   string(c.Field),
		Message: fmt.Sprintf("Selected: %v (%s)", c.Value, c.Rationale),
	})
}

func (e *Engine) reject(res *Result, field constants.Field, msg string) {
	res.Fields[field] = FieldResult{Value: nil, Confidence: 0, Rationale: msg}
	res.Log = append(res.Log, LogEntry{Field: string(field), Message: msg})
}

// overallConfidence is the mean of the strictly-positive field
// confidences; fields that found nothing are excluded from the average
// rather than dragging it to zero.
func overallConfidence(res *Result) float64 {
	sum, n := 0, 0
	for _, field := range constants.AllFields() {
		if fr, ok := res.Fields[field]; ok && fr.Confidence > 0 {
			sum += fr.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
