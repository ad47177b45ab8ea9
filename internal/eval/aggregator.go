package eval

import (
	"math"
	"sync"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

// FieldEvaluation is the outcome for one field of one document.
type FieldEvaluation struct {
	Extracted bool
	Verdict   Verdict
	// Category is set only when the match failed.
	Category constants.ErrorCategory
}

// DocumentEvaluation carries one document's verdicts into the aggregator.
type DocumentEvaluation struct {
	Filename string
	Fields   map[constants.Field]FieldEvaluation
}

type fieldCounts struct {
	extracted int
	exact     int
	fuzzy     int
}

// Aggregator accumulates verdicts and error categories across a batch.
// It is the only shared mutable structure in a concurrent run, so every
// update happens under its lock. Counters reset only by creating a new
// Aggregator at the start of a batch.
type Aggregator struct {
	mu        sync.Mutex
	total     int
	processed int
	fields    map[constants.Field]*fieldCounts
	errors    map[constants.Field]map[constants.ErrorCategory]int
}

func NewAggregator() *Aggregator {
	a := &Aggregator{
		fields: make(map[constants.Field]*fieldCounts),
		errors: make(map[constants.Field]map[constants.ErrorCategory]int),
	}
	for _, f := range constants.EvaluatedFields() {
		a.fields[f] = &fieldCounts{}
		a.errors[f] = make(map[constants.ErrorCategory]int)
	}
	return a
}

// Record folds one completed document into the running counters.
func (a *Aggregator) Record(doc DocumentEvaluation) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.processed++

	for _, field := range constants.EvaluatedFields() {
		fe, ok := doc.Fields[field]
		if !ok {
			continue
		}
		counts := a.fields[field]
		if fe.Extracted {
			counts.extracted++
		}
		if fe.Verdict.IsExactMatch {
			counts.exact++
		}
		if fe.Verdict.IsFuzzyMatch {
			counts.fuzzy++
		}
		if !fe.Verdict.IsFuzzyMatch && fe.Category != "" {
			a.errors[field][fe.Category]++
		}
	}
}

// RecordFailure counts a document that could not be processed at all.
// The batch continues; the document simply never reaches the match
// counters.
func (a *Aggregator) RecordFailure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total++
}

// FieldMetrics are the finalized percentages for one field.
type FieldMetrics struct {
	ExtractedCount int     `json:"extracted_count"`
	ExactCount     int     `json:"exact_count"`
	FuzzyCount     int     `json:"fuzzy_count"`
	ExtractionRate float64 `json:"extraction_rate"`
	ExactAccuracy  float64 `json:"exact_accuracy"`
	FuzzyAccuracy  float64 `json:"fuzzy_accuracy"`
}

// Metrics is the finalized batch summary.
type Metrics struct {
	Total       int
	Processed   int
	SuccessRate float64
	Fields      map[constants.Field]FieldMetrics
	Errors      map[constants.Field]map[constants.ErrorCategory]int
}

// Finalize derives the percentage metrics. Rates divide by the
// processed count; a zero denominator is floored at one rather than
// failing, so an empty batch reports zeros.
func (a *Aggregator) Finalize() Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := max(a.processed, 1)
	m := Metrics{
		Total:       a.total,
		Processed:   a.processed,
		SuccessRate: pct(a.processed, max(a.total, 1)),
		Fields:      make(map[constants.Field]FieldMetrics, len(a.fields)),
		Errors:      make(map[constants.Field]map[constants.ErrorCategory]int, len(a.errors)),
	}
	for field, counts := range a.fields {
		m.Fields[field] = FieldMetrics{
			ExtractedCount: counts.extracted,
			ExactCount:     counts.exact,
			FuzzyCount:     counts.fuzzy,
			ExtractionRate: pct(counts.extracted, n),
			ExactAccuracy:  pct(counts.exact, n),
			FuzzyAccuracy:  pct(counts.fuzzy, n),
		}
	}
	for field, hist := range a.errors {
		out := make(map[constants.ErrorCategory]int, len(hist))
		for cat, count := range hist {
			out[cat] = count
		}
		m.Errors[field] = out
	}
	return m
}

// pct rounds count/denom to two decimal places, as a percentage.
func pct(count, denom int) float64 {
	return math.Round(float64(count)/float64(denom)*100*100) / 100
}
