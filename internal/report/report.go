// Package report builds the batch evaluation report: a summary object
// with per-field accuracy percentages and error analysis, plus a flat
// row-per-document table of extracted vs reference values.
package report

import (
	"encoding/json"
	"time"

	"github.com/joseph-ayodele/receipts-evaluator/internal/eval"
)

// Summary mirrors the report's summary block.
type Summary struct {
	TotalDocuments        int     `json:"total_documents"`
	ProcessedSuccessfully int     `json:"processed_successfully"`
	SuccessRate           float64 `json:"success_rate"`
}

// Report is the batch report contract. Key names are stable: existing
// datasets and dashboards consume them as-is.
type Report struct {
	Summary            Summary                   `json:"summary"`
	ExactMatchAccuracy map[string]float64        `json:"exact_match_accuracy"`
	FuzzyMatchAccuracy map[string]float64        `json:"fuzzy_match_accuracy"`
	ExtractionRate     map[string]float64        `json:"extraction_rate"`
	ErrorAnalysis      map[string]map[string]int `json:"error_analysis"`
	ProcessorType      string                    `json:"processor_type"`
	Timestamp          string                    `json:"timestamp"`
}

// Row is one document's side-by-side comparison.
type Row struct {
	Filename         string  `json:"filename"`
	ExtractedVendor  string  `json:"extracted_vendor"`
	ExtractedAmount  string  `json:"extracted_amount"`
	ExtractedDate    string  `json:"extracted_date"`
	ReferenceVendor  string  `json:"gt_vendor"`
	ReferenceAmount  string  `json:"gt_amount"`
	ReferenceDate    string  `json:"gt_date"`
	VendorExact      bool    `json:"vendor_exact"`
	VendorFuzzy      bool    `json:"vendor_fuzzy"`
	VendorSimilarity float64 `json:"vendor_similarity"`
	AmountExact      bool    `json:"amount_exact"`
	DateExact        bool    `json:"date_exact"`
	Confidence       float64 `json:"confidence"`
}

// Build assembles the report from finalized metrics.
func Build(m eval.Metrics, processorType string, now time.Time) Report {
	r := Report{
		Summary: Summary{
			TotalDocuments:        m.Total,
			ProcessedSuccessfully: m.Processed,
			SuccessRate:           m.SuccessRate,
		},
		ExactMatchAccuracy: make(map[string]float64, len(m.Fields)),
		FuzzyMatchAccuracy: make(map[string]float64, len(m.Fields)),
		ExtractionRate:     make(map[string]float64, len(m.Fields)),
		ErrorAnalysis:      make(map[string]map[string]int, len(m.Errors)),
		ProcessorType:      processorType,
		Timestamp:          now.Format(time.RFC3339),
	}
	for field, fm := range m.Fields {
		r.ExactMatchAccuracy[string(field)] = fm.ExactAccuracy
		r.FuzzyMatchAccuracy[string(field)] = fm.FuzzyAccuracy
		r.ExtractionRate[string(field)] = fm.ExtractionRate
	}
	for field, hist := range m.Errors {
		out := make(map[string]int, len(hist))
		for cat, count := range hist {
			out[string(cat)] = count
		}
		r.ErrorAnalysis[string(field)] = out
	}
	return r
}

// Marshal renders the report as indented JSON.
func (r Report) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
