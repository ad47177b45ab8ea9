package extract

import (
	"github.com/joseph-ayodele/receipts-evaluator/constants"
)

// Candidate is one proposed reading of a field, produced by a pattern
// family during a single extraction call and discarded after selection.
type Candidate struct {
	Field     constants.Field
	Value     any
	Score     int // 0..100
	Rationale string
}

// selectBest picks the candidate with the maximum score. Ties break by
// discovery order: the first candidate found wins. This is a deliberate,
// deterministic rule, not an accident of iteration.
func selectBest(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}

// FieldResult is the final reading of one field. Value is nil and
// Confidence 0 if and only if no candidate was generated.
type FieldResult struct {
	Value      any    `json:"value"`
	Confidence int    `json:"confidence"`
	Rationale  string `json:"rationale"`
}

// LogEntry is one line of the engine's decision log.
type LogEntry struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the output of one engine run over one document.
type Result struct {
	Fields            map[constants.Field]FieldResult `json:"fields"`
	OverallConfidence float64                         `json:"overall_confidence"`
	Log               []LogEntry                      `json:"extraction_log"`
}

// Date returns the extracted date string, if any.
func (r *Result) Date() (string, bool) { return r.stringField(constants.FieldDate) }

// Vendor returns the extracted vendor name, if any.
func (r *Result) Vendor() (string, bool) { return r.stringField(constants.FieldVendor) }

// Category returns the assigned category, if any.
func (r *Result) Category() (string, bool) { return r.stringField(constants.FieldCategory) }

// Amount returns the extracted total amount, if any.
func (r *Result) Amount() (float64, bool) {
	fr, ok := r.Fields[constants.FieldAmount]
	if !ok || fr.Value == nil {
		return 0, false
	}
	f, ok := fr.Value.(float64)
	return f, ok
}

func (r *Result) stringField(f constants.Field) (string, bool) {
	fr, ok := r.Fields[f]
	if !ok || fr.Value == nil {
		return "", false
	}
	s, ok := fr.Value.(string)
	return s, ok
}
