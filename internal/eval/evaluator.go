package eval

import (
	"log/slog"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/extract"
	"github.com/joseph-ayodele/receipts-evaluator/internal/groundtruth"
)

// Evaluator pairs one extraction result with its reference record and
// produces the per-field verdicts and error categories the aggregator
// consumes. Category has no ground truth and is never evaluated.
type Evaluator struct {
	logger     *slog.Logger
	matcher    Matcher
	classifier Classifier
}

// NewEvaluator builds an evaluator with the batch call site's vendor
// threshold (historically 0.70, looser than the matcher default).
func NewEvaluator(logger *slog.Logger, fuzzyThreshold, amountTolerance float64) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	m := NewMatcher()
	if fuzzyThreshold > 0 {
		m.FuzzyThreshold = fuzzyThreshold
	}
	if amountTolerance > 0 {
		m.AmountTolerance = amountTolerance
	}
	return &Evaluator{
		logger:     logger,
		matcher:    m,
		classifier: NewClassifier(),
	}
}

// Evaluate scores one document.
func (e *Evaluator) Evaluate(filename string, res *extract.Result, ref groundtruth.Record) DocumentEvaluation {
	doc := DocumentEvaluation{
		Filename: filename,
		Fields:   make(map[constants.Field]FieldEvaluation, 3),
	}

	// Vendor.
	vendor, vendorOK := res.Vendor()
	vv := e.matcher.Vendor(vendor, ref.Company)
	fe := FieldEvaluation{Extracted: vendorOK, Verdict: vv}
	if !vv.IsFuzzyMatch {
		fe.Category = e.classifier.Vendor(vendor, ref.Company, vv.Similarity)
	}
	doc.Fields[constants.FieldVendor] = fe

	// Amount. The classifier distinguishes "nothing extracted" from a
	// bad value, so pass nil when the field is absent.
	var extractedAmount any
	amount, amountOK := res.Amount()
	if amountOK {
		extractedAmount = amount
	}
	av := e.matcher.Amount(extractedAmount, ref.Total)
	fe = FieldEvaluation{Extracted: amountOK, Verdict: av}
	if !av.IsFuzzyMatch {
		fe.Category = e.classifier.Amount(extractedAmount, ref.Total)
	}
	doc.Fields[constants.FieldAmount] = fe

	// Date.
	date, dateOK := res.Date()
	dv := e.matcher.Date(date, ref.Date)
	fe = FieldEvaluation{Extracted: dateOK, Verdict: dv}
	if !dv.IsFuzzyMatch {
		fe.Category = e.classifier.Date(date, ref.Date)
	}
	doc.Fields[constants.FieldDate] = fe

	e.logger.Debug("eval.document",
		"filename", filename,
		"vendor_exact", vv.IsExactMatch, "vendor_fuzzy", vv.IsFuzzyMatch,
		"amount_exact", av.IsExactMatch, "date_exact", dv.IsExactMatch,
	)
	return doc
}
