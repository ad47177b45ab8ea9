// Package batch fans a dataset of OCR transcripts out to extraction
// workers and folds the per-document verdicts into one set of metrics.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
	"github.com/joseph-ayodele/receipts-evaluator/internal/eval"
	"github.com/joseph-ayodele/receipts-evaluator/internal/extract"
	"github.com/joseph-ayodele/receipts-evaluator/internal/groundtruth"
	"github.com/joseph-ayodele/receipts-evaluator/internal/report"
)

// TranscriptSource yields the OCR text for a document. The OCR step
// itself happens upstream; this repo only consumes its output.
type TranscriptSource interface {
	Read(name string) (string, error)
}

// ReferenceSource yields the reference records the batch is scored
// against and defines which documents the batch covers.
type ReferenceSource interface {
	Names() ([]string, error)
	Read(name string) (groundtruth.Record, error)
}

// DirSource reads <name>.txt transcripts from a directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) DirSource {
	return DirSource{dir: dir}
}

func (s DirSource) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+"."+constants.TranscriptExt))
	if err != nil {
		return "", common.WrapError(err, "read transcript")
	}
	return string(data), nil
}

// GroundTruthDir serves reference records from a directory of
// ground-truth files.
type GroundTruthDir struct {
	dir string
}

func NewGroundTruthDir(dir string) GroundTruthDir {
	return GroundTruthDir{dir: dir}
}

func (s GroundTruthDir) Names() ([]string, error) {
	return groundtruth.ListDir(s.dir)
}

func (s GroundTruthDir) Read(name string) (groundtruth.Record, error) {
	return groundtruth.Load(filepath.Join(s.dir, name+"."+constants.GroundTruthExt))
}

// Runner drives one evaluation batch over a worker pool.
type Runner struct {
	logger      *slog.Logger
	engine      *extract.Engine
	evaluator   *eval.Evaluator
	transcripts TranscriptSource
	refs        ReferenceSource

	workers    int
	queueSize  int
	docTimeout time.Duration
	limit      int
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

func WithDocTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.docTimeout = d
		}
	}
}

// WithLimit caps the batch at the first n documents of the dataset.
func WithLimit(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.limit = n
		}
	}
}

func NewRunner(engine *extract.Engine, evaluator *eval.Evaluator, transcripts TranscriptSource, refs ReferenceSource, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		logger:      logger,
		engine:      engine,
		evaluator:   evaluator,
		transcripts: transcripts,
		refs:        refs,
		workers:     4,
		queueSize:   256,
		docTimeout:  30 * time.Second,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Outcome is one finished batch: the aggregate metrics plus the
// per-document rows, sorted by filename.
type Outcome struct {
	Metrics eval.Metrics
	Rows    []report.Row
}

// Run evaluates every document the reference source names. A document
// that fails to read, extract, or finish within the timeout counts as
// a failure; it never corrupts the aggregate counters.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	names, err := r.refs.Names()
	if err != nil {
		return nil, err
	}
	if r.limit > 0 && len(names) > r.limit {
		names = names[:r.limit]
	}
	r.logger.Info("batch.start", "documents", len(names), "workers", r.workers)

	agg := eval.NewAggregator()
	jobs := make(chan string, r.queueSize)

	var mu sync.Mutex
	rows := make([]report.Row, 0, len(names))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for name := range jobs {
				docCtx, cancel := context.WithTimeout(ctx, r.docTimeout)
				row, doc, err := r.processOne(docCtx, name)
				cancel()

				if err != nil {
					agg.RecordFailure()
					r.logger.Error("batch.document.failed", "worker_id", workerID, "name", name, "error", err)
					continue
				}
				agg.Record(doc)
				mu.Lock()
				rows = append(rows, row)
				mu.Unlock()
			}
		}(i + 1)
	}

feed:
	for _, name := range names {
		select {
		case jobs <- name:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(err, "batch interrupted")
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Filename < rows[j].Filename })
	out := &Outcome{Metrics: agg.Finalize(), Rows: rows}
	r.logger.Info("batch.done",
		"total", out.Metrics.Total,
		"processed", out.Metrics.Processed,
		"success_rate", out.Metrics.SuccessRate,
	)
	return out, nil
}

func (r *Runner) processOne(ctx context.Context, name string) (report.Row, eval.DocumentEvaluation, error) {
	text, err := r.transcripts.Read(name)
	if err != nil {
		return report.Row{}, eval.DocumentEvaluation{}, err
	}
	ref, err := r.refs.Read(name)
	if err != nil {
		return report.Row{}, eval.DocumentEvaluation{}, err
	}

	// Extraction is CPU-bound and takes no context, so the timeout is
	// enforced from outside.
	type extraction struct {
		res *extract.Result
		err error
	}
	ch := make(chan extraction, 1)
	go func() {
		res, err := r.engine.Extract(text)
		ch <- extraction{res: res, err: err}
	}()

	var res *extract.Result
	select {
	case <-ctx.Done():
		return report.Row{}, eval.DocumentEvaluation{}, common.WrapError(ctx.Err(), "extract "+name)
	case ex := <-ch:
		if ex.err != nil {
			return report.Row{}, eval.DocumentEvaluation{}, ex.err
		}
		res = ex.res
	}

	filename := name + "." + constants.TranscriptExt
	doc := r.evaluator.Evaluate(filename, res, ref)
	return buildRow(filename, res, ref, doc), doc, nil
}

func buildRow(filename string, res *extract.Result, ref groundtruth.Record, doc eval.DocumentEvaluation) report.Row {
	vendor, _ := res.Vendor()
	date, _ := res.Date()
	var amount string
	if v, ok := res.Amount(); ok {
		amount = fmt.Sprintf("%.2f", v)
	}

	vf := doc.Fields[constants.FieldVendor]
	af := doc.Fields[constants.FieldAmount]
	df := doc.Fields[constants.FieldDate]

	return report.Row{
		Filename:         filename,
		ExtractedVendor:  vendor,
		ReferenceVendor:  ref.Company,
		VendorExact:      vf.Verdict.IsExactMatch,
		VendorFuzzy:      vf.Verdict.IsFuzzyMatch,
		VendorSimilarity: vf.Verdict.Similarity,
		ExtractedAmount:  amount,
		ReferenceAmount:  ref.Total,
		AmountExact:      af.Verdict.IsExactMatch,
		ExtractedDate:    date,
		ReferenceDate:    ref.Date,
		DateExact:        df.Verdict.IsExactMatch,
		Confidence:       res.OverallConfidence,
	}
}
