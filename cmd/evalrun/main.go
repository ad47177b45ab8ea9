package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/batch"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
	"github.com/joseph-ayodele/receipts-evaluator/internal/eval"
	"github.com/joseph-ayodele/receipts-evaluator/internal/extract"
	"github.com/joseph-ayodele/receipts-evaluator/internal/report"
	"github.com/joseph-ayodele/receipts-evaluator/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir        = flag.String("dir", "", "directory of OCR transcripts (required)")
		gt         = flag.String("gt", "", "directory of ground-truth files (required)")
		out        = flag.String("out", "", "output XLSX file path (optional, defaults to parent of --dir)")
		reportPath = flag.String("report", "", "output JSON report path (optional, defaults to parent of --dir)")
		inmem      = flag.Bool("inmem", false, "use an in-memory results store")
		workers    = flag.Int("workers", 0, "worker count (overrides BATCH_WORKERS)")
		limit      = flag.Int("limit", 0, "evaluate only the first N documents")
		procType   = flag.String("processor", "improved", "processor type label for the report")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *gt == "" {
		printError("Error: --gt is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "evaluation_results.xlsx")
	}
	if *reportPath == "" {
		*reportPath = filepath.Join(filepath.Dir(*dir), "evaluation_report.json")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration
	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Open the results store
	dbPath := cfg.Store.Path
	if *inmem {
		dbPath = ":memory:"
	}
	st, err := store.Open(ctx, dbPath, logger)
	if err != nil {
		logger.Error("failed to open results store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	runID, err := st.CreateRun(ctx, *procType)
	if err != nil {
		logger.Error("failed to create run", "error", err)
		os.Exit(1)
	}

	// Wire the batch
	engine := extract.NewEngine(logger)
	evaluator := eval.NewEvaluator(logger, cfg.Eval.FuzzyThreshold, cfg.Eval.AmountTolerance)
	runner := batch.NewRunner(
		engine,
		evaluator,
		batch.NewDirSource(*dir),
		batch.NewGroundTruthDir(*gt),
		logger,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithQueueSize(cfg.Batch.QueueSize),
		batch.WithDocTimeout(cfg.Batch.DocTimeout),
		batch.WithLimit(*limit),
	)

	outcome, err := runner.Run(ctx)
	if err != nil {
		logger.Error("batch failed", "run_id", runID, "error", err)
		if ferr := st.FinishRun(ctx, runID, constants.RunStatusFailed); ferr != nil {
			logger.Error("failed to mark run failed", "run_id", runID, "error", ferr)
		}
		os.Exit(1)
	}

	// Persist per-document rows
	if err := st.SaveResults(ctx, runID, outcome.Rows); err != nil {
		logger.Error("failed to save results", "run_id", runID, "error", err)
		os.Exit(1)
	}
	if err := st.FinishRun(ctx, runID, constants.RunStatusCompleted); err != nil {
		logger.Error("failed to mark run completed", "run_id", runID, "error", err)
		os.Exit(1)
	}

	// Write the JSON report
	rep := report.Build(outcome.Metrics, *procType, time.Now().UTC())
	data, err := rep.Marshal()
	if err != nil {
		logger.Error("failed to marshal report", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*reportPath, data, 0o644); err != nil {
		logger.Error("failed to write report", "path", *reportPath, "error", err)
		os.Exit(1)
	}

	// Write the XLSX results table
	xlsx, err := report.WriteResultsXLSX(outcome.Rows, logger)
	if err != nil {
		logger.Error("failed to render xlsx", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
		logger.Error("failed to write xlsx", "path", *out, "error", err)
		os.Exit(1)
	}

	// Console summary goes to stderr so it does not interleave with the
	// JSON log stream on stdout.
	fmt.Fprint(os.Stderr, report.FormatSummary(rep))

	logger.Info("evaluation complete",
		"run_id", runID,
		"total", outcome.Metrics.Total,
		"processed", outcome.Metrics.Processed,
		"success_rate", outcome.Metrics.SuccessRate,
		"report", *reportPath,
		"xlsx", *out,
	)
}
