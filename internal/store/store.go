// Package store persists evaluation runs and their per-document
// results in a local SQLite database so past runs can be compared.
package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/receipts-evaluator/constants"
	"github.com/joseph-ayodele/receipts-evaluator/internal/common"
	"github.com/joseph-ayodele/receipts-evaluator/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	started_at     TEXT NOT NULL,
	finished_at    TEXT,
	processor_type TEXT NOT NULL,
	status         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id            TEXT NOT NULL REFERENCES runs(id),
	filename          TEXT NOT NULL,
	extracted_vendor  TEXT NOT NULL DEFAULT '',
	gt_vendor         TEXT NOT NULL DEFAULT '',
	vendor_exact      INTEGER NOT NULL DEFAULT 0,
	vendor_fuzzy      INTEGER NOT NULL DEFAULT 0,
	vendor_similarity REAL NOT NULL DEFAULT 0,
	extracted_amount  TEXT NOT NULL DEFAULT '',
	gt_amount         TEXT NOT NULL DEFAULT '',
	amount_exact      INTEGER NOT NULL DEFAULT 0,
	extracted_date    TEXT NOT NULL DEFAULT '',
	gt_date           TEXT NOT NULL DEFAULT '',
	date_exact        INTEGER NOT NULL DEFAULT 0,
	confidence        REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, filename)
);`

// Store wraps the SQLite connection. Safe for concurrent use; the
// driver serializes writers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.NewAppError("STORE_OPEN", "open results database", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("STORE_SCHEMA", "initialize schema", err)
	}
	logger.Info("store.open", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun registers a new evaluation run and returns its ID.
func (s *Store) CreateRun(ctx context.Context, processorType string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, processor_type, status) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), processorType, string(constants.RunStatusRunning))
	if err != nil {
		return "", common.WrapError(err, "create run")
	}
	s.logger.Info("store.run.created", "run_id", id, "processor_type", processorType)
	return id, nil
}

// FinishRun marks the run with its terminal status.
func (s *Store) FinishRun(ctx context.Context, runID string, status constants.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), runID)
	if err != nil {
		return common.WrapError(err, "finish run")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.NewAppError("STORE_RUN", "run not found: "+runID, common.ErrNotFound)
	}
	return nil
}

// SaveResults writes one row per evaluated document in a single
// transaction.
func (s *Store) SaveResults(ctx context.Context, runID string, rows []report.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin save")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results (
		run_id, filename,
		extracted_vendor, gt_vendor, vendor_exact, vendor_fuzzy, vendor_similarity,
		extracted_amount, gt_amount, amount_exact,
		extracted_date, gt_date, date_exact,
		confidence
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return common.WrapError(err, "prepare save")
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			runID, r.Filename,
			r.ExtractedVendor, r.ReferenceVendor, boolInt(r.VendorExact), boolInt(r.VendorFuzzy), r.VendorSimilarity,
			r.ExtractedAmount, r.ReferenceAmount, boolInt(r.AmountExact),
			r.ExtractedDate, r.ReferenceDate, boolInt(r.DateExact),
			r.Confidence,
		); err != nil {
			return common.WrapError(err, "save result for "+r.Filename)
		}
	}
	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "commit save")
	}
	s.logger.Info("store.results.saved", "run_id", runID, "rows", len(rows))
	return nil
}

// ListResults returns the stored rows for a run ordered by filename.
func (s *Store) ListResults(ctx context.Context, runID string) ([]report.Row, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		filename,
		extracted_vendor, gt_vendor, vendor_exact, vendor_fuzzy, vendor_similarity,
		extracted_amount, gt_amount, amount_exact,
		extracted_date, gt_date, date_exact,
		confidence
	FROM results WHERE run_id = ? ORDER BY filename`, runID)
	if err != nil {
		return nil, common.WrapError(err, "list results")
	}
	defer func() { _ = rows.Close() }()

	var out []report.Row
	for rows.Next() {
		var r report.Row
		var vendorExact, vendorFuzzy, amountExact, dateExact int
		if err := rows.Scan(
			&r.Filename,
			&r.ExtractedVendor, &r.ReferenceVendor, &vendorExact, &vendorFuzzy, &r.VendorSimilarity,
			&r.ExtractedAmount, &r.ReferenceAmount, &amountExact,
			&r.ExtractedDate, &r.ReferenceDate, &dateExact,
			&r.Confidence,
		); err != nil {
			return nil, common.WrapError(err, "scan result")
		}
		r.VendorExact = vendorExact != 0
		r.VendorFuzzy = vendorFuzzy != 0
		r.AmountExact = amountExact != 0
		r.DateExact = dateExact != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "list results")
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
