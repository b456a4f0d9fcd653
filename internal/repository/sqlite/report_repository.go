package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"faultline/internal/capture"
	"faultline/internal/repository"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	fault_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	message TEXT NOT NULL,
	origin TEXT NOT NULL,
	trace TEXT NOT NULL,
	captured_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_fault_id ON reports(fault_id);
`

// ReportRepository persists captured diagnostics in sqlite.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createReportsTable); err != nil {
		return fmt.Errorf("create reports table: %w", err)
	}
	return nil
}

func (r *ReportRepository) Save(ctx context.Context, d capture.Diagnostic) error {
	trace, err := json.Marshal(d.Trace)
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO reports (id, fault_id, kind, message, origin, trace, captured_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.FaultID,
		string(d.Kind),
		d.Message,
		string(d.Origin),
		string(trace),
		d.CapturedAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) List(ctx context.Context) ([]capture.Diagnostic, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, fault_id, kind, message, origin, trace, captured_at
FROM reports
ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []capture.Diagnostic
	for rows.Next() {
		d, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, d)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) CountByFault(ctx context.Context, faultID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM reports WHERE fault_id=?`, faultID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}

func scanReport(rows *sql.Rows) (capture.Diagnostic, error) {
	var d capture.Diagnostic
	var kind, origin, trace, capturedAt string

	if err := rows.Scan(&d.ID, &d.FaultID, &kind, &d.Message, &origin, &trace, &capturedAt); err != nil {
		return capture.Diagnostic{}, fmt.Errorf("scan report: %w", err)
	}
	d.Kind = capture.Kind(kind)
	d.Origin = capture.Origin(origin)

	if err := json.Unmarshal([]byte(trace), &d.Trace); err != nil {
		return capture.Diagnostic{}, fmt.Errorf("decode trace: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, capturedAt)
	if err != nil {
		return capture.Diagnostic{}, fmt.Errorf("parse captured_at: %w", err)
	}
	d.CapturedAt = ts
	return d, nil
}
