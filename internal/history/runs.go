package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Run is one recorded invocation of the rename pipeline.
type Run struct {
	ID         int64
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Roots      []string
	Scanned    int
	Renamed    int
	Skipped    int
	Failed     int
	ReportPath string
}

// Elapsed returns the run duration.
func (r Run) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RecordRun inserts a finished run into the ledger.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	roots, err := json.Marshal(run.Roots)
	if err != nil {
		return fmt.Errorf("marshal roots: %w", err)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, started_at, finished_at, dry_run, roots,
            scanned, renamed, skipped, failed, report_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(run.DryRun),
		string(roots),
		run.Scanned,
		run.Renamed,
		run.Skipped,
		run.Failed,
		nullableString(run.ReportPath),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, run_id, started_at, finished_at, dry_run, roots,
            scanned, renamed, skipped, failed, report_path
        FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run        Run
		started    string
		finished   string
		dryRun     int
		roots      string
		reportPath sql.NullString
	)
	if err := rows.Scan(
		&run.ID, &run.RunID, &started, &finished, &dryRun, &roots,
		&run.Scanned, &run.Renamed, &run.Skipped, &run.Failed, &reportPath,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	run.DryRun = dryRun != 0
	if roots != "" {
		if err := json.Unmarshal([]byte(roots), &run.Roots); err != nil {
			return Run{}, fmt.Errorf("parse roots: %w", err)
		}
	}
	run.ReportPath = reportPath.String
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
