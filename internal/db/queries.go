package db

import (
	"database/sql"
	"fmt"
)

// DispatchRun represents a row in the dispatch_runs table.
type DispatchRun struct {
	ID           string
	FilePath     string
	ToolName     string
	ChecksRun    int
	ChecksFailed int
	Success      bool
	Timestamp    string
}

// CheckResult represents a row in the check_results table.
type CheckResult struct {
	ID         int
	RunID      string
	CheckName  string
	Command    string
	ExitCode   int
	TimedOut   bool
	DurationMs int
	Output     string
	Timestamp  string
}

// LogDispatch records one dispatch run and its per-check results in a single
// transaction.
func (d *DB) LogDispatch(run DispatchRun, results []CheckResult) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO dispatch_runs (id, file_path, tool_name, checks_run, checks_failed, success) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.FilePath, run.ToolName, run.ChecksRun, run.ChecksFailed, run.Success,
	)
	if err != nil {
		return fmt.Errorf("log dispatch run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO check_results (run_id, check_name, command, exit_code, timed_out, duration_ms, output) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(run.ID, r.CheckName, r.Command, r.ExitCode, r.TimedOut, r.DurationMs, r.Output); err != nil {
			return fmt.Errorf("log check result %q: %w", r.CheckName, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent dispatch runs, newest first.
func (d *DB) RecentRuns(limit int) ([]DispatchRun, error) {
	rows, err := d.conn.Query(
		`SELECT id, file_path, tool_name, checks_run, checks_failed, success, timestamp
		 FROM dispatch_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get recent runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// RunsForFile returns the most recent dispatch runs for a file, newest first.
func (d *DB) RunsForFile(filePath string, limit int) ([]DispatchRun, error) {
	rows, err := d.conn.Query(
		`SELECT id, file_path, tool_name, checks_run, checks_failed, success, timestamp
		 FROM dispatch_runs WHERE file_path = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		filePath, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get runs for file: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]DispatchRun, error) {
	var runs []DispatchRun
	for rows.Next() {
		var r DispatchRun
		var toolName sql.NullString
		if err := rows.Scan(&r.ID, &r.FilePath, &toolName, &r.ChecksRun, &r.ChecksFailed, &r.Success, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan dispatch run: %w", err)
		}
		if toolName.Valid {
			r.ToolName = toolName.String
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ResultsForRun returns the check results of one dispatch run, in insertion
// order.
func (d *DB) ResultsForRun(runID string) ([]CheckResult, error) {
	rows, err := d.conn.Query(
		`SELECT id, run_id, check_name, command, exit_code, timed_out, duration_ms, output, timestamp
		 FROM check_results WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get results for run: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// ResultsForCheck returns the most recent results of one named check across
// all runs, newest first.
func (d *DB) ResultsForCheck(checkName string, limit int) ([]CheckResult, error) {
	rows, err := d.conn.Query(
		`SELECT id, run_id, check_name, command, exit_code, timed_out, duration_ms, output, timestamp
		 FROM check_results WHERE check_name = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		checkName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get results for check: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]CheckResult, error) {
	var results []CheckResult
	for rows.Next() {
		var r CheckResult
		var durationMs sql.NullInt64
		var output sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.CheckName, &r.Command, &r.ExitCode, &r.TimedOut, &durationMs, &output, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan check result: %w", err)
		}
		if durationMs.Valid {
			r.DurationMs = int(durationMs.Int64)
		}
		if output.Valid {
			r.Output = output.String
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
