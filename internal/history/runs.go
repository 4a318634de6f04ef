package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamreel/internal/diag"
)

var (
	// ErrRunNotFound is returned when no run matches the requested identifier.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an identifier prefix matches several runs.
	ErrAmbiguousRun = errors.New("run identifier is ambiguous")
)

const runColumns = "id, created_at, workbook, output, schedule, field, slots, assigned, duplicates, unassigned, warnings, diagnostics_json"

// Record stores run and its assignments in one transaction. A missing ID
// or timestamp is filled in; the stored run is returned.
func (s *Store) Record(ctx context.Context, run Run, rows []Assignment) (Run, error) {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	var diagnostics any
	if len(run.Diagnostics) > 0 {
		data, err := json.Marshal(run.Diagnostics)
		if err != nil {
			return Run{}, fmt.Errorf("marshal diagnostics: %w", err)
		}
		diagnostics = string(data)
	}

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.CreatedAt.Format(time.RFC3339Nano),
			run.Workbook,
			nullableString(run.Output),
			run.Schedule,
			run.Field,
			run.Summary.Slots,
			run.Summary.Assigned,
			run.Summary.Duplicates,
			run.Summary.Unassigned,
			run.Summary.Warnings,
			diagnostics,
		); err != nil {
			return err
		}

		for i, row := range rows {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO assignments (
                    run_id, position, sheet, row_number, match_number, placeholder, code, label, video_number, duplicate
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID, i, row.Sheet, row.Row, row.Match, row.Placeholder, row.Code,
				nullableString(row.Label), nullableString(row.VideoNumber), boolToInt(row.Duplicate),
			); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first. limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
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
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Show returns one run and its assignments. id may be a unique prefix of
// the run identifier.
func (s *Store) Show(ctx context.Context, id string) (Run, []Assignment, error) {
	ctx = ensureContext(ctx)
	id = strings.ToLower(strings.TrimSpace(id))
	if !validIDPrefix(id) {
		return Run{}, nil, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ORDER BY created_at DESC LIMIT 2`, id+"%")
	if err != nil {
		return Run{}, nil, fmt.Errorf("find run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, nil, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("find run: %w", err)
	}

	switch len(matches) {
	case 0:
		return Run{}, nil, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	case 1:
	default:
		if matches[0].ID != id {
			return Run{}, nil, fmt.Errorf("%w: %q", ErrAmbiguousRun, id)
		}
	}
	run := matches[0]

	assignments, err := s.assignments(ctx, run.ID)
	if err != nil {
		return Run{}, nil, err
	}
	return run, assignments, nil
}

func (s *Store) assignments(ctx context.Context, runID string) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sheet, row_number, match_number, placeholder, code, label, video_number, duplicate
         FROM assignments WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var (
			a           Assignment
			label       sql.NullString
			videoNumber sql.NullString
			duplicate   int
		)
		if err := rows.Scan(&a.Sheet, &a.Row, &a.Match, &a.Placeholder, &a.Code, &label, &videoNumber, &duplicate); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		a.Label = label.String
		a.VideoNumber = videoNumber.String
		a.Duplicate = duplicate != 0
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		createdRaw  string
		output      sql.NullString
		diagnostics sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&createdRaw,
		&run.Workbook,
		&output,
		&run.Schedule,
		&run.Field,
		&run.Summary.Slots,
		&run.Summary.Assigned,
		&run.Summary.Duplicates,
		&run.Summary.Unassigned,
		&run.Summary.Warnings,
		&diagnostics,
	); err != nil {
		return Run{}, err
	}
	run.Output = output.String
	if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		run.CreatedAt = ts
	}
	if diagnostics.Valid && diagnostics.String != "" {
		var list diag.List
		if err := json.Unmarshal([]byte(diagnostics.String), &list); err != nil {
			return Run{}, fmt.Errorf("decode diagnostics: %w", err)
		}
		run.Diagnostics = list
	}
	return run, nil
}

func validIDPrefix(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r == '-':
		default:
			return false
		}
	}
	return true
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
