package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

const recordColumns = `id, category_id, phase, started_at, ended_at, planned_sec, actual_sec, completed, note, created_at`

// SQLiteSessionRecordRepo implements SessionRecordRepo using a SQLite
// database.
type SQLiteSessionRecordRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRecordRepo creates a new SQLiteSessionRecordRepo.
// Accepts either a *sql.DB or a transaction.
func NewSQLiteSessionRecordRepo(dbtx db.DBTX) *SQLiteSessionRecordRepo {
	return &SQLiteSessionRecordRepo{db: dbtx}
}

func (r *SQLiteSessionRecordRepo) Create(ctx context.Context, rec *domain.SessionRecord) error {
	query := `INSERT INTO session_records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.CategoryID,
		string(rec.Phase),
		rec.StartedAt.Format(time.RFC3339),
		rec.EndedAt.Format(time.RFC3339),
		durationToSeconds(rec.Planned),
		durationToSeconds(rec.Actual),
		boolToInt(rec.Completed),
		rec.Note,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRecordRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM session_records WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanRecord(row)
}

func (r *SQLiteSessionRecordRepo) List(ctx context.Context, filter RecordFilter) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM session_records WHERE 1=1`
	var args []any

	if !filter.IncludeBreaks {
		query += ` AND phase = 'focus'`
	}
	if filter.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, filter.CategoryID)
	}
	if filter.Since != nil {
		query += ` AND started_at >= ?`
		args = append(args, filter.Since.Format(time.RFC3339))
	}
	if filter.Until != nil {
		query += ` AND started_at <= ?`
		args = append(args, filter.Until.Format(time.RFC3339))
	}
	query += ` ORDER BY started_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing session records: %w", err)
	}
	defer rows.Close()
	return r.scanRecords(rows)
}

func (r *SQLiteSessionRecordRepo) UpdateNote(ctx context.Context, id, note string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE session_records SET note = ? WHERE id = ?`, note, id)
	if err != nil {
		return fmt.Errorf("updating session note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating session note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session record: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session record: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRecordRepo) DeleteByCategory(ctx context.Context, categoryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_records WHERE category_id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("deleting session records by category: %w", err)
	}
	return nil
}

// TotalFocusSince sums actual focus seconds for records started at or after
// since. Breaks are never counted. An empty categoryID sums across all
// categories.
func (r *SQLiteSessionRecordRepo) TotalFocusSince(ctx context.Context, since time.Time, categoryID string) (time.Duration, error) {
	query := `SELECT COALESCE(SUM(actual_sec), 0) FROM session_records
		WHERE phase = 'focus' AND started_at >= ?`
	args := []any{since.Format(time.RFC3339)}
	if categoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, categoryID)
	}

	var totalSec int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&totalSec); err != nil {
		return 0, fmt.Errorf("summing focus time: %w", err)
	}
	return secondsToDuration(totalSec), nil
}

// CategoryTotals returns per-category focus totals and session counts for
// records matching the filter, ordered by total descending. Categories with
// no matching records are omitted.
func (r *SQLiteSessionRecordRepo) CategoryTotals(ctx context.Context, filter RecordFilter) ([]CategoryTotal, error) {
	var conds []string
	var args []any

	conds = append(conds, `s.phase = 'focus'`)
	if filter.Since != nil {
		conds = append(conds, `s.started_at >= ?`)
		args = append(args, filter.Since.Format(time.RFC3339))
	}
	if filter.Until != nil {
		conds = append(conds, `s.started_at <= ?`)
		args = append(args, filter.Until.Format(time.RFC3339))
	}

	query := `SELECT c.id, c.name, c.focus_minutes, c.break_minutes, c.color, c.created_at,
			COALESCE(SUM(s.actual_sec), 0), COUNT(s.id)
		FROM session_records s
		JOIN categories c ON s.category_id = c.id
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY c.id
		ORDER BY SUM(s.actual_sec) DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregating category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		var createdAtStr string
		var totalSec int
		if err := rows.Scan(
			&t.Category.ID, &t.Category.Name, &t.Category.FocusMinutes, &t.Category.BreakMinutes,
			&t.Category.Color, &createdAtStr, &totalSec, &t.Sessions,
		); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}
		if t.Category.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		t.TotalFocus = secondsToDuration(totalSec)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}
	return totals, nil
}

func (r *SQLiteSessionRecordRepo) scanRecord(row *sql.Row) (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	var phase, startedAtStr, endedAtStr, createdAtStr string
	var plannedSec, actualSec, completed int

	err := row.Scan(
		&rec.ID, &rec.CategoryID, &phase, &startedAtStr, &endedAtStr,
		&plannedSec, &actualSec, &completed, &rec.Note, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session record: %w", err)
	}

	return r.populateRecord(&rec, phase, startedAtStr, endedAtStr, createdAtStr, plannedSec, actualSec, completed)
}

func (r *SQLiteSessionRecordRepo) scanRecords(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	var records []*domain.SessionRecord
	for rows.Next() {
		var rec domain.SessionRecord
		var phase, startedAtStr, endedAtStr, createdAtStr string
		var plannedSec, actualSec, completed int

		err := rows.Scan(
			&rec.ID, &rec.CategoryID, &phase, &startedAtStr, &endedAtStr,
			&plannedSec, &actualSec, &completed, &rec.Note, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session record row: %w", err)
		}

		record, parseErr := r.populateRecord(&rec, phase, startedAtStr, endedAtStr, createdAtStr, plannedSec, actualSec, completed)
		if parseErr != nil {
			return nil, parseErr
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session records: %w", err)
	}
	return records, nil
}

// populateRecord fills in parsed fields on a SessionRecord after scanning
// raw column values.
func (r *SQLiteSessionRecordRepo) populateRecord(
	rec *domain.SessionRecord,
	phase, startedAtStr, endedAtStr, createdAtStr string,
	plannedSec, actualSec, completed int,
) (*domain.SessionRecord, error) {
	rec.Phase = domain.Phase(phase)
	rec.Planned = secondsToDuration(plannedSec)
	rec.Actual = secondsToDuration(actualSec)
	rec.Completed = intToBool(completed)

	var parseErr error
	if rec.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	if rec.EndedAt, parseErr = time.Parse(time.RFC3339, endedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing ended_at: %w", parseErr)
	}
	if rec.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return rec, nil
}
