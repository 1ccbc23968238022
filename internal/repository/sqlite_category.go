package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo. Accepts either a
// *sql.DB or a transaction.
func NewSQLiteCategoryRepo(dbtx db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: dbtx}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (id, name, focus_minutes, break_minutes, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.FocusMinutes,
		c.BreakMinutes,
		c.Color,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", c.Name, ErrDuplicate)
		}
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT id, name, focus_minutes, break_minutes, color, created_at
		FROM categories WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanCategory(row)
}

func (r *SQLiteCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT id, name, focus_minutes, break_minutes, color, created_at
		FROM categories WHERE name = ? COLLATE NOCASE`
	row := r.db.QueryRowContext(ctx, query, name)
	return r.scanCategory(row)
}

func (r *SQLiteCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT id, name, focus_minutes, break_minutes, color, created_at
		FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.Name, &c.FocusMinutes, &c.BreakMinutes, &c.Color, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name = ?, focus_minutes = ?, break_minutes = ?, color = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.FocusMinutes, c.BreakMinutes, c.Color, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", c.Name, ErrDuplicate)
		}
		return fmt.Errorf("updating category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteCategoryRepo) scanCategory(row *sql.Row) (*domain.Category, error) {
	var c domain.Category
	var createdAtStr string

	err := row.Scan(&c.ID, &c.Name, &c.FocusMinutes, &c.BreakMinutes, &c.Color, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}

	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}
