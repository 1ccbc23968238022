package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// RecordFilter narrows session record queries. Zero values mean "no
// constraint"; breaks are excluded unless IncludeBreaks is set, matching
// how history is normally read.
type RecordFilter struct {
	CategoryID    string
	Since         *time.Time
	Until         *time.Time
	IncludeBreaks bool
	Limit         int
}

// CategoryTotal aggregates focus time and session count for one category.
type CategoryTotal struct {
	Category   domain.Category
	TotalFocus time.Duration
	Sessions   int
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type SessionRecordRepo interface {
	Create(ctx context.Context, r *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]*domain.SessionRecord, error)
	UpdateNote(ctx context.Context, id, note string) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
	TotalFocusSince(ctx context.Context, since time.Time, categoryID string) (time.Duration, error)
	CategoryTotals(ctx context.Context, filter RecordFilter) ([]CategoryTotal, error)
}

type SettingsRepo interface {
	Load(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}
