package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	// Delete removes a category together with its session records in one
	// transaction.
	Delete(ctx context.Context, id string) error
}

// HistorySummary aggregates focus time for the summary view.
type HistorySummary struct {
	TodayFocus time.Duration
	WeekFocus  time.Duration
	Categories []repository.CategoryTotal
}

type HistoryService interface {
	// Record persists an engine-produced session record, assigning its ID
	// and creation timestamp.
	Record(ctx context.Context, r *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	List(ctx context.Context, filter repository.RecordFilter) ([]*domain.SessionRecord, error)
	UpdateNote(ctx context.Context, id, note string) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*HistorySummary, error)
	// ExportCSV writes records matching the filter as CSV and returns the
	// number of rows written (excluding the header).
	ExportCSV(ctx context.Context, w io.Writer, filter repository.RecordFilter) (int, error)
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}
