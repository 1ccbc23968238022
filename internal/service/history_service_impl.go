package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type historyService struct {
	records    repository.SessionRecordRepo
	categories repository.CategoryRepo
}

func NewHistoryService(records repository.SessionRecordRepo, categories repository.CategoryRepo) HistoryService {
	return &historyService{records: records, categories: categories}
}

func (s *historyService) Record(ctx context.Context, r *domain.SessionRecord) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()
	return s.records.Create(ctx, r)
}

func (s *historyService) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *historyService) List(ctx context.Context, filter repository.RecordFilter) ([]*domain.SessionRecord, error) {
	return s.records.List(ctx, filter)
}

func (s *historyService) UpdateNote(ctx context.Context, id, note string) error {
	return s.records.UpdateNote(ctx, id, note)
}

func (s *historyService) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, id)
}

func (s *historyService) Summary(ctx context.Context) (*HistorySummary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Week starts Monday.
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	startOfWeek := startOfDay.AddDate(0, 0, -(weekday - 1))

	today, err := s.records.TotalFocusSince(ctx, startOfDay, "")
	if err != nil {
		return nil, err
	}
	week, err := s.records.TotalFocusSince(ctx, startOfWeek, "")
	if err != nil {
		return nil, err
	}
	totals, err := s.records.CategoryTotals(ctx, repository.RecordFilter{})
	if err != nil {
		return nil, err
	}

	return &HistorySummary{TodayFocus: today, WeekFocus: week, Categories: totals}, nil
}

var csvHeader = []string{
	"id", "category", "phase", "started_at", "ended_at",
	"planned_minutes", "actual_minutes", "completed", "note",
}

func (s *historyService) ExportCSV(ctx context.Context, w io.Writer, filter repository.RecordFilter) (int, error) {
	records, err := s.records.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	// Resolve category names once rather than per row.
	categories, err := s.categories.List(ctx)
	if err != nil {
		return 0, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		name := names[r.CategoryID]
		if name == "" {
			name = r.CategoryID
		}
		row := []string{
			r.ID,
			name,
			string(r.Phase),
			r.StartedAt.Format(time.RFC3339),
			r.EndedAt.Format(time.RFC3339),
			strconv.FormatFloat(r.Planned.Minutes(), 'f', 1, 64),
			strconv.FormatFloat(r.Actual.Minutes(), 'f', 1, 64),
			strconv.FormatBool(r.Completed),
			r.Note,
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}
	return len(records), nil
}
