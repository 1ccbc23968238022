package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryHistory is an in-memory HistoryService capturing Record calls.
type memoryHistory struct {
	mu      sync.Mutex
	records []domain.SessionRecord
	err     error
}

func (h *memoryHistory) Record(ctx context.Context, r *domain.SessionRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, *r)
	return nil
}

func (h *memoryHistory) all() []domain.SessionRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.SessionRecord(nil), h.records...)
}

func (h *memoryHistory) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	return nil, repository.ErrNotFound
}

func (h *memoryHistory) List(ctx context.Context, filter repository.RecordFilter) ([]*domain.SessionRecord, error) {
	return nil, nil
}

func (h *memoryHistory) UpdateNote(ctx context.Context, id, note string) error { return nil }
func (h *memoryHistory) Delete(ctx context.Context, id string) error           { return nil }

func (h *memoryHistory) Summary(ctx context.Context) (*service.HistorySummary, error) {
	return nil, nil
}

func (h *memoryHistory) ExportCSV(ctx context.Context, w io.Writer, filter repository.RecordFilter) (int, error) {
	return 0, nil
}

func completedEvent(phase domain.Phase) timer.Event {
	now := time.Now().UTC()
	return timer.Event{
		Type:  timer.EventPhaseCompleted,
		Phase: phase,
		Record: &domain.SessionRecord{
			CategoryID: "cat-1",
			Phase:      phase,
			StartedAt:  now.Add(-25 * time.Minute),
			EndedAt:    now,
			Planned:    25 * time.Minute,
			Actual:     25 * time.Minute,
			Completed:  true,
		},
		At: now,
	}
}

func TestRecorder_PersistsFocusRecords(t *testing.T) {
	history := &memoryHistory{}
	rec := NewRecorder(history, false, nil)

	rec.HandleEvent(completedEvent(domain.PhaseFocus))
	rec.Close()

	records := history.all()
	require.Len(t, records, 1)
	assert.Equal(t, domain.PhaseFocus, records[0].Phase)
}

func TestRecorder_DropsBreaksUnlessEnabled(t *testing.T) {
	history := &memoryHistory{}
	rec := NewRecorder(history, false, nil)
	rec.HandleEvent(completedEvent(domain.PhaseBreak))
	rec.Close()
	assert.Empty(t, history.all())

	history = &memoryHistory{}
	rec = NewRecorder(history, true, nil)
	rec.HandleEvent(completedEvent(domain.PhaseBreak))
	rec.Close()
	require.Len(t, history.all(), 1)
	assert.Equal(t, domain.PhaseBreak, history.all()[0].Phase)
}

func TestRecorder_IgnoresNonCompletionEvents(t *testing.T) {
	history := &memoryHistory{}
	rec := NewRecorder(history, true, nil)

	rec.HandleEvent(timer.Event{Type: timer.EventTick, Phase: domain.PhaseFocus})
	rec.HandleEvent(timer.Event{Type: timer.EventPhaseStarted, Phase: domain.PhaseFocus})
	rec.HandleEvent(timer.Event{Type: timer.EventPhaseCompleted, Record: nil})
	rec.Close()

	assert.Empty(t, history.all())
}

func TestRecorder_ReportsPersistenceFailure(t *testing.T) {
	boom := errors.New("disk full")
	history := &memoryHistory{err: boom}

	var mu sync.Mutex
	var got []error
	rec := NewRecorder(history, false, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, err)
	})

	rec.HandleEvent(completedEvent(domain.PhaseFocus))
	rec.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], boom)
}

func TestChannelSink_DeliversAndDrops(t *testing.T) {
	sink := NewChannelSink(2)

	sink.HandleEvent(timer.Event{Type: timer.EventTick})
	sink.HandleEvent(timer.Event{Type: timer.EventPaused})
	// Buffer full: dropped, not blocked
	sink.HandleEvent(timer.Event{Type: timer.EventResumed})

	assert.Equal(t, timer.EventTick, (<-sink.Events()).Type)
	assert.Equal(t, timer.EventPaused, (<-sink.Events()).Type)

	sink.Close()
	_, open := <-sink.Events()
	assert.False(t, open)
}
