package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/timer"
)

var errQueueFull = errors.New("record queue full, session record dropped")

// Recorder is the persistence sink: it forwards PhaseCompleted records to
// the history service on a dedicated goroutine so slow storage can never
// stall tick delivery. Break records are dropped unless logBreaks is set.
type Recorder struct {
	history   service.HistoryService
	logBreaks bool
	onError   func(error)

	queue chan domain.SessionRecord
	done  chan struct{}
	once  sync.Once
}

// NewRecorder creates a Recorder and starts its worker. onError receives
// persistence failures and queue overflows; nil means they are discarded.
func NewRecorder(history service.HistoryService, logBreaks bool, onError func(error)) *Recorder {
	r := &Recorder{
		history:   history,
		logBreaks: logBreaks,
		onError:   onError,
		queue:     make(chan domain.SessionRecord, 16),
		done:      make(chan struct{}),
	}
	go r.worker()
	return r
}

func (r *Recorder) HandleEvent(ev timer.Event) {
	if ev.Type != timer.EventPhaseCompleted || ev.Record == nil {
		return
	}
	if ev.Record.Phase == domain.PhaseBreak && !r.logBreaks {
		return
	}
	select {
	case r.queue <- *ev.Record:
	default:
		r.report(errQueueFull)
	}
}

// Close stops accepting records and blocks until queued records are
// persisted.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.queue)
		<-r.done
	})
}

func (r *Recorder) worker() {
	defer close(r.done)
	for rec := range r.queue {
		rec := rec
		if err := r.history.Record(context.Background(), &rec); err != nil {
			r.report(err)
		}
	}
}

func (r *Recorder) report(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}
