package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/calendar-scheduler/internal/logger"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

const queueSize = 100

type Event struct {
	CompanyID uint
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// FromScope fills company and actor from the request scope.
func FromScope(scope tenant.Scope, action, entity string, entityID uint, meta any) Event {
	id := entityID
	return Event{
		CompanyID: scope.CompanyID,
		UserID:    scope.Actor(),
		Action:    action,
		Entity:    entity,
		EntityID:  &id,
		Metadata:  meta,
	}
}

// Sink persists audit events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events from a single background goroutine so
// requests never wait on, or fail because of, the audit trail.
type Dispatcher struct {
	sink  Sink
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			logger.L().Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Uint("company_id", ev.CompanyID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch enqueues ev. When the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		logger.L().Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for queued ones to be written.
// Dispatch must not be called after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
