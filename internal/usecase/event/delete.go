package event

import (
	"context"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/metrics"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

type DeleteEvent struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewDeleteEvent(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *DeleteEvent {
	return &DeleteEvent{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

func (uc *DeleteEvent) Execute(ctx context.Context, scope tenant.Scope, eventID uint) error {
	if err := uc.repo.DeleteEvent(ctx, scope, eventID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.FromScope(scope, "event_deleted", "event", eventID, nil))
	uc.metrics.EventWritten("deleted")
	return nil
}
