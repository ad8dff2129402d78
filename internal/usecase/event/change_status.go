package event

import (
	"context"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/metrics"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

// ChangeEventStatus replaces the status. Every transition is allowed.
type ChangeEventStatus struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewChangeEventStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *ChangeEventStatus {
	return &ChangeEventStatus{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

func (uc *ChangeEventStatus) Execute(
	ctx context.Context,
	scope tenant.Scope,
	eventID uint,
	raw string,
) (*models.Event, error) {

	status, err := domain.ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	ev, err := uc.repo.GetEvent(ctx, scope, eventID)
	if err != nil {
		return nil, err
	}
	previous := ev.Status

	if err := uc.repo.SetEventStatus(ctx, scope, eventID, status); err != nil {
		return nil, err
	}

	ev, err = uc.repo.GetEvent(ctx, scope, eventID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.FromScope(scope, "event_status_changed", "event", ev.ID, map[string]string{
		"from": previous,
		"to":   ev.Status,
	}))
	uc.metrics.EventWritten("status_changed")

	return ev, nil
}
