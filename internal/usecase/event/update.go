package event

import (
	"context"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/metrics"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

// UpdateEventInput is a partial update: nil fields keep their stored value.
type UpdateEventInput struct {
	Scope   tenant.Scope
	EventID uint

	Fields      domain.Input
	Status      *string
	Description *string
}

type UpdateEvent struct {
	repo      domain.Repository
	validator *domain.Validator
	audit     *audit.Dispatcher
	metrics   *metrics.Metrics
}

func NewUpdateEvent(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *UpdateEvent {
	return &UpdateEvent{
		repo:      repo,
		validator: domain.NewValidator(repo),
		audit:     audit,
		metrics:   m,
	}
}

func (uc *UpdateEvent) Execute(
	ctx context.Context,
	in UpdateEventInput,
) (*models.Event, error) {

	current, err := uc.repo.GetEvent(ctx, in.Scope, in.EventID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Campos ausentes mantêm o valor salvo; o término é
	// sempre recalculado.
	// --------------------------------------------------
	merged := domain.MergeUpdate(current, in.Fields)

	attrs, err := uc.validator.Validate(ctx, in.Scope, merged)
	if err != nil {
		return nil, err
	}
	attrs.Apply(current)

	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		current.Status = string(status)
	}
	if in.Description != nil {
		current.Description = *in.Description
	}

	if err := uc.repo.UpdateEvent(ctx, in.Scope, current); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.FromScope(in.Scope, "event_updated", "event", current.ID, nil))
	uc.metrics.EventWritten("updated")

	return uc.repo.GetEvent(ctx, in.Scope, current.ID)
}
