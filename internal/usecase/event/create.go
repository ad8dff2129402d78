package event

import (
	"context"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/metrics"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

// ======================================================
// INPUT
// ======================================================

type CreateEventInput struct {
	Scope tenant.Scope

	Fields      domain.Input
	Status      *string
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type CreateEvent struct {
	repo      domain.Repository
	validator *domain.Validator
	audit     *audit.Dispatcher
	metrics   *metrics.Metrics
}

func NewCreateEvent(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CreateEvent {
	return &CreateEvent{
		repo:      repo,
		validator: domain.NewValidator(repo),
		audit:     audit,
		metrics:   m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateEvent) Execute(
	ctx context.Context,
	in CreateEventInput,
) (*models.Event, error) {

	// --------------------------------------------------
	// 1. Referências, duração, valor e término
	// --------------------------------------------------
	attrs, err := uc.validator.Validate(ctx, in.Scope, in.Fields)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Status (inicial quando ausente)
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != nil {
		if status, err = domain.ParseStatus(*in.Status); err != nil {
			return nil, err
		}
	}

	ev := &models.Event{
		Status:      string(status),
		Description: in.Description,
	}
	attrs.Apply(ev)

	// --------------------------------------------------
	// 3. Persistência (carimba created_by / updated_by)
	// --------------------------------------------------
	if err := uc.repo.CreateEvent(ctx, in.Scope, ev); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.FromScope(in.Scope, "event_created", "event", ev.ID, map[string]any{
		"professional_id": ev.ProfessionalID,
		"client_id":       ev.ClientID,
		"service_id":      ev.ServiceID,
		"start":           ev.StartTime,
	}))
	uc.metrics.EventWritten("created")

	return ev, nil
}
