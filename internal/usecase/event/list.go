package event

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

type GetEvent struct {
	repo domain.Repository
}

func NewGetEvent(repo domain.Repository) *GetEvent {
	return &GetEvent{repo: repo}
}

func (uc *GetEvent) Execute(ctx context.Context, scope tenant.Scope, eventID uint) (*models.Event, error) {
	return uc.repo.GetEvent(ctx, scope, eventID)
}

// ======================================================
// LIST (window)
// ======================================================

type ListEvents struct {
	repo domain.Repository
}

func NewListEvents(repo domain.Repository) *ListEvents {
	return &ListEvents{repo: repo}
}

// Execute returns the events overlapping [start, end), optionally only
// those of the given professionals.
func (uc *ListEvents) Execute(
	ctx context.Context,
	scope tenant.Scope,
	window domain.Window,
	professionalIDs []uint,
) ([]models.Event, error) {

	return uc.repo.ListEvents(ctx, scope, domain.ListFilter{
		Window:          window,
		ProfessionalIDs: professionalIDs,
	})
}

// ======================================================
// LIST (month)
// ======================================================

type ListEventsByMonth struct {
	repo domain.Repository
}

func NewListEventsByMonth(repo domain.Repository) *ListEventsByMonth {
	return &ListEventsByMonth{repo: repo}
}

// Execute lists the calendar month in the company's timezone.
func (uc *ListEventsByMonth) Execute(
	ctx context.Context,
	scope tenant.Scope,
	year int,
	month int,
	professionalIDs []uint,
) ([]models.Event, error) {

	ve := &httperr.ValidationError{}
	if year < 1 || year > 9999 {
		ve.Add("year", "Ano inválido.")
	}
	if month < 1 || month > 12 {
		ve.Add("month", "Mês inválido.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	window := domain.MonthWindow(year, time.Month(month), scope.Loc())

	return uc.repo.ListEvents(ctx, scope, domain.ListFilter{
		Window:          window,
		ProfessionalIDs: professionalIDs,
	})
}
