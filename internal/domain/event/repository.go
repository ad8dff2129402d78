package event

import (
	"context"

	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

// Resolver looks up the rows an event references, inside the caller's
// company. Ids owned by another company resolve as not found.
type Resolver interface {
	GetProfessional(ctx context.Context, scope tenant.Scope, id uint) (*models.Professional, error)
	GetClient(ctx context.Context, scope tenant.Scope, id uint) (*models.Client, error)
	GetService(ctx context.Context, scope tenant.Scope, id uint) (*models.Service, error)
}

type Repository interface {
	Resolver

	// CreateEvent stamps created_by and updated_by from scope.
	CreateEvent(ctx context.Context, scope tenant.Scope, ev *models.Event) error

	// UpdateEvent stamps updated_by from scope and leaves created_by alone.
	UpdateEvent(ctx context.Context, scope tenant.Scope, ev *models.Event) error

	// SetEventStatus writes only the status and updated_by.
	SetEventStatus(ctx context.Context, scope tenant.Scope, id uint, status Status) error

	GetEvent(ctx context.Context, scope tenant.Scope, id uint) (*models.Event, error)

	DeleteEvent(ctx context.Context, scope tenant.Scope, id uint) error

	// ListEvents returns events overlapping filter.Window, with professional,
	// client and service preloaded.
	ListEvents(ctx context.Context, scope tenant.Scope, filter ListFilter) ([]models.Event, error)
}
