// Package catalog holds the per-company reference data events point at:
// professionals, clients and services.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
	"github.com/BruksfildServices01/calendar-scheduler/internal/validators"
)

const (
	// ClientSearchLimit caps name searches.
	ClientSearchLimit = 50
	// ClientRecentLimit caps the unfiltered, most-recent-first listing.
	ClientRecentLimit = 20
)

type ProfessionalFilter struct {
	IncludeInactive bool
}

type ServiceFilter struct {
	ProfessionalID  *uint
	IncludeInactive bool
}

type ClientFilter struct {
	Query string
}

type Repository interface {
	ListProfessionals(ctx context.Context, scope tenant.Scope, f ProfessionalFilter) ([]models.Professional, error)
	GetProfessional(ctx context.Context, scope tenant.Scope, id uint) (*models.Professional, error)
	CreateProfessional(ctx context.Context, scope tenant.Scope, p *models.Professional) error
	UpdateProfessional(ctx context.Context, scope tenant.Scope, p *models.Professional) error

	ListClients(ctx context.Context, scope tenant.Scope, f ClientFilter) ([]models.Client, error)
	GetClient(ctx context.Context, scope tenant.Scope, id uint) (*models.Client, error)
	CreateClient(ctx context.Context, scope tenant.Scope, cl *models.Client) error
	UpdateClient(ctx context.Context, scope tenant.Scope, cl *models.Client) error

	ListServices(ctx context.Context, scope tenant.Scope, f ServiceFilter) ([]models.Service, error)
	GetService(ctx context.Context, scope tenant.Scope, id uint) (*models.Service, error)
	CreateService(ctx context.Context, scope tenant.Scope, s *models.Service) error
	UpdateService(ctx context.Context, scope tenant.Scope, s *models.Service) error
	// DeleteService refuses while any event references the service.
	DeleteService(ctx context.Context, scope tenant.Scope, id uint) error
}

// ======================================================
// Input checks
// ======================================================

func ValidateProfessional(p *models.Professional) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return httperr.Validation("name", "Campo obrigatório.")
	}
	return nil
}

// ValidateClient trims the name and normalises the phone. An empty phone is
// stored as NULL so the global uniqueness only applies to real numbers.
func ValidateClient(cl *models.Client) error {
	ve := &httperr.ValidationError{}

	cl.Name = strings.TrimSpace(cl.Name)
	if cl.Name == "" {
		ve.Add("name", "Campo obrigatório.")
	}

	if cl.Phone != nil {
		phone := validators.NormalizePhone(*cl.Phone)
		switch {
		case phone == "":
			cl.Phone = nil
		case !validators.IsPhoneValid(phone):
			ve.Add("phone", "Telefone inválido.")
		default:
			cl.Phone = &phone
		}
	}

	return ve.OrNil()
}

func ValidateService(s *models.Service) error {
	ve := &httperr.ValidationError{}

	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		ve.Add("name", "Campo obrigatório.")
	}
	if s.ProfessionalID == 0 {
		ve.Add("professional", "Campo obrigatório.")
	}
	switch {
	case s.DurationMin <= 0:
		ve.Add("duration_minutes", "A duração deve ser maior que zero.")
	case s.DurationMin > models.MaxDurationMin:
		ve.Add("duration_minutes", "A duração não pode passar de 24 horas.")
	}

	s.Value = s.Value.Round(2)
	switch {
	case s.Value.IsNegative():
		ve.Add("value", "O valor não pode ser negativo.")
	case s.Value.GreaterThan(models.MaxValue):
		ve.Add("value", "O valor excede o máximo permitido.")
	}

	return ve.OrNil()
}

// EscapeLike escapes LIKE wildcards in user input. Queries using it must
// declare ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// NewService fills the defaults for a service created without duration.
func NewService(professionalID uint, name string, durationMin *int, value decimal.Decimal) *models.Service {
	d := models.DefaultServiceDurationMin
	if durationMin != nil {
		d = *durationMin
	}
	return &models.Service{
		ProfessionalID: professionalID,
		Name:           name,
		DurationMin:    d,
		Value:          value,
		Active:         true,
	}
}
