package event

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

const msgRequired = "Campo obrigatório."

// Input is a proposed event mutation. Nil means "not supplied".
// There is deliberately no End field.
type Input struct {
	ProfessionalID *uint
	ClientID       *uint
	ServiceID      *uint
	Start          *time.Time
	DurationMin    *int
	Value          *decimal.Decimal
}

// Attrs is the normalised attribute set produced by validation.
type Attrs struct {
	Professional *models.Professional
	Client       *models.Client
	Service      *models.Service

	Start       time.Time
	End         time.Time
	DurationMin int
	Value       decimal.Decimal
}

// Apply copies the derived attributes onto ev. Audit fields, status and
// description are left to the caller.
func (a *Attrs) Apply(ev *models.Event) {
	ev.CompanyID = a.Professional.CompanyID
	ev.ProfessionalID = a.Professional.ID
	ev.ClientID = a.Client.ID
	ev.ServiceID = a.Service.ID
	ev.StartTime = a.Start
	ev.EndTime = a.End
	ev.DurationMin = a.DurationMin
	ev.Value = a.Value

	ev.Professional = *a.Professional
	ev.Client = *a.Client
	ev.Service = *a.Service
}

type Validator struct {
	resolver Resolver
}

func NewValidator(resolver Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate checks required fields, resolves references in the caller's
// company and derives duration, value and end.
func (v *Validator) Validate(
	ctx context.Context,
	scope tenant.Scope,
	in Input,
) (*Attrs, error) {

	if err := scope.Validate(); err != nil {
		return nil, err
	}

	if err := CheckRequired(in); err != nil {
		return nil, err
	}

	prof, err := v.resolver.GetProfessional(ctx, scope, *in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	client, err := v.resolver.GetClient(ctx, scope, *in.ClientID)
	if err != nil {
		return nil, err
	}

	svc, err := v.resolver.GetService(ctx, scope, *in.ServiceID)
	if err != nil {
		return nil, err
	}

	return Derive(in, prof, client, svc, scope.Loc())
}

// CheckRequired reports every missing required field in one error.
func CheckRequired(in Input) error {
	ve := &httperr.ValidationError{}
	if in.ProfessionalID == nil || *in.ProfessionalID == 0 {
		ve.Add("professional", msgRequired)
	}
	if in.ClientID == nil || *in.ClientID == 0 {
		ve.Add("client", msgRequired)
	}
	if in.ServiceID == nil || *in.ServiceID == 0 {
		ve.Add("service", msgRequired)
	}
	if in.Start == nil || in.Start.IsZero() {
		ve.Add("start", msgRequired)
	}
	return ve.OrNil()
}

// Derive fills duration and value from the service when absent, computes
// end and enforces that the service belongs to the professional.
func Derive(
	in Input,
	prof *models.Professional,
	client *models.Client,
	svc *models.Service,
	loc *time.Location,
) (*Attrs, error) {

	if err := CheckRequired(in); err != nil {
		return nil, err
	}

	duration := svc.DurationMin
	if in.DurationMin != nil {
		duration = *in.DurationMin
	}

	value := svc.Value
	if in.Value != nil {
		value = *in.Value
	}
	value = value.Round(2)

	ve := &httperr.ValidationError{}
	switch {
	case duration <= 0:
		ve.Add("duration_minutes", "A duração deve ser maior que zero.")
	case duration > models.MaxDurationMin:
		ve.Add("duration_minutes", "A duração não pode passar de 24 horas.")
	}
	switch {
	case value.IsNegative():
		ve.Add("value", "O valor não pode ser negativo.")
	case value.GreaterThan(models.MaxValue):
		ve.Add("value", "O valor excede o máximo permitido.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if svc.ProfessionalID != prof.ID {
		return nil, httperr.Constraint(
			"service_professional_mismatch",
			"service",
			fmt.Sprintf("O serviço %q não pertence ao profissional %q.", svc.Name, prof.Name),
		)
	}

	start := *in.Start
	if loc != nil {
		start = start.In(loc)
	}

	return &Attrs{
		Professional: prof,
		Client:       client,
		Service:      svc,
		Start:        start,
		End:          start.Add(time.Duration(duration) * time.Minute),
		DurationMin:  duration,
		Value:        value,
	}, nil
}

// MergeUpdate overlays patch on the stored event. Unset fields keep their
// stored value, except that a service change without an explicit duration
// or value re-derives them from the new service.
func MergeUpdate(current *models.Event, patch Input) Input {
	profID := current.ProfessionalID
	clientID := current.ClientID
	serviceID := current.ServiceID
	start := current.StartTime
	duration := current.DurationMin
	value := current.Value

	merged := Input{
		ProfessionalID: &profID,
		ClientID:       &clientID,
		ServiceID:      &serviceID,
		Start:          &start,
		DurationMin:    &duration,
		Value:          &value,
	}

	if patch.ProfessionalID != nil {
		merged.ProfessionalID = patch.ProfessionalID
	}
	if patch.ClientID != nil {
		merged.ClientID = patch.ClientID
	}
	if patch.Start != nil {
		merged.Start = patch.Start
	}

	serviceChanged := patch.ServiceID != nil && *patch.ServiceID != current.ServiceID
	if patch.ServiceID != nil {
		merged.ServiceID = patch.ServiceID
	}

	switch {
	case patch.DurationMin != nil:
		merged.DurationMin = patch.DurationMin
	case serviceChanged:
		merged.DurationMin = nil
	}

	switch {
	case patch.Value != nil:
		merged.Value = patch.Value
	case serviceChanged:
		merged.Value = nil
	}

	return merged
}
