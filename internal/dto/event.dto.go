package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/calendar-scheduler/internal/calendar"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

// EventRequest is the body of POST and PATCH /events. `end` is not
// accepted; it is always derived.
type EventRequest struct {
	Professional *uint            `json:"professional"`
	Client       *uint            `json:"client"`
	Service      *uint            `json:"service"`
	Start        *string          `json:"start"`
	DurationMin  *int             `json:"duration_minutes"`
	Value        *decimal.Decimal `json:"value"`
	Description  *string          `json:"description"`
	Status       *string          `json:"status"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type EventDetailDTO struct {
	ID            uint            `json:"id"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	Professional  uint            `json:"professional"`
	Client        uint            `json:"client"`
	ClientData    calendar.Client `json:"client_data"`
	Service       uint            `json:"service"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	StatusDisplay string          `json:"status_display"`
	DurationMin   int             `json:"duration_minutes"`
	Value         string          `json:"value"`

	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	CreatedBy         *uint     `json:"created_by"`
	UpdatedBy         *uint     `json:"updated_by"`
	CreatedByUsername *string   `json:"created_by_username"`
	UpdatedByUsername *string   `json:"updated_by_username"`
}

func ToEventDetail(ev *models.Event) (EventDetailDTO, error) {
	status, err := event.ParseStatus(ev.Status)
	if err != nil {
		return EventDetailDTO{}, err
	}

	return EventDetailDTO{
		ID:            ev.ID,
		Start:         ev.StartTime,
		End:           ev.EndTime,
		Professional:  ev.ProfessionalID,
		Client:        ev.ClientID,
		ClientData:    calendar.ToClient(ev.Client),
		Service:       ev.ServiceID,
		Description:   ev.Description,
		Status:        string(status),
		StatusDisplay: status.Label(),
		DurationMin:   ev.DurationMin,
		Value:         ev.Value.StringFixed(2),

		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         ev.UpdatedAt,
		CreatedBy:         ev.CreatedByID,
		UpdatedBy:         ev.UpdatedByID,
		CreatedByUsername: username(ev.CreatedBy),
		UpdatedByUsername: username(ev.UpdatedBy),
	}, nil
}

// username is the login e-mail of u.
func username(u *models.User) *string {
	if u == nil {
		return nil
	}
	return &u.Email
}
