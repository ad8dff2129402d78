package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

// --------- Requests ---------

type ProfessionalRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

type ClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type ServiceRequest struct {
	Professional *uint            `json:"professional"`
	Name         *string          `json:"name"`
	DurationMin  *int             `json:"duration_minutes"`
	Value        *decimal.Decimal `json:"value"`
	Active       *bool            `json:"active"`
}

// --------- Responses ---------

type ProfessionalDTO struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	HasUserAccount bool   `json:"has_user_account"`
}

func ToProfessional(p models.Professional) ProfessionalDTO {
	return ProfessionalDTO{
		ID:             p.ID,
		Name:           p.Name,
		Active:         p.Active,
		HasUserAccount: p.HasUserAccount(),
	}
}

type ServiceDTO struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	DurationMin      int    `json:"duration_minutes"`
	Value            string `json:"value"`
	Professional     uint   `json:"professional"`
	ProfessionalName string `json:"professional_name"`
	Active           bool   `json:"active"`
}

func ToService(s models.Service) ServiceDTO {
	return ServiceDTO{
		ID:               s.ID,
		Name:             s.Name,
		DurationMin:      s.DurationMin,
		Value:            s.Value.StringFixed(2),
		Professional:     s.ProfessionalID,
		ProfessionalName: s.Professional.Name,
		Active:           s.Active,
	}
}

// Map converts every element of in with fn.
func Map[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
