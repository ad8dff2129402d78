package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultServiceDurationMin = 60
	// MaxDurationMin caps service and event durations at one day.
	MaxDurationMin = 24 * 60
)

// MaxValue is the largest amount a numeric(10,2) column stores.
var MaxValue = decimal.New(9999999999, -2)

type Service struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_services_company_professional_name" json:"company_id"`

	ProfessionalID uint         `gorm:"not null;uniqueIndex:idx_services_company_professional_name" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string          `gorm:"size:100;not null;uniqueIndex:idx_services_company_professional_name" json:"name"`
	DurationMin int             `gorm:"not null;default:60" json:"duration_minutes"`
	Value       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"value"`
	Active      bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
