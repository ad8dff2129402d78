package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;index" json:"company_id"`

	ProfessionalID uint         `gorm:"not null;index:idx_events_start_professional,priority:2" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	StartTime time.Time `gorm:"not null;index:idx_events_start_professional,priority:1" json:"start"`
	// EndTime is always StartTime + DurationMin; it is never taken from input.
	EndTime time.Time `gorm:"not null" json:"end"`

	Status      string          `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	DurationMin int             `gorm:"not null" json:"duration_minutes"`
	Value       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"value"`
	Description string          `gorm:"type:text" json:"description"`

	CreatedAt   time.Time `json:"created_at"`
	CreatedByID *uint     `json:"created_by"`
	CreatedBy   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedByID *uint     `json:"updated_by"`
	UpdatedBy   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
