package models

import "time"

// Client has no login; it belongs to exactly one company.
type Client struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_clients_company_name" json:"company_id"`

	Name string `gorm:"size:100;not null;uniqueIndex:idx_clients_company_name" json:"name"`
	// Phone is unique across all companies when present.
	Phone *string `gorm:"size:20;uniqueIndex" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
