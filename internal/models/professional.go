package models

import "time"

type Professional struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_professionals_company_name" json:"company_id"`

	Name   string `gorm:"size:100;not null;uniqueIndex:idx_professionals_company_name" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	UserAccount *User `gorm:"foreignKey:ProfessionalID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) HasUserAccount() bool {
	return p.UserAccount != nil
}
