// Package tenant carries the caller's company explicitly through every
// read and write. Nothing in the repository layer looks up the tenant from
// ambient state.
package tenant

import (
	"errors"
	"time"
)

var ErrNoTenant = errors.New("tenant scope is required")

type Scope struct {
	CompanyID uint
	UserID    uint
	Location  *time.Location
}

func New(companyID, userID uint, loc *time.Location) Scope {
	return Scope{CompanyID: companyID, UserID: userID, Location: loc}
}

// Validate refuses scopes without a company.
func (s Scope) Validate() error {
	if s.CompanyID == 0 {
		return ErrNoTenant
	}
	return nil
}

// Actor returns the acting user id for audit stamps, nil when unknown.
func (s Scope) Actor() *uint {
	if s.UserID == 0 {
		return nil
	}
	id := s.UserID
	return &id
}

func (s Scope) Loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
