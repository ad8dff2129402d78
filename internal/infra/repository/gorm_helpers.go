package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

// Unique index name → exposed field, for errors that slip past the
// pre-checks (concurrent inserts).
var uniqueConstraints = map[string]string{
	"idx_professionals_company_name":         "name",
	"idx_clients_company_name":               "name",
	"idx_clients_phone":                      "phone",
	"idx_services_company_professional_name": "name",
	"idx_companies_slug":                     "slug",
	"idx_users_email":                        "email",
	"idx_users_professional_id":              "professional",
	"fk_events_service":                      "service",
}

// scoped starts a query bound to ctx and the scope's company.
func scoped(ctx context.Context, db *gorm.DB, scope tenant.Scope) (*gorm.DB, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return db.WithContext(ctx).Where("company_id = ?", scope.CompanyID), nil
}

// notFound maps gorm.ErrRecordNotFound onto the domain error.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr(entity)
	}
	return err
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	return httperr.Conflicting(err, uniqueConstraints)
}

// exists runs a COUNT over q and reports whether any row matched.
func exists(q *gorm.DB) (bool, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// keepInactive persists active=false after a Create, which gorm would
// otherwise replace with the column default.
func keepInactive(ctx context.Context, db *gorm.DB, model any, active bool) error {
	if active {
		return nil
	}
	return db.WithContext(ctx).Model(model).Update("active", false).Error
}
