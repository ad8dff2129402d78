// Package account covers companies (tenants) and the users who log into
// them.
package account

import (
	"context"
	"regexp"
	"strings"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
	"github.com/BruksfildServices01/calendar-scheduler/internal/timezone"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Repository interface {
	// CreateCompany inserts the company and, when owner is not nil, its
	// first user in the same transaction.
	CreateCompany(ctx context.Context, company *models.Company, owner *models.User) error
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	UpdateCompany(ctx context.Context, scope tenant.Scope, company *models.Company) error
	SetCompanyActive(ctx context.Context, slug string, active bool) error

	// FindUserByEmail is unscoped: login happens before a tenant is known.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, scope tenant.Scope, id uint) (*models.User, error)
	ListUsers(ctx context.Context, scope tenant.Scope) ([]models.User, error)
	CreateUser(ctx context.Context, scope tenant.Scope, user *models.User) error
	// LinkProfessional sets or clears the user's professional. A professional
	// can be linked to at most one user.
	LinkProfessional(ctx context.Context, scope tenant.Scope, userID uint, professionalID *uint) error
}

// ValidateCompany normalises slug and timezone and checks required fields.
func ValidateCompany(c *models.Company) error {
	ve := &httperr.ValidationError{}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		ve.Add("name", "Campo obrigatório.")
	}

	c.Slug = strings.ToLower(strings.TrimSpace(c.Slug))
	if !slugPattern.MatchString(c.Slug) {
		ve.Add("slug", "Use apenas letras minúsculas, números e hífens.")
	}

	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = timezone.DefaultTimezone
	}
	if !timezone.IsValid(c.Timezone) {
		ve.Add("timezone", "Fuso horário inválido.")
	}

	return ve.OrNil()
}

func ValidateUser(u *models.User) error {
	ve := &httperr.ValidationError{}

	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		ve.Add("name", "Campo obrigatório.")
	}

	u.Email = NormalizeEmail(u.Email)
	if !strings.Contains(u.Email, "@") {
		ve.Add("email", "E-mail inválido.")
	}

	switch u.Role {
	case "":
		u.Role = models.RoleStaff
	case models.RoleOwner, models.RoleStaff:
	default:
		ve.Add("role", "Perfil inválido.")
	}

	return ve.OrNil()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
