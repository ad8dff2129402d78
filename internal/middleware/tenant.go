package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
	"github.com/BruksfildServices01/calendar-scheduler/internal/timezone"
)

const (
	ContextScope   = "tenantScope"
	ContextCompany = "company"
)

type CompanyLoader interface {
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
}

// TenantMiddleware resolves the company named by the token. Missing or
// inactive companies are rejected; otherwise the request carries a
// tenant.Scope for every downstream query.
func TenantMiddleware(companies CompanyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetUint(ContextCompanyID)
		if companyID == 0 {
			httperr.Unauthorized(c, "missing_tenant", "Usuário sem empresa vinculada.")
			c.Abort()
			return
		}

		company, err := companies.GetCompany(c.Request.Context(), companyID)
		if err != nil {
			if httperr.IsNotFound(err) {
				httperr.Unauthorized(c, "missing_tenant", "Usuário sem empresa vinculada.")
			} else {
				httperr.Respond(c, err)
			}
			c.Abort()
			return
		}

		if !company.Active {
			httperr.Forbidden(c, "company_inactive", "Empresa desativada.")
			c.Abort()
			return
		}

		c.Set(ContextCompany, company)
		c.Set(ContextScope, tenant.New(
			company.ID,
			c.GetUint(ContextUserID),
			timezone.Location(company.Timezone),
		))

		c.Next()
	}
}

// Scope returns the request's tenant scope. Without TenantMiddleware it is
// the zero Scope, which every repository rejects.
func Scope(c *gin.Context) tenant.Scope {
	if v, ok := c.Get(ContextScope); ok {
		if s, ok := v.(tenant.Scope); ok {
			return s
		}
	}
	return tenant.Scope{}
}

func Company(c *gin.Context) *models.Company {
	if v, ok := c.Get(ContextCompany); ok {
		if company, ok := v.(*models.Company); ok {
			return company
		}
	}
	return nil
}
