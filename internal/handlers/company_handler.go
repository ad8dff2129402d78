package handlers

import (

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
)

type CompanyHandler struct {
	accounts account.Repository
	audit    *audit.Dispatcher
}

func NewCompanyHandler(accounts account.Repository, d *audit.Dispatcher) *CompanyHandler {
	return &CompanyHandler{accounts: accounts, audit: d}
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.accounts.GetCompany(c.Request.Context(), middleware.Scope(c).CompanyID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, company)
}

// Update changes name and timezone. Slug and active flag are administrator
// operations and are not accepted here.
func (h *CompanyHandler) Update(c *gin.Context) {
	scope := middleware.Scope(c)

	company, err := h.accounts.GetCompany(c.Request.Context(), scope.CompanyID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Timezone != nil {
		company.Timezone = *req.Timezone
	}
	if err := account.ValidateCompany(company); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.accounts.UpdateCompany(c.Request.Context(), scope, company); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "company_updated", "company", company.ID, gin.H{
		"name":     company.Name,
		"timezone": company.Timezone,
	})

	httpresp.OK(c, company)
}
