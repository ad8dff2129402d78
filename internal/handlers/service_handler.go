package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/calendar-scheduler/internal/dto"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
)

type ServiceHandler struct {
	catalog catalog.Repository
	audit   *audit.Dispatcher
}

func NewServiceHandler(repo catalog.Repository, d *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{catalog: repo, audit: d}
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	f := catalog.ServiceFilter{IncludeInactive: queryBool(c, "include_inactive")}

	if raw := c.Query("professional"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.Respond(c, httperr.Validation("professional", "Identificador inválido."))
			return
		}
		pid := uint(id)
		f.ProfessionalID = &pid
	}

	services, err := h.catalog.ListServices(c.Request.Context(), middleware.Scope(c), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Map(services, dto.ToService))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, err := h.catalog.GetService(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.ToService(*s))
}

func (h *ServiceHandler) Create(c *gin.Context) {
	scope := middleware.Scope(c)

	var req dto.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		profID uint
		name   string
		value  decimal.Decimal
	)
	if req.Professional != nil {
		profID = *req.Professional
	}
	if req.Name != nil {
		name = *req.Name
	}
	if req.Value != nil {
		value = *req.Value
	}

	s := catalog.NewService(profID, name, req.DurationMin, value)
	if req.Active != nil {
		s.Active = *req.Active
	}
	if err := catalog.ValidateService(s); err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.catalog.CreateService(ctx, scope, s); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "service_created", "service", s.ID, gin.H{
		"name":            s.Name,
		"professional_id": s.ProfessionalID,
	})

	h.respond(c, http.StatusCreated, s.ID)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	scope := middleware.Scope(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	s, err := h.catalog.GetService(ctx, scope, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Professional != nil {
		s.ProfessionalID = *req.Professional
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.DurationMin != nil {
		s.DurationMin = *req.DurationMin
	}
	if req.Value != nil {
		s.Value = *req.Value
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	if err := catalog.ValidateService(s); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.catalog.UpdateService(ctx, scope, s); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "service_updated", "service", s.ID, gin.H{
		"name":   s.Name,
		"active": s.Active,
	})

	h.respond(c, http.StatusOK, s.ID)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	scope := middleware.Scope(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteService(c.Request.Context(), scope, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "service_deleted", "service", id, nil)

	httpresp.NoContent(c)
}

// respond reloads the service so professional_name reflects the stored row.
func (h *ServiceHandler) respond(c *gin.Context, status int, id uint) {
	s, err := h.catalog.GetService(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(status, dto.ToService(*s))
}
