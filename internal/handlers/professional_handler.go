package handlers

import (

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/calendar"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/calendar-scheduler/internal/dto"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

type ProfessionalHandler struct {
	catalog catalog.Repository
	audit   *audit.Dispatcher
}

func NewProfessionalHandler(repo catalog.Repository, d *audit.Dispatcher) *ProfessionalHandler {
	return &ProfessionalHandler{catalog: repo, audit: d}
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	list, err := h.catalog.ListProfessionals(c.Request.Context(), middleware.Scope(c), catalog.ProfessionalFilter{
		IncludeInactive: queryBool(c, "include_inactive"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Map(list, dto.ToProfessional))
}

// Resources lists active professionals as calendar columns.
func (h *ProfessionalHandler) Resources(c *gin.Context) {
	list, err := h.catalog.ListProfessionals(c.Request.Context(), middleware.Scope(c), catalog.ProfessionalFilter{})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, calendar.ToResources(list))
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.catalog.GetProfessional(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.ToProfessional(*p))
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	scope := middleware.Scope(c)

	var req dto.ProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	p := models.Professional{Active: true}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := catalog.ValidateProfessional(&p); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.catalog.CreateProfessional(c.Request.Context(), scope, &p); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "professional_created", "professional", p.ID, gin.H{"name": p.Name})

	httpresp.Created(c, dto.ToProfessional(p))
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	scope := middleware.Scope(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	p, err := h.catalog.GetProfessional(ctx, scope, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.ProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := catalog.ValidateProfessional(p); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.catalog.UpdateProfessional(ctx, scope, p); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "professional_updated", "professional", p.ID, gin.H{
		"name":   p.Name,
		"active": p.Active,
	})

	httpresp.OK(c, dto.ToProfessional(*p))
}
