package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/calendar-scheduler/internal/dto"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

type ClientHandler struct {
	catalog catalog.Repository
	audit   *audit.Dispatcher
}

func NewClientHandler(repo catalog.Repository, d *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{catalog: repo, audit: d}
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List searches by name with ?q= (alias ?search=). Without a query it
// returns the most recent clients.
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		query = strings.TrimSpace(c.Query("search"))
	}

	clients, err := h.catalog.ListClients(c.Request.Context(), middleware.Scope(c), catalog.ClientFilter{Query: query})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	httpresp.OK(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cl, err := h.catalog.GetClient(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Create(c *gin.Context) {
	scope := middleware.Scope(c)

	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	var cl models.Client
	if req.Name != nil {
		cl.Name = *req.Name
	}
	cl.Phone = req.Phone
	if err := catalog.ValidateClient(&cl); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.catalog.CreateClient(c.Request.Context(), scope, &cl); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "client_created", "client", cl.ID, gin.H{"name": cl.Name})

	httpresp.Created(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	scope := middleware.Scope(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cl, err := h.catalog.GetClient(ctx, scope, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		cl.Name = *req.Name
	}
	if req.Phone != nil {
		cl.Phone = req.Phone
	}
	if err := catalog.ValidateClient(cl); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.catalog.UpdateClient(ctx, scope, cl); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "client_updated", "client", cl.ID, gin.H{"name": cl.Name})

	httpresp.OK(c, cl)
}
