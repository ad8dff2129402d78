package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/dto"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/timezone"
	ucEvent "github.com/BruksfildServices01/calendar-scheduler/internal/usecase/event"
)

// ======================================================
// HANDLER
// ======================================================

type EventHandler struct {
	createUC  *ucEvent.CreateEvent
	updateUC  *ucEvent.UpdateEvent
	statusUC  *ucEvent.ChangeEventStatus
	deleteUC  *ucEvent.DeleteEvent
	getUC     *ucEvent.GetEvent
	listUC    *ucEvent.ListEvents
	byMonthUC *ucEvent.ListEventsByMonth
}

func NewEventHandler(
	createUC *ucEvent.CreateEvent,
	updateUC *ucEvent.UpdateEvent,
	statusUC *ucEvent.ChangeEventStatus,
	deleteUC *ucEvent.DeleteEvent,
	getUC *ucEvent.GetEvent,
	listUC *ucEvent.ListEvents,
	byMonthUC *ucEvent.ListEventsByMonth,
) *EventHandler {
	return &EventHandler{
		createUC:  createUC,
		updateUC:  updateUC,
		statusUC:  statusUC,
		deleteUC:  deleteUC,
		getUC:     getUC,
		listUC:    listUC,
		byMonthUC: byMonthUC,
	}
}

// ======================================================
// CALENDAR FEED
// ======================================================

// List returns calendar entries overlapping ?start=&end=, optionally for
// the professionals named by ?professional=.
func (h *EventHandler) List(c *gin.Context) {
	scope := middleware.Scope(c)
	loc := scope.Loc()

	ve := &httperr.ValidationError{}

	start, err := queryTime(c, "start", loc)
	if err != nil {
		ve.Add("start", "Data/hora inválida.")
	}
	end, err := queryTime(c, "end", loc)
	if err != nil {
		ve.Add("end", "Data/hora inválida.")
	}
	professionals, err := queryIDs(c, "professional")
	if err != nil {
		ve.Add("professional", "Identificador inválido.")
	}
	if err := ve.OrNil(); err != nil {
		httperr.Respond(c, err)
		return
	}

	window := domain.Window{Start: start, End: end}
	if err := window.Validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	events, err := h.listUC.Execute(c.Request.Context(), scope, window, professionals)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respondEntries(c, events, nil)
}

func (h *EventHandler) ListByMonth(c *gin.Context) {
	scope := middleware.Scope(c)

	yearStr := strings.TrimSpace(c.Query("year"))
	monthStr := strings.TrimSpace(c.Query("month"))

	ve := &httperr.ValidationError{}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		ve.Add("year", "Ano inválido.")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		ve.Add("month", "Mês inválido.")
	}
	professionals, err := queryIDs(c, "professional")
	if err != nil {
		ve.Add("professional", "Identificador inválido.")
	}
	if err := ve.OrNil(); err != nil {
		httperr.Respond(c, err)
		return
	}

	events, err := h.byMonthUC.Execute(c.Request.Context(), scope, year, month, professionals)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.respondEntries(c, events, gin.H{"year": year, "month": month})
}

// respondEntries renders events as calendar entries. With an envelope the
// entries go under "events"; otherwise the bare list is returned.
func (h *EventHandler) respondEntries(c *gin.Context, events []models.Event, envelope gin.H) {
	entries, err := calendar.ToEntries(events)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if envelope == nil {
		httpresp.OK(c, entries)
		return
	}
	envelope["events"] = entries
	httpresp.OK(c, envelope)
}

func (h *EventHandler) Statuses(c *gin.Context) {
	httpresp.OK(c, domain.Choices())
}

// ======================================================
// DETAIL
// ======================================================

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ev, err := h.getUC.Execute(c.Request.Context(), middleware.Scope(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, ev)
}

// ======================================================
// WRITES
// ======================================================

func (h *EventHandler) Create(c *gin.Context) {
	scope := middleware.Scope(c)

	var req dto.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	fields, err := eventInput(req, scope.Loc())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	in := ucEvent.CreateEventInput{
		Scope:  scope,
		Fields: fields,
		Status: req.Status,
	}
	if req.Description != nil {
		in.Description = *req.Description
	}

	ctx := c.Request.Context()
	created, err := h.createUC.Execute(ctx, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	// reload for the creator/editor usernames
	ev, err := h.getUC.Execute(ctx, scope, created.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.respondDetail(c, http.StatusCreated, ev)
}

func (h *EventHandler) Update(c *gin.Context) {
	scope := middleware.Scope(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	fields, err := eventInput(req, scope.Loc())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ev, err := h.updateUC.Execute(c.Request.Context(), ucEvent.UpdateEventInput{
		Scope:       scope,
		EventID:     id,
		Fields:      fields,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, ev)
}

func (h *EventHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("status", "Campo obrigatório."))
		return
	}

	ev, err := h.statusUC.Execute(c.Request.Context(), middleware.Scope(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, ev)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.Scope(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *EventHandler) respondDetail(c *gin.Context, status int, ev *models.Event) {
	out, err := dto.ToEventDetail(ev)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(status, out)
}

// eventInput converts the request body into validator input. A naive
// start is wall-clock time in the company timezone.
func eventInput(req dto.EventRequest, loc *time.Location) (domain.Input, error) {
	in := domain.Input{
		ProfessionalID: req.Professional,
		ClientID:       req.Client,
		ServiceID:      req.Service,
		DurationMin:    req.DurationMin,
		Value:          req.Value,
	}

	if req.Start != nil {
		start, err := timezone.ParseLocal(*req.Start, loc)
		if err != nil {
			return domain.Input{}, httperr.Validation("start", "Data/hora inválida.")
		}
		in.Start = &start
	}
	return in, nil
}
