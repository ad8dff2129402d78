package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List pages through the company's audit trail. from/to are calendar days
// in the company timezone; to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	scope := middleware.Scope(c)
	loc := scope.Loc()

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	// --------------------------------------------------
	// Filtros de data
	// --------------------------------------------------

	ve := &httperr.ValidationError{}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.ParseInLocation("2006-01-02", fromStr, loc); err == nil {
			f.From = &from
		} else {
			ve.Add("from", "Data inválida.")
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.ParseInLocation("2006-01-02", toStr, loc); err == nil {
			next := to.AddDate(0, 0, 1)
			f.To = &next
		} else {
			ve.Add("to", "Data inválida.")
		}
	}
	if err := ve.OrNil(); err != nil {
		httperr.Respond(c, err)
		return
	}

	logs, total, err := h.logs.List(c.Request.Context(), scope, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f.Normalize()
	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
