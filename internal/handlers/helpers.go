package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
	"github.com/BruksfildServices01/calendar-scheduler/internal/timezone"
)

// --------------------------------------------------
// Request parsing
// --------------------------------------------------

// paramID reads a positive numeric path parameter. On failure it writes a
// 400 and returns false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return false
	}
	return true
}

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return v
}

// queryIDs collects ids from repeated or comma separated query values:
// ?professional=1&professional=2 and ?professional=1,2 are equivalent.
func queryIDs(c *gin.Context, key string) ([]uint, error) {
	var out []uint
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, httperr.Validation(key, "Identificador inválido.")
			}
			out = append(out, uint(id))
		}
	}
	return out, nil
}

// queryTime parses an ISO-8601 query value in the company timezone. An
// absent value returns the zero time so the caller can report it as missing.
func queryTime(c *gin.Context, key string, loc *time.Location) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := timezone.ParseLocal(raw, loc)
	if err != nil {
		return time.Time{}, httperr.Validation(key, "Data/hora inválida.")
	}
	return t, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func record(d *audit.Dispatcher, scope tenant.Scope, action, entity string, id uint, meta any) {
	d.Dispatch(audit.FromScope(scope, action, entity, id, meta))
}
