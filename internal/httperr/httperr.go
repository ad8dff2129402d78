package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/calendar-scheduler/internal/logger"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Status codes for ConstraintError codes; anything else is a 409.
var constraintStatus = map[string]int{
	"service_professional_mismatch": http.StatusBadRequest,
	"invalid_reference":             http.StatusBadRequest,
}

// Status codes for BusinessError codes; anything else is a 400.
var businessStatus = map[string]int{
	"company_inactive":    http.StatusForbidden,
	"invalid_credentials": http.StatusUnauthorized,
}

var businessMessage = map[string]string{
	"company_inactive":    "Empresa desativada.",
	"invalid_credentials": "E-mail ou senha inválidos.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond turns any error returned by the domain or repository layer into a
// structured JSON response. Unknown errors are logged and reported as 500.
func Respond(c *gin.Context, err error) {
	var (
		ve *ValidationError
		ce *ConstraintError
		nf *NotFoundError
		be BusinessError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    "validation_failed",
			Message: "Dados inválidos.",
			Fields:  ve.Fields,
		})
	case errors.As(err, &ce):
		status, ok := constraintStatus[ce.Code]
		if !ok {
			status = http.StatusConflict
		}
		c.JSON(status, HTTPError{
			Code:    ce.Code,
			Message: ce.Message,
			Fields:  map[string]string{ce.Field: ce.Message},
		})
	case errors.As(err, &nf):
		NotFound(c, nf.Code(), "Registro não encontrado.")
	case errors.Is(err, tenant.ErrNoTenant):
		Unauthorized(c, "missing_tenant", "Usuário sem empresa vinculada.")
	case errors.As(err, &be):
		status, ok := businessStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		message, ok := businessMessage[be.Code]
		if !ok {
			message = be.Code
		}
		Write(c, status, be.Code, message)
	default:
		logger.WithContext(c.Request.Context()).Error("unhandled error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, "internal_error", "Erro interno.")
	}
}
