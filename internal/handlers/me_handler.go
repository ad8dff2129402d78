package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/calendar-scheduler/internal/dto"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
)

type MeHandler struct {
	accounts account.Repository
}

func NewMeHandler(accounts account.Repository) *MeHandler {
	return &MeHandler{accounts: accounts}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	scope := middleware.Scope(c)

	user, err := h.accounts.GetUser(c.Request.Context(), scope, scope.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var professional *dto.ProfessionalDTO
	if user.Professional != nil {
		p := dto.ToProfessional(*user.Professional)
		p.HasUserAccount = true
		professional = &p
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         userPayload(user),
		"company":      user.Company,
		"professional": professional,
	})
}
