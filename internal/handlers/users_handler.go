package handlers

import (

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

type UsersHandler struct {
	accounts account.Repository
	audit    *audit.Dispatcher
}

func NewUsersHandler(accounts account.Repository, d *audit.Dispatcher) *UsersHandler {
	return &UsersHandler{accounts: accounts, audit: d}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	ProfessionalID *uint  `json:"professional"`
}

// LinkProfessionalRequest links the user to a professional; null unlinks.
type LinkProfessionalRequest struct {
	ProfessionalID *uint `json:"professional"`
}

// --------- Handlers ---------

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context(), middleware.Scope(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userPayload(&users[i]))
	}
	httpresp.OK(c, out)
}

func (h *UsersHandler) Create(c *gin.Context) {
	scope := middleware.Scope(c)

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user := models.User{
		CompanyID:      scope.CompanyID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           req.Role,
		ProfessionalID: req.ProfessionalID,
	}
	if err := account.ValidateUser(&user); err != nil {
		httperr.Respond(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}
	user.PasswordHash = string(hashed)

	if err := h.accounts.CreateUser(c.Request.Context(), scope, &user); err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "user_created", "user", user.ID, gin.H{
		"email": user.Email,
		"role":  user.Role,
	})

	httpresp.Created(c, userPayload(&user))
}

func (h *UsersHandler) LinkProfessional(c *gin.Context) {
	scope := middleware.Scope(c)

	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req LinkProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.accounts.LinkProfessional(ctx, scope, userID, req.ProfessionalID); err != nil {
		httperr.Respond(c, err)
		return
	}

	user, err := h.accounts.GetUser(ctx, scope, userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	record(h.audit, scope, "user_professional_linked", "user", user.ID, gin.H{
		"professional_id": req.ProfessionalID,
	})

	httpresp.OK(c, userPayload(user))
}
