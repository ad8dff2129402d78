package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/config"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
	"github.com/BruksfildServices01/calendar-scheduler/internal/validators"
)

type AuthHandler struct {
	accounts account.Repository
	config   *config.Config
	audit    *audit.Dispatcher

	emailDomainOK func(email string) bool
}

func NewAuthHandler(accounts account.Repository, cfg *config.Config, d *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		config:        cfg,
		audit:         d,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	CompanyName     string `json:"company_name" binding:"required"`
	CompanySlug     string `json:"company_slug" binding:"required"`
	CompanyTimezone string `json:"company_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	company := models.Company{
		Name:     req.CompanyName,
		Slug:     req.CompanySlug,
		Timezone: req.CompanyTimezone,
		Active:   true,
	}
	if err := account.ValidateCompany(&company); err != nil {
		httperr.Respond(c, err)
		return
	}

	owner := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.RoleOwner,
	}
	if err := account.ValidateUser(&owner); err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.emailDomainOK(owner.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}
	owner.PasswordHash = string(hashed)

	if err := h.accounts.CreateCompany(c.Request.Context(), &company, &owner); err != nil {
		httperr.Respond(c, err)
		return
	}
	owner.Company = company

	record(h.audit, tenant.New(company.ID, owner.ID, nil), "company_registered", "company", company.ID, gin.H{
		"slug": company.Slug,
	})

	h.respondWithToken(c, http.StatusCreated, &owner)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.FindUserByEmail(c.Request.Context(), account.NormalizeEmail(req.Email))
	if err != nil {
		if httperr.IsNotFound(err) {
			err = httperr.ErrInvalidCredentials
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Respond(c, httperr.ErrInvalidCredentials)
		return
	}

	if !user.Company.Active {
		httperr.Respond(c, httperr.ErrCompanyInactive)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.GenerateToken(h.config, user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token de acesso.")
		return
	}

	c.JSON(status, gin.H{
		"user":    userPayload(user),
		"company": user.Company,
		"token":   token,
	})
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"phone":           u.Phone,
		"role":            u.Role,
		"company_id":      u.CompanyID,
		"professional_id": u.ProfessionalID,
	}
}
