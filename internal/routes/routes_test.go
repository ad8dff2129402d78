package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/config"
	"github.com/BruksfildServices01/calendar-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/calendar-scheduler/internal/metrics"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type api struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
	audit  *audit.Dispatcher
}

func newAPI(t *testing.T) *api {
	t.Helper()

	gdb := dbtest.Open(t)
	cfg := &config.Config{
		JWTSecret:       "routes-test-secret",
		JWTTTL:          time.Hour,
		LoginRateLimit:  5,
		LoginRateWindow: time.Minute,
	}
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:      gdb,
		Config:  cfg,
		Metrics: metrics.New(),
		Audit:   dispatcher,
	})

	return &api{t: t, db: gdb, cfg: cfg, router: r, audit: dispatcher}
}

// tenant creates a company with one user of the given role and returns a
// bearer token for it.
func (a *api) tenant(slug, role string) (string, *models.User) {
	a.t.Helper()

	company := dbtest.Company(a.t, a.db, slug)
	user := dbtest.User(a.t, a.db, company.ID, role+"@"+slug+".test")
	require.NoError(a.t, a.db.Model(user).Update("role", role).Error)
	user.Role = role

	token, err := middleware.GenerateToken(a.cfg, user)
	require.NoError(a.t, err)
	return token, user
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// created posts body and returns the new row's id.
func (a *api) created(path, token string, body any) uint {
	a.t.Helper()

	w := a.do(http.MethodPost, path, token, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotZero(a.t, out.ID)
	return out.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code   string            `json:"error_code"`
	Fields map[string]string `json:"fields"`
}

type catalogIDs struct {
	ana, bruno, carla, corte uint
}

func (a *api) seedCatalog(token string) catalogIDs {
	var ids catalogIDs
	ids.ana = a.created("/api/professionals", token, gin.H{"name": "Ana"})
	ids.bruno = a.created("/api/professionals", token, gin.H{"name": "Bruno"})
	ids.carla = a.created("/api/clients", token, gin.H{"name": "Carla", "phone": "+55 (11) 99999-0000"})
	ids.corte = a.created("/api/services", token, gin.H{
		"professional":     ids.ana,
		"name":             "Corte",
		"duration_minutes": 45,
		"value":            "100.00",
	})
	return ids
}

// ======================================================
// Events
// ======================================================

func TestAPI_EventLifecycle(t *testing.T) {
	a := newAPI(t)
	token, owner := a.tenant("acme", models.RoleOwner)
	ids := a.seedCatalog(token)

	// naive start is company wall-clock time (America/Sao_Paulo, -03:00)
	w := a.do(http.MethodPost, "/api/events", token, gin.H{
		"professional": ids.ana,
		"client":       ids.carla,
		"service":      ids.corte,
		"start":        "2024-01-10T09:00:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	detail := decode[map[string]any](t, w)
	eventID := uint(detail["id"].(float64))
	assert.Equal(t, "2024-01-10T09:00:00-03:00", detail["start"])
	assert.Equal(t, "2024-01-10T09:45:00-03:00", detail["end"])
	assert.Equal(t, float64(45), detail["duration_minutes"])
	assert.Equal(t, "100.00", detail["value"])
	assert.Equal(t, "scheduled", detail["status"])
	assert.Equal(t, "Agendado", detail["status_display"])
	assert.Equal(t, owner.Email, detail["created_by_username"])
	assert.Equal(t, owner.Email, detail["updated_by_username"])

	// calendar feed
	w = a.do(http.MethodGet, "/api/events?start=2024-01-10T00:00:00&end=2024-01-11T00:00:00", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]map[string]any](t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "Corte - Carla", entries[0]["title"])
	assert.Equal(t, float64(ids.ana), entries[0]["resourceId"])
	assert.Equal(t, "#3788d8", entries[0]["backgroundColor"])
	assert.Equal(t, "+5511999990000", entries[0]["clientPhone"])

	// other professional's column is empty
	w = a.do(http.MethodGet, fmt.Sprintf("/api/events?start=2024-01-10&end=2024-01-11&professional=%d", ids.bruno), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// month view
	w = a.do(http.MethodGet, "/api/events/month?year=2024&month=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	month := decode[struct {
		Year   int              `json:"year"`
		Month  int              `json:"month"`
		Events []map[string]any `json:"events"`
	}](t, w)
	assert.Equal(t, 2024, month.Year)
	assert.Len(t, month.Events, 1)

	// status change
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/events/%d/status", eventID), token, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Cancelado", decode[map[string]any](t, w)["status_display"])

	// partial update keeps the service, recomputes end
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/events/%d", eventID), token, gin.H{
		"start":            "2024-01-10T14:00:00-03:00",
		"duration_minutes": 30,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail = decode[map[string]any](t, w)
	assert.Equal(t, "2024-01-10T14:30:00-03:00", detail["end"])
	assert.Equal(t, float64(ids.corte), detail["service"])

	// service in use cannot be deleted
	w = a.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", ids.corte), token, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "service_in_use", decode[errorBody](t, w).Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodGet, fmt.Sprintf("/api/events/%d", eventID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", ids.corte), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPI_EventValidation(t *testing.T) {
	a := newAPI(t)
	token, _ := a.tenant("acme", models.RoleOwner)
	ids := a.seedCatalog(token)

	t.Run("missing fields listed together", func(t *testing.T) {
		w := a.do(http.MethodPost, "/api/events", token, gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[errorBody](t, w)
		assert.Equal(t, "validation_failed", body.Code)
		for _, f := range []string{"professional", "client", "service", "start"} {
			assert.Contains(t, body.Fields, f)
		}
	})

	t.Run("service of another professional", func(t *testing.T) {
		w := a.do(http.MethodPost, "/api/events", token, gin.H{
			"professional": ids.bruno,
			"client":       ids.carla,
			"service":      ids.corte,
			"start":        "2024-01-10T09:00:00",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[errorBody](t, w)
		assert.Equal(t, "service_professional_mismatch", body.Code)
		assert.Contains(t, body.Fields["service"], "Corte")
		assert.Contains(t, body.Fields["service"], "Bruno")
	})

	t.Run("bad start", func(t *testing.T) {
		w := a.do(http.MethodPost, "/api/events", token, gin.H{
			"professional": ids.ana,
			"client":       ids.carla,
			"service":      ids.corte,
			"start":        "tomorrow",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[errorBody](t, w).Fields, "start")
	})

	t.Run("feed requires a window", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/events", token, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[errorBody](t, w)
		assert.Contains(t, body.Fields, "start")
		assert.Contains(t, body.Fields, "end")
	})

	t.Run("statuses", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/events/statuses", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]map[string]string](t, w), 6)
	})
}

// ======================================================
// Tenancy and roles
// ======================================================

func TestAPI_TenantIsolation(t *testing.T) {
	a := newAPI(t)
	acme, _ := a.tenant("acme", models.RoleOwner)
	beta, betaUser := a.tenant("beta", models.RoleOwner)
	ids := a.seedCatalog(acme)

	w := a.do(http.MethodGet, fmt.Sprintf("/api/professionals/%d", ids.ana), beta, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "professional_not_found", decode[errorBody](t, w).Code)

	// referencing another company's rows is not found, nothing is written
	w = a.do(http.MethodPost, "/api/events", beta, gin.H{
		"professional": ids.ana,
		"client":       ids.carla,
		"service":      ids.corte,
		"start":        "2024-01-10T09:00:00",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// a client name is only unique inside a company
	a.created("/api/clients", beta, gin.H{"name": "Carla"})

	w = a.do(http.MethodGet, "/api/clients", beta, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	require.NoError(t, a.db.Model(&models.Company{}).
		Where("id = ?", betaUser.CompanyID).
		Update("active", false).Error)

	w = a.do(http.MethodGet, "/api/me", beta, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "company_inactive", decode[errorBody](t, w).Code)
}

func TestAPI_Unauthenticated(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/api/me", "/api/events/statuses", "/api/clients"} {
		w := a.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAPI_OwnerOnlyRoutes(t *testing.T) {
	a := newAPI(t)
	owner, ownerUser := a.tenant("acme", models.RoleOwner)

	staffUser := dbtest.User(t, a.db, ownerUser.CompanyID, "staff@acme.test")
	staff, err := middleware.GenerateToken(a.cfg, staffUser)
	require.NoError(t, err)

	newUser := gin.H{"name": "Rita", "email": "rita@acme.test", "password": "secret123"}

	w := a.do(http.MethodPost, "/api/users", staff, newUser)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/users", owner, newUser)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rita := decode[map[string]any](t, w)
	assert.Equal(t, models.RoleStaff, rita["role"])

	// link Rita to a professional, then a second link to it fails
	prof := a.created("/api/professionals", owner, gin.H{"name": "Ana"})
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/users/%v/professional", rita["id"]), owner, gin.H{"professional": prof})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/users/%d/professional", staffUser.ID), owner, gin.H{"professional": prof})
	require.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodGet, "/api/professionals/resources", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"title":"Ana","has_user_account":true}]`, prof), w.Body.String())

	w = a.do(http.MethodPatch, "/api/me/company", staff, gin.H{"name": "Hack"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPatch, "/api/me/company", owner, gin.H{"timezone": "Europe/Lisbon"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Europe/Lisbon", decode[models.Company](t, w).Timezone)

	w = a.do(http.MethodPatch, "/api/me/company", owner, gin.H{"timezone": "Mars/Olympus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// Auth, audit and operational routes
// ======================================================

func TestAPI_Login(t *testing.T) {
	a := newAPI(t)
	_, user := a.tenant("acme", models.RoleOwner)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, a.db.Model(user).Update("password_hash", string(hash)).Error)

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "OWNER@acme.test", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[struct {
		Token string `json:"token"`
	}](t, w).Token
	require.NotEmpty(t, token)

	w = a.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "owner@acme.test", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode[errorBody](t, w).Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@acme.test", "password": "secret123"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_AuditTrail(t *testing.T) {
	a := newAPI(t)
	token, _ := a.tenant("acme", models.RoleOwner)
	a.created("/api/professionals", token, gin.H{"name": "Ana"})
	a.created("/api/clients", token, gin.H{"name": "Carla"})

	a.audit.Close()

	w := a.do(http.MethodGet, "/api/audit-logs?entity=client", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	page := decode[struct {
		Total int64             `json:"total"`
		Logs  []models.AuditLog `json:"logs"`
	}](t, w)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "client_created", page.Logs[0].Action)

	w = a.do(http.MethodGet, "/api/audit-logs?from=yesterday", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Operational(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `calendar_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
