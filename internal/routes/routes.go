package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/calendar-scheduler/internal/audit"
	"github.com/BruksfildServices01/calendar-scheduler/internal/config"
	"github.com/BruksfildServices01/calendar-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/calendar-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/calendar-scheduler/internal/metrics"
	"github.com/BruksfildServices01/calendar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	ucEvent "github.com/BruksfildServices01/calendar-scheduler/internal/usecase/event"
)

// Deps are the long-lived collaborators the router is built from. Redis is
// optional; without it login is not rate limited.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Redis   redis.UniversalClient
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Metrics),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	eventRepo := infraRepo.NewEventGormRepository(d.DB)

	auditLogger := audit.New(d.DB)

	loginLimiter := middleware.NewRateLimiter(
		d.Redis,
		d.Config.LoginRateLimit,
		d.Config.LoginRateWindow,
		"login",
		d.Metrics,
	)

	// ======================================================
	// USE CASES — EVENTS
	// ======================================================
	createEventUC := ucEvent.NewCreateEvent(eventRepo, d.Audit, d.Metrics)
	updateEventUC := ucEvent.NewUpdateEvent(eventRepo, d.Audit, d.Metrics)
	changeStatusUC := ucEvent.NewChangeEventStatus(eventRepo, d.Audit, d.Metrics)
	deleteEventUC := ucEvent.NewDeleteEvent(eventRepo, d.Audit, d.Metrics)
	getEventUC := ucEvent.NewGetEvent(eventRepo)
	listEventsUC := ucEvent.NewListEvents(eventRepo)
	listEventsByMonthUC := ucEvent.NewListEventsByMonth(eventRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountRepo, d.Config, d.Audit)
	meHandler := handlers.NewMeHandler(accountRepo)
	companyHandler := handlers.NewCompanyHandler(accountRepo, d.Audit)
	usersHandler := handlers.NewUsersHandler(accountRepo, d.Audit)

	professionalHandler := handlers.NewProfessionalHandler(catalogRepo, d.Audit)
	clientHandler := handlers.NewClientHandler(catalogRepo, d.Audit)
	serviceHandler := handlers.NewServiceHandler(catalogRepo, d.Audit)

	eventHandler := handlers.NewEventHandler(
		createEventUC,
		updateEventUC,
		changeStatusUC,
		deleteEventUC,
		getEventUC,
		listEventsUC,
		listEventsByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(
			middleware.AuthMiddleware(d.Config),
			middleware.TenantMiddleware(accountRepo),
		)
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/company", companyHandler.Get)
			secured.PATCH("/me/company", middleware.RequireRole(models.RoleOwner), companyHandler.Update)

			secured.GET("/users", usersHandler.List)
			secured.POST("/users", middleware.RequireRole(models.RoleOwner), usersHandler.Create)
			secured.PATCH("/users/:id/professional", middleware.RequireRole(models.RoleOwner), usersHandler.LinkProfessional)

			secured.GET("/professionals", professionalHandler.List)
			secured.GET("/professionals/resources", professionalHandler.Resources)
			secured.POST("/professionals", professionalHandler.Create)
			secured.GET("/professionals/:id", professionalHandler.Get)
			secured.PATCH("/professionals/:id", professionalHandler.Update)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// EVENTS
			// ------------------------------
			secured.GET("/events", eventHandler.List)
			secured.GET("/events/month", eventHandler.ListByMonth)
			secured.GET("/events/statuses", eventHandler.Statuses)
			secured.POST("/events", eventHandler.Create)
			secured.GET("/events/:id", eventHandler.Get)
			secured.PATCH("/events/:id", eventHandler.Update)
			secured.PATCH("/events/:id/status", eventHandler.ChangeStatus)
			secured.DELETE("/events/:id", eventHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
