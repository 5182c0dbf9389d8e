package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/studiolume/pos-backoffice/docs"
	"github.com/studiolume/pos-backoffice/internal/api/handler"
	"github.com/studiolume/pos-backoffice/internal/api/middleware"
	"github.com/studiolume/pos-backoffice/internal/core/domain"
	"github.com/studiolume/pos-backoffice/internal/core/service"
	"github.com/studiolume/pos-backoffice/internal/infrastructure/config"
	pgstore "github.com/studiolume/pos-backoffice/internal/infrastructure/db/postgres"
	redisstore "github.com/studiolume/pos-backoffice/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Dependencies ---
	authRepo := pgstore.NewAuthRepository(db)
	clientRepo := pgstore.NewClientRepository(db)
	serviceTypeRepo := pgstore.NewServiceTypeRepository(db)
	saleRepo := pgstore.NewSaleRepository(db)

	var replay service.ReplayStore
	if rdb != nil {
		replay = redisstore.NewReplayStore(rdb)
	}

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	clientService := service.NewClientService(clientRepo, log)
	serviceTypeService := service.NewServiceTypeService(serviceTypeRepo, log)
	saleService := service.NewSaleService(saleRepo, replay, log)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	serviceTypeHandler := handler.NewServiceTypeHandler(serviceTypeService)
	saleHandler := handler.NewSaleHandler(saleService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Back-office routes ---
	// With AUTH_DISABLED every request runs as the unscoped admin-equivalent
	// principal (the original single-operator deployment mode).
	v1 := e.Group("/v1")
	if cfg.AuthDisabled {
		v1.Use(middleware.Unscoped())
	} else {
		v1.Use(middleware.Auth(cfg.JWTSecret))
		v1.Use(middleware.RBAC(domain.RoleAdmin, domain.RoleCollaborator))
	}

	v1.GET("/clients", clientHandler.List)
	v1.POST("/clients", clientHandler.Create)
	v1.GET("/service-types", serviceTypeHandler.List)
	v1.POST("/service-types", serviceTypeHandler.Create)
	v1.POST("/sales", saleHandler.Record)
	v1.GET("/sales/history", saleHandler.History)
	v1.GET("/sales/summary", saleHandler.Summary)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
