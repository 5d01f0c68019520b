package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrpulse/evaluation-system/internal/api/handler"
	"github.com/hrpulse/evaluation-system/internal/api/middleware"
	"github.com/hrpulse/evaluation-system/internal/core/service"
	mongodb "github.com/hrpulse/evaluation-system/internal/infrastructure/db/mongo"
	redisdb "github.com/hrpulse/evaluation-system/internal/infrastructure/db/redis"
	"github.com/hrpulse/evaluation-system/internal/infrastructure/http/handlers"
)

// Options carries the knobs the router needs beyond its connections.
type Options struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The dispatcher is accepted as an interface so the caller owns its worker
// lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, dispatcher service.NotificationDispatcher, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("evaluation_http"))

	// --- Dependencies ---
	evalRepo := mongodb.NewEvaluationRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	fyRepo := mongodb.NewFiscalYearRepository(db)
	tokenStore := redisdb.NewRefreshTokenStore(rdb)

	notifier := service.NewNotifier(userRepo, fyRepo, dispatcher, log)
	workflow := service.NewWorkflowService(evalRepo, userRepo, notifier, log)
	queries := service.NewEvaluationQueryService(evalRepo, userRepo, log)
	authService := service.NewAuthService(userRepo, tokenStore, opts.JWTSecret, opts.AccessTTL, opts.RefreshTTL, log)

	authHandler := handler.NewAuthHandler(authService)
	evalHandler := handler.NewEvaluationHandler(workflow, queries)
	authMW := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/refresh", authHandler.Refresh)

	// --- Evaluation routes ---
	v1 := e.Group("/v1/evaluations", authMW)
	v1.GET("/mine", evalHandler.ListMine)
	v1.GET("/pending", evalHandler.ListPending)
	v1.GET("/counts", evalHandler.Counts)

	// Ownership is checked inside the workflow; any authenticated user may try.
	v1.POST("/:id/self-evaluate", evalHandler.SubmitSelf)
	// The evaluate capability is per-assignment, not per-role: the workflow
	// verifies the actor is the assigned evaluator.
	v1.POST("/:id/evaluate", evalHandler.SubmitEvaluator)
	v1.POST("/:id/approve", evalHandler.Approve, middleware.RBAC("manager", "director", "admin"))
	v1.POST("/:id/reject", evalHandler.Reject, middleware.RBAC("manager", "director", "admin"))
	v1.POST("/:id/director-evaluate", evalHandler.SubmitDirector, middleware.RBAC("director", "admin"))
	v1.POST("/:id/finalize", evalHandler.Finalize, middleware.RBAC("director", "admin"))

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	return e
}
