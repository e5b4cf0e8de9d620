package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/quang/user-service/docs"
	"github.com/quang/user-service/internal/api/handler"
	"github.com/quang/user-service/internal/api/middleware"
	"github.com/quang/user-service/internal/core/ports"
	"github.com/quang/user-service/internal/core/service"
)

// Dependencies carries everything the router needs. Mongo and Redis are only
// used by the readiness probe and may be nil in tests; Metrics toggles the
// prometheus middleware, which registers collectors globally and therefore
// must be attached at most once per process.
type Dependencies struct {
	Repo     ports.UserRepository
	Tokens   ports.TokenCodec
	Throttle ports.LoginThrottle
	Mongo    *mongo.Database
	Redis    *redis.Client
	Metrics  bool
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("userapi"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Services and handlers ---
	authService := service.NewAuthService(deps.Repo, deps.Tokens, deps.Throttle, deps.Logger)
	userService := service.NewUserService(deps.Repo, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, deps.Logger)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes (no token required) ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/authenticate", authHandler.Authenticate)
	auth.POST("/refresh-token", authHandler.RefreshToken)

	// --- User routes (valid access token required) ---
	users := e.Group("/api/v1/users", middleware.Auth(deps.Tokens, deps.Repo))
	users.GET("", userHandler.List)
	users.GET("/search", userHandler.Search)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.GetByID)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		e.GET("/health/ready", handler.NewReadinessHandler(deps.Mongo, deps.Redis).Readiness)
	}

	// --- API documentation ---
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
