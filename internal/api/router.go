package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/blog-system/blog-api/internal/api/handler"
	"github.com/blog-system/blog-api/internal/api/middleware"
	"github.com/blog-system/blog-api/internal/core/ports"

	_ "github.com/blog-system/blog-api/docs"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	PostService ports.PostService
	UserService ports.UserService
	// Checks are pinged by /api/health/ready.
	Checks []handler.DependencyCheck
	Logger zerolog.Logger

	// EnableMetrics registers the Prometheus middleware and /metrics. The
	// collectors live in the default registry, so enable it once per process.
	EnableMetrics bool
	EnableSwagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	if deps.EnableMetrics {
		e.Use(echoprometheus.NewMiddleware("blog"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	if deps.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")

	// --- Posts ---
	postHandler := handler.NewPostHandler(deps.PostService)
	posts := api.Group("/posts")
	posts.GET("", postHandler.GetAll)
	posts.POST("", postHandler.Create)
	posts.GET("/search", postHandler.Search)
	posts.GET("/author/:author", postHandler.ByAuthor)
	posts.GET("/:id", postHandler.Get)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.UserService)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/check-email", authHandler.CheckEmail)

	// --- Misc + health probes ---
	healthHandler := handler.NewHealthHandler(deps.Checks...)
	api.GET("/hello", handler.Hello)
	api.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	api.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	return e
}
