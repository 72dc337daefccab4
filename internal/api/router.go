package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/numerisys/document-system/internal/api/handler"
	"github.com/numerisys/document-system/internal/api/middleware"
	"github.com/numerisys/document-system/internal/core/domain"
	"github.com/numerisys/document-system/internal/core/ports"
)

// Deps carries everything the router needs. Services and the token verifier
// are injected explicitly; the raw DB and Redis handles are only used by the
// readiness probe.
type Deps struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Documents ports.DocumentService
	Verifier  ports.TokenVerifier
	DB        *sql.DB
	Redis     *redis.Client
	UploadDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("docsystem"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	docHandler := handler.NewDocumentHandler(d.Documents)
	authMW := middleware.Auth(d.Verifier)
	adminMW := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMW)

	// --- User management (admin only) ---
	e.GET("/users", userHandler.List, authMW, adminMW)
	e.DELETE("/users/:id", userHandler.Delete, authMW, adminMW)

	// --- Documents ---
	e.POST("/documents", docHandler.Create, authMW)
	e.GET("/documents", docHandler.List, authMW)
	e.GET("/documents/:id", docHandler.Get, authMW)
	e.DELETE("/documents/:id", docHandler.Delete, authMW)

	// --- Uploaded content, served read-only ---
	e.Static("/uploads", d.UploadDir)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
