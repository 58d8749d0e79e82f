package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geobooks/library-system/internal/api/handler"
	"github.com/geobooks/library-system/internal/api/middleware"
	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/service"
	mongodb "github.com/geobooks/library-system/internal/infrastructure/db/mongo"
	redisdb "github.com/geobooks/library-system/internal/infrastructure/db/redis"
)

// Options carries the router's dependencies and settings.
type Options struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("geobooks"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(opts.Mongo)
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	bookRepo := mongodb.NewBookRepository(opts.Mongo)
	borrowRepo := mongodb.NewBorrowRepository(opts.Mongo)
	dedup := redisdb.NewDedupChecker(opts.Redis)

	authService := service.NewAuthService(authRepo, userRepo, opts.JWTSecret, opts.TokenTTL)
	userService := service.NewUserService(userRepo, opts.Logger)
	bookService := service.NewBookService(bookRepo, opts.Logger)
	borrowService := service.NewBorrowService(borrowRepo, bookRepo, userRepo, dedup, opts.Logger)

	authHandler := handler.NewAuthHandler(authService, opts.TokenTTL)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)
	borrowHandler := handler.NewBorrowHandler(borrowService)

	authed := middleware.Auth(opts.JWTSecret)
	withRole := middleware.WithRole(userService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authed)

	// --- Catalog (browse is public, mutations are admin-only) ---
	e.GET("/books", bookHandler.List)
	e.GET("/books/:id", bookHandler.Get)
	e.POST("/books", bookHandler.Create, authed, withRole, adminOnly)
	e.PATCH("/books/:id", bookHandler.Update, authed, withRole, adminOnly)
	e.DELETE("/books/:id", bookHandler.Delete, authed, withRole, adminOnly)

	// --- Profiles ---
	e.GET("/users", userHandler.Get, authed, withRole)
	e.POST("/users", userHandler.Create, authed, withRole)

	// --- Borrow ledger ---
	e.POST("/borrows", borrowHandler.Create, authed, withRole, adminOnly)
	e.GET("/borrows", borrowHandler.ListByEmail, authed, withRole)
	e.GET("/borrowsall", borrowHandler.ListAll, authed, withRole, adminOnly)
	e.PATCH("/borrows/return/:id", borrowHandler.Return, authed, withRole, adminOnly)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
