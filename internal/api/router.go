package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greenharbor/greennest-backend/internal/api/handler"
	"github.com/greenharbor/greennest-backend/internal/api/middleware"
	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
	"github.com/greenharbor/greennest-backend/internal/core/service"
	mongodb "github.com/greenharbor/greennest-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/greenharbor/greennest-backend/internal/infrastructure/db/redis"
	"github.com/greenharbor/greennest-backend/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier is injected so the caller owns the dispatcher lifecycle.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("greennest"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	plantRepo := mongodb.NewPlantRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	plantCache := redisdb.NewPlantCache(rdb)

	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	orderService := service.NewOrderService(orderRepo, notifier, log)
	catalogService := service.NewCatalogService(plantRepo, categoryRepo, plantCache, log)

	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminOrderHandler := handler.NewAdminOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// The two gate stages: authenticate (401), then authorize by role (403).
	authGate := middleware.Auth(tokens)
	userOnly := middleware.RequireRoles(domain.RoleUser)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/users", authHandler.ListUsers, authGate, adminOnly)
	auth.GET("/users/:email", authHandler.GetByEmail)
	auth.GET("/users/id/:id", authHandler.GetByID, authGate, adminOnly)
	auth.PUT("/users/:id", authHandler.Update)
	auth.DELETE("/users/:id", authHandler.Delete, authGate, adminOnly)
	auth.PUT("/passwordForgot/:email", authHandler.ForgotPassword)

	// --- Customer order routes ---
	orders := e.Group("/orders", authGate, userOnly)
	orders.POST("/place", orderHandler.Place)
	orders.GET("/my-orders", orderHandler.ListMine)
	orders.GET("/:id", orderHandler.Get)

	// --- Public catalog routes ---
	e.GET("/plants", catalogHandler.ListPlants)
	e.GET("/plants/search", catalogHandler.SearchPlants)
	e.GET("/plants/category/:category", catalogHandler.ListPlantsByCategory)
	e.GET("/plants/:id", catalogHandler.GetPlant)
	e.GET("/categories", catalogHandler.ListCategories)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authGate, adminOnly)
	admin.GET("/orders", adminOrderHandler.List)
	admin.GET("/orders/:id", adminOrderHandler.Get)
	admin.GET("/orders/user/:userId", adminOrderHandler.ListByUser)
	admin.GET("/orders/status/:status", adminOrderHandler.ListByStatus)
	admin.PUT("/orders/:id", adminOrderHandler.Update)
	admin.DELETE("/orders/:id", adminOrderHandler.Delete)
	admin.POST("/plants", catalogHandler.CreatePlant)
	admin.PUT("/plants/:id", catalogHandler.UpdatePlant)
	admin.DELETE("/plants/:id", catalogHandler.DeletePlant)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
