package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/orgsite/cms-backend/docs"
	"github.com/orgsite/cms-backend/internal/api/handler"
	"github.com/orgsite/cms-backend/internal/api/middleware"
	"github.com/orgsite/cms-backend/internal/core/service"
	"github.com/orgsite/cms-backend/internal/infrastructure/config"
	mongodb "github.com/orgsite/cms-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/orgsite/cms-backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("cms"))

	// --- Dependencies ---
	adminRepo := mongodb.NewAdminRepository(db)
	tokens := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessTokenSecret,
		RefreshSecret: cfg.Auth.RefreshTokenSecret,
		AccessTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTTL:    cfg.Auth.RefreshTokenTTL,
	})
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	authService := service.NewAuthService(adminRepo, tokens, limiter, log)

	contentService := service.NewContentService(
		mongodb.NewEventRepository(db),
		mongodb.NewPublicationRepository(db),
		mongodb.NewGalleryRepository(db),
		mongodb.NewSponsorRepository(db),
		log,
	)

	authHandler := handler.NewAuthHandler(authService, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	adminHandler := handler.NewAdminHandler(authService)
	contentHandler := handler.NewContentHandler(contentService)

	authn := middleware.Auth(tokens, adminRepo)
	superadmin := middleware.RequireSuperadmin()

	// --- Auth routes ---
	v1 := e.Group("/v1")
	auth := v1.Group("/auth")
	auth.POST("/register-superadmin", authHandler.RegisterSuperadmin)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout, authn)
	auth.GET("/me", authHandler.Me, authn)

	// --- Admin management (superadmin only) ---
	admins := v1.Group("/admins", authn, superadmin)
	admins.POST("", adminHandler.Add)
	admins.GET("", adminHandler.List)
	admins.DELETE("/:id", adminHandler.Remove)
	admins.PUT("/superadmin", adminHandler.Handover)

	// --- Content: public reads, authenticated writes ---
	registerContentRoutes(v1, contentHandler, authn)

	// --- Ops endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

func registerContentRoutes(v1 *echo.Group, h *handler.ContentHandler, authn echo.MiddlewareFunc) {
	events := v1.Group("/events")
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.POST("", h.CreateEvent, authn)
	events.PUT("/:id", h.UpdateEvent, authn)
	events.DELETE("/:id", h.DeleteEvent, authn)

	pubs := v1.Group("/publications")
	pubs.GET("", h.ListPublications)
	pubs.GET("/:id", h.GetPublication)
	pubs.POST("", h.CreatePublication, authn)
	pubs.PUT("/:id", h.UpdatePublication, authn)
	pubs.DELETE("/:id", h.DeletePublication, authn)

	gallery := v1.Group("/gallery")
	gallery.GET("", h.ListGalleryItems)
	gallery.GET("/:id", h.GetGalleryItem)
	gallery.POST("", h.CreateGalleryItem, authn)
	gallery.PUT("/:id", h.UpdateGalleryItem, authn)
	gallery.DELETE("/:id", h.DeleteGalleryItem, authn)

	sponsors := v1.Group("/sponsors")
	sponsors.GET("", h.ListSponsors)
	sponsors.GET("/:id", h.GetSponsor)
	sponsors.POST("", h.CreateSponsor, authn)
	sponsors.PUT("/:id", h.UpdateSponsor, authn)
	sponsors.DELETE("/:id", h.DeleteSponsor, authn)
}
