package router

import (
	"net/http"
	"time"

	"github.com/coursely/coursely-backend/internal/config"
	"github.com/coursely/coursely-backend/internal/handler"
	"github.com/coursely/coursely-backend/internal/middleware"
	"github.com/coursely/coursely-backend/internal/response"
	"github.com/coursely/coursely-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Course *handler.CourseHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	accountService *service.AccountService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded cover images statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(365 * 24 * time.Hour))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", gin.H{"status": "ok"})
	})

	requireAdmin := middleware.RequireAdmin(authService, accountService)

	// ─── Auth Group ────────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", requireAdmin, handlers.Auth.Logout)
		auth.GET("/me", requireAdmin, handlers.Auth.Me)
	}

	// ─── Course Group (Session Required) ───────────────────────────────
	courses := router.Group("/api/v1/courses")
	courses.Use(requireAdmin)
	{
		courses.POST("", handlers.Course.Create)
		courses.GET("", handlers.Course.List)
		courses.PATCH("/:id", handlers.Course.Update)
		courses.DELETE("/:id", handlers.Course.Delete)
	}

	return router
}
