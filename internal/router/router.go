package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/config"
	"github.com/madaris/school-app-backend/internal/handler"
	"github.com/madaris/school-app-backend/internal/middleware"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Registration *handler.RegistrationHandler
	Review       *handler.ReviewHandler
	Major        *handler.MajorHandler
	AcademicYear *handler.AcademicYearHandler
	User         *handler.UserHandler
	Dashboard    *handler.DashboardHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
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
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded documents statically with aggressive caching (1 year).
	// Document keys embed a millisecond timestamp, so URLs never repeat.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Student Group (JWT + Role + Single Device) ─────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRoles(model.RoleStudent),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/registration-context", handlers.Registration.GetContext)
		studentAPI.POST("/registrations", handlers.Registration.Submit)
		studentAPI.GET("/registrations", handlers.Registration.ListOwn)
		studentAPI.GET("/profile", handlers.Registration.GetProfile)
		studentAPI.PUT("/profile", handlers.Registration.SaveProfile)
	}

	// ─── 3. Agent Group (JWT + Role) ───────────────────────────────────
	// Admins can work the review queue too.
	agentAPI := router.Group("/api/v1/agent")
	agentAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRoles(model.RoleAgent, model.RoleAdmin),
	)
	{
		agentAPI.GET("/dashboard", handlers.Dashboard.Agent)
		agentAPI.GET("/registrations", handlers.Review.List)
		agentAPI.GET("/registrations/:id", handlers.Review.Get)
		agentAPI.POST("/registrations/:id/validate", handlers.Review.Validate)
		agentAPI.POST("/registrations/:id/reject", handlers.Review.Reject)
	}

	// ─── 4. WebSocket Group (Agent Stream) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRoles(model.RoleAgent, model.RoleAdmin),
	)
	{
		ws.GET("/agent/registrations/stream", handlers.WS.RegistrationStream)
	}

	// ─── 5. Admin Group (JWT + Role) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireRoles(model.RoleAdmin),
	)
	{
		adminAPI.GET("/dashboard", handlers.Dashboard.Admin)
		adminAPI.GET("/users", handlers.User.List)

		majorsGroup := adminAPI.Group("/majors")
		{
			majorsGroup.GET("", handlers.Major.List)
			majorsGroup.POST("", handlers.Major.Create)
			majorsGroup.DELETE("/:id", handlers.Major.Delete)
		}

		yearsGroup := adminAPI.Group("/academic-years")
		{
			yearsGroup.GET("", handlers.AcademicYear.List)
			yearsGroup.POST("", handlers.AcademicYear.Create)
			yearsGroup.POST("/:id/activate", handlers.AcademicYear.Activate)
			yearsGroup.POST("/:id/deactivate", handlers.AcademicYear.Deactivate)
		}
	}

	return router
}
