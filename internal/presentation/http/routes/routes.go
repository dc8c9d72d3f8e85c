package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/config"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/internal/presentation/http/handler"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Bill     *handler.BillHandler
	Expense  *handler.ExpenseHandler
	Employee *handler.EmployeeHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Bills
	registerBillRoutes(protected, h, deps)

	// Expenses
	registerExpenseRoutes(protected, h)

	// Employees
	registerEmployeeRoutes(protected, h)
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		// Bill creation uses idempotency middleware to prevent duplicates
		bills.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Bill.Create)
		bills.GET("/summary", h.Bill.Summary)
		bills.POST("/bulk-delete", h.Bill.BulkDelete)
		bills.POST("/import", h.Bill.Import)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", h.Bill.Update)
		bills.DELETE("/:id", h.Bill.Delete)
		bills.POST("/:id/duplicate", h.Bill.Duplicate)
		bills.PUT("/:id/status", h.Bill.UpdateStatus)
		bills.GET("/:id/export", h.Bill.Export)
		bills.GET("/:id/share/whatsapp", h.Bill.ShareWhatsApp)
		bills.POST("/:id/email", h.Bill.Email)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/summary", h.Expense.Summary)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
	}
}
