package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"expensetracker/internal/middleware"
)

// Handlers groups the route handlers of the API.
type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Transactions *TransactionHandler
	Categories   *CategoryHandler
	Dashboard    *DashboardHandler
	Export       *ExportHandler
	Admin        *AdminHandler
}

// NewRouter builds the gin engine. requireSession guards the user routes and
// requireAdminKey the operator routes.
func NewRouter(h Handlers, requireSession, requireAdminKey gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.GET("/demo-users", h.Auth.ListDemoUsers)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(requireSession)

	protected.POST("/auth/logout", h.Auth.Logout)

	protected.GET("/profile", h.Profile.GetProfile)
	protected.PUT("/profile/preferences", h.Profile.UpdatePreferences)

	transactions := protected.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.GetUserTransactions)
	transactions.GET("/:id", h.Transactions.GetTransactionByID)
	transactions.PUT("/:id", h.Transactions.UpdateTransaction)
	transactions.DELETE("/:id", h.Transactions.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", h.Categories.CreateCategory)
	categories.GET("", h.Categories.GetCategories)
	categories.GET("/:id", h.Categories.GetCategoryByID)
	categories.PUT("/:id", h.Categories.UpdateCategory)
	categories.DELETE("/:id", h.Categories.DeleteCategory)

	protected.GET("/date-range", h.Dashboard.GetDateRange)
	protected.PUT("/date-range", h.Dashboard.SetDateRange)
	protected.POST("/date-range/preset", h.Dashboard.ApplyPreset)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", h.Dashboard.GetSummary)
	dashboard.GET("/daily", h.Dashboard.GetDailyTotals)
	dashboard.GET("/categories", h.Dashboard.GetCategoryBreakdown)
	dashboard.GET("/recent", h.Dashboard.GetRecentTransactions)

	export := protected.Group("/export")
	export.GET("/records", h.Export.ExportRecords)
	export.GET("/report", h.Export.ExportReport)

	// Operator routes
	admin := v1.Group("/admin")
	admin.Use(requireAdminKey)
	admin.GET("/state", h.Admin.GetState)
	admin.GET("/users", h.Admin.ListUsers)
	admin.POST("/reset", h.Admin.Reset)
	admin.POST("/import", h.Admin.Import)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
