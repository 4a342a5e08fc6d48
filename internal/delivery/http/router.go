package http

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "papertrade/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	AdminHandler   *AdminHandler
	ContentHandler *AdminContentHandler
}

// CustomValidator wraps go-playground/validator for echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the given struct
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Validator = &CustomValidator{validator: validator.New()}

	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for high-frequency polling endpoints to reduce noise
			path := c.Request().URL.Path
			if strings.HasSuffix(path, "/api/user/heartbeat") {
				return true
			}
			if strings.HasSuffix(path, "/api/admin/stats/stream") {
				return true
			}
			if path == "/health" {
				return true
			}
			return false
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "papertrade-api",
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/register", config.AuthHandler.Register)
	}

	// User routes (protected with AuthMiddleware)
	user := api.Group("/user", custommiddleware.AuthMiddleware)
	{
		user.GET("/me", config.UserHandler.GetMe)
		user.GET("/portfolio", config.UserHandler.GetPortfolio)
		user.POST("/trades", config.UserHandler.PlaceTrade)
		user.GET("/trades", config.UserHandler.GetTrades)
		user.POST("/heartbeat", config.UserHandler.Heartbeat)
	}

	// Quote board (any authenticated user)
	api.GET("/stocks", config.UserHandler.GetStocks, custommiddleware.AuthMiddleware)

	// Admin routes (protected with Auth + Admin middleware)
	admin := api.Group("/admin", custommiddleware.AuthMiddleware, custommiddleware.AdminMiddleware)
	{
		admin.GET("/users", config.AdminHandler.ListUsers)
		admin.GET("/users/export", config.AdminHandler.ExportUsers)
		admin.POST("/users/:id/approve", config.AdminHandler.ApproveUser)
		admin.PUT("/users/:id/status", config.AdminHandler.SetUserStatus)
		admin.POST("/users/bulk", config.AdminHandler.BulkAction)

		admin.GET("/stats", config.AdminHandler.GetStats)
		admin.GET("/stats/stream", config.AdminHandler.StreamStats)

		admin.GET("/stocks", config.ContentHandler.ListStocks)
		admin.POST("/stocks", config.ContentHandler.CreateStock)
		admin.PUT("/stocks/:id", config.ContentHandler.UpdateStock)
		admin.DELETE("/stocks/:id", config.ContentHandler.HaltStock)

		admin.GET("/competitions", config.ContentHandler.ListCompetitions)
		admin.POST("/competitions", config.ContentHandler.CreateCompetition)
		admin.PUT("/competitions/:id", config.ContentHandler.UpdateCompetition)

		admin.GET("/reports", config.ContentHandler.ListReports)
		admin.POST("/reports", config.ContentHandler.CreateReport)

		admin.GET("/logs", config.ContentHandler.ListAuditLogs)
	}
}
