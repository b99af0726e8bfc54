package handler

import (
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	expenseHandler *ExpenseHandler,
	budgetHandler *BudgetHandler,
	analyticsHandler *AnalyticsHandler,
	importExportHandler *ImportExportHandler,
	receiptHandler *ReceiptHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := []echo.MiddlewareFunc{
		authMiddleware.Authenticate(),
		middleware.RateLimitMiddleware(rateLimiter),
	}

	// Auth routes (protected)
	auth := api.Group("/auth", protected...)
	auth.GET("/me", authHandler.Me)

	// Expense routes (protected)
	expenses := api.Group("/expenses", protected...)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("/import", importExportHandler.ImportExpenses)
	expenses.GET("/export", importExportHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.POST("/:id/receipt", receiptHandler.UploadReceipt)
	expenses.GET("/:id/receipt", receiptHandler.GetReceipt)
	expenses.DELETE("/:id/receipt", receiptHandler.DeleteReceipt)

	// Budget routes (protected)
	budgets := api.Group("/budgets", protected...)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/summary/:month", budgetHandler.GetMonthSummary)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Analytics routes (protected)
	analytics := api.Group("/analytics", protected...)
	analytics.GET("/monthly/:month", analyticsHandler.GetMonthlyAnalysis)
	analytics.GET("/suggestions/:month", analyticsHandler.GetSuggestions)

	// WebSocket endpoint (token passed as query parameter)
	e.GET("/ws", wsHandler.HandleWS)
}
