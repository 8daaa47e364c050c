package handlers

import (
	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/middleware"
)

// Register wires every route onto the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/health", h.Health)

	requireAuth := middleware.RequireAuth(h.Store.Users, h.Cfg.JWTSecret)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", h.Signup)
	authRoutes.Post("/login", h.Login)
	authRoutes.Get("/me", requireAuth, h.Me)

	expenses := api.Group("/expenses", requireAuth)
	expenses.Get("/", h.ListExpenses)
	expenses.Get("/:id", h.GetExpense)
	expenses.Post("/", h.CreateExpense)
	expenses.Put("/:id", h.UpdateExpense)
	expenses.Delete("/:id", h.DeleteExpense)

	incomes := api.Group("/incomes", requireAuth)
	incomes.Get("/", h.ListIncomes)
	incomes.Get("/:id", h.GetIncome)
	incomes.Post("/", h.CreateIncome)
	incomes.Put("/:id", h.UpdateIncome)
	incomes.Delete("/:id", h.DeleteIncome)

	categories := api.Group("/categories", requireAuth)
	categories.Get("/", h.ListCategories)
	categories.Post("/", h.CreateCategory)
	categories.Put("/:id", h.UpdateCategory)
	categories.Delete("/:id", h.DeleteCategory)

	summary := api.Group("/summary", requireAuth)
	summary.Get("/monthly", h.MonthlySummary)
	summary.Get("/alerts", h.SummaryAlerts)
	summary.Get("/", h.RangeSummary)

	api.Get("/receipts/:expenseId", requireAuth, h.GetReceipt)
	api.Get("/user/profile", requireAuth, h.UserProfile)
	api.Get("/insights", requireAuth, h.SuggestCategories)
}

// Health is the liveness endpoint.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Index describes the API surface.
func (h *Handler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to Expense Tracker API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"auth":       "POST /api/auth/signup, POST /api/auth/login, GET /api/auth/me",
			"expenses":   "GET|POST /api/expenses, GET|PUT|DELETE /api/expenses/:id",
			"incomes":    "GET|POST /api/incomes, GET|PUT|DELETE /api/incomes/:id",
			"categories": "GET|POST /api/categories, PUT|DELETE /api/categories/:id",
			"summary":    "GET /api/summary/monthly, GET /api/summary, GET /api/summary/alerts",
			"receipts":   "GET /api/receipts/:expenseId",
			"user":       "GET /api/user/profile",
			"insights":   "GET /api/insights",
			"health":     "GET /health",
		},
	})
}
