package main

import (
	"log"
	"strings"

	"mypocket-backend/internal/auth"
	"mypocket-backend/internal/budget"
	"mypocket-backend/internal/category"
	"mypocket-backend/internal/config"
	"mypocket-backend/internal/dashboard"
	"mypocket-backend/internal/database"
	"mypocket-backend/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if cfg.SeedDemoData {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Could not seed demo data: %v", err)
		}
	}

	// Stores and services; every dependency is passed in here, nothing is
	// shared through package globals.
	categoryService := category.NewService(category.NewGormStore(db))
	transactionStore := transaction.NewGormStore(db)
	transactionService := transaction.NewService(transactionStore, categoryService)
	budgetStore := budget.NewGormStore(db)
	budgetService := budget.NewService(budgetStore, categoryService, transactionStore)
	dashboardService := dashboard.NewService(budgetStore, transactionStore)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public auth
	api.Post("/auths/register", auth.RegisterHandler(cfg, db))
	api.Post("/auths/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg, db))

	// Categories
	protected.Get("/categories", category.ListCategoriesHandler(categoryService))
	protected.Post("/categories", category.CreateCategoryHandler(categoryService))
	protected.Get("/categories/:id", category.GetCategoryHandler(categoryService))
	protected.Put("/categories/:id", category.UpdateCategoryHandler(categoryService))
	protected.Delete("/categories/:id", category.DeleteCategoryHandler(categoryService))

	// Transactions
	protected.Get("/transactions", transaction.ListTransactionsHandler(transactionService))
	protected.Post("/transactions", transaction.CreateTransactionHandler(transactionService))
	protected.Get("/transactions/:id", transaction.GetTransactionHandler(transactionService))
	protected.Put("/transactions/:id", transaction.UpdateTransactionHandler(transactionService))
	protected.Delete("/transactions/:id", transaction.DeleteTransactionHandler(transactionService))

	// Budgets
	protected.Get("/budgets", budget.ListBudgetsHandler(budgetService))
	protected.Post("/budgets", budget.CreateBudgetHandler(budgetService))
	protected.Get("/budgets/category/:categoryId", budget.ListBudgetsByCategoryHandler(budgetService))
	protected.Get("/budgets/:id", budget.GetBudgetHandler(budgetService))
	protected.Put("/budgets/:id", budget.UpdateBudgetHandler(budgetService))
	protected.Delete("/budgets/:id", budget.DeleteBudgetHandler(budgetService))
	protected.Get("/budgets/:id/spending", budget.GetBudgetSpendingHandler(budgetService))
	protected.Get("/budgets/:id/category", budget.GetBudgetCategoryHandler(budgetService))
	protected.Get("/budgets/:id/details", budget.GetBudgetDetailsHandler(budgetService))

	// Dashboard
	protected.Get("/dashboard/monthly-summary", dashboard.MonthlySummaryHandler(dashboardService))
	protected.Get("/dashboard/budget-vs-actual", dashboard.BudgetVsActualHandler(dashboardService))

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
