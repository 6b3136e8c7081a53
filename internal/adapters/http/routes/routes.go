package routes

import (
	"loandesk-backoffice/internal/adapters/http/handlers"
	"loandesk-backoffice/internal/adapters/http/middleware"
	"loandesk-backoffice/internal/adapters/persistence/repositories"
	"loandesk-backoffice/internal/config"
	"loandesk-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, uow)
	customerService := services.NewCustomerService(customerRepo, userRepo, uow)
	employeeService := services.NewEmployeeService(employeeRepo, uow)
	loanService := services.NewLoanService(loanRepo, customerRepo, uow, cfg.Loan.Terms())
	transactionService := services.NewTransactionService(transactionRepo, uow)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService, loanService, transactionService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	loanHandler := handlers.NewLoanHandler(loanService, transactionService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Customer routes
	customerRoutes := apiV1.Group("/customers")
	customerRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCustomerRoutes(customerRoutes, customerHandler)

	// Employee routes (admin only)
	employeeRoutes := apiV1.Group("/employees")
	employeeRoutes.Use(middleware.AuthMiddleware(cfg))
	employeeRoutes.Use(middleware.AdminOnly())
	setupEmployeeRoutes(employeeRoutes, employeeHandler)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	loanRoutes.Use(middleware.NoStore())
	setupLoanRoutes(loanRoutes, loanHandler)

	// Transaction ledger routes (staff only)
	transactionRoutes := apiV1.Group("/transactions")
	transactionRoutes.Use(middleware.AuthMiddleware(cfg))
	transactionRoutes.Use(middleware.StaffOnly())
	setupTransactionRoutes(transactionRoutes, transactionHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes with a stricter rate limit
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes (admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupCustomerRoutes configures customer routes. Listing and mutation are
// staff operations; a customer can read their own profile, loans and ledger.
func setupCustomerRoutes(router fiber.Router, handler *handlers.CustomerHandler) {
	router.Post("/", middleware.StaffOnly(), handler.Create)
	router.Get("/", middleware.StaffOnly(), handler.List)
	router.Get("/:id", handler.GetByID)
	router.Get("/:id/loans", middleware.NoStore(), handler.ListLoans)
	router.Get("/:id/transactions", handler.ListTransactions)
	router.Put("/:id", middleware.StaffOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupEmployeeRoutes configures employee routes (admin only)
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupLoanRoutes configures loan routes. The payment endpoint is open to
// any authenticated user (the engine checks ownership); everything else that
// mutates is staff or admin.
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/", middleware.StaffOnly(), handler.Create)
	router.Get("/", middleware.StaffOnly(), handler.List)
	router.Get("/:id", handler.GetByID)
	router.Get("/:id/transactions", handler.ListTransactions)
	router.Put("/:id/payment", handler.Pay)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupTransactionRoutes configures transaction ledger routes (staff only).
// The filter routes must register before /:id so "customer" and "loan" are
// not swallowed as ids.
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/customer/:customerId", handler.ListByCustomer)
	router.Get("/loan/:loanId", handler.ListByLoan)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
