package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"loandesk-backoffice/internal/adapters/http/middleware"
	"loandesk-backoffice/internal/adapters/http/routes"
	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/adapters/persistence/repositories"
	"loandesk-backoffice/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "loandesk-backoffice/docs" // Swagger docs
)

// @title LoanDesk Back Office API
// @version 1.0
// @description Loan servicing back office: customers, loans, payments and the transaction ledger.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@loandesk.example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the initial admin account when configured
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed initial data: %v", err)
	}

	// Purge expired refresh tokens left over from previous runs
	if err := repositories.NewRefreshTokenRepository(db).DeleteExpired(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to purge expired refresh tokens: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LoanDesk Back Office API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
