package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"loandesk-backoffice/internal/core/domain"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Loan     LoanConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// LoanConfig holds the default lending terms attached to new loans.
// Rates are per 30-day period (see domain.PeriodBasisDays).
type LoanConfig struct {
	InterestRate  decimal.Decimal
	OverdueRate   decimal.Decimal
	LoanPeriod    int
	ExtensionDays int
	WaitingDays   int
}

// Terms converts the config into domain lending terms
func (l LoanConfig) Terms() domain.Terms {
	return domain.Terms{
		InterestRate:  l.InterestRate,
		OverdueRate:   l.OverdueRate,
		LoanPeriod:    l.LoanPeriod,
		ExtensionDays: l.ExtensionDays,
		WaitingDays:   l.WaitingDays,
	}
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	loanConfig, err := loadLoanConfig()
	if err != nil {
		return nil, err
	}

	// Build config based on APP_MODE
	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Loan:     loanConfig,
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "loandesk_backoffice"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadLoanConfig loads default lending terms. New loans copy these values,
// so changing them never rewrites terms on existing loans.
func loadLoanConfig() (LoanConfig, error) {
	interestRate, err := decimal.NewFromString(getEnv("LOAN_INTEREST_RATE", "0.10"))
	if err != nil {
		return LoanConfig{}, fmt.Errorf("invalid LOAN_INTEREST_RATE: %w", err)
	}

	overdueRate, err := decimal.NewFromString(getEnv("LOAN_OVERDUE_RATE", "0.20"))
	if err != nil {
		return LoanConfig{}, fmt.Errorf("invalid LOAN_OVERDUE_RATE: %w", err)
	}

	loanPeriod, _ := strconv.Atoi(getEnv("LOAN_PERIOD_DAYS", "30"))
	extensionDays, _ := strconv.Atoi(getEnv("LOAN_EXTENSION_DAYS", "0"))
	waitingDays, _ := strconv.Atoi(getEnv("LOAN_WAITING_DAYS", "5"))

	return LoanConfig{
		InterestRate:  interestRate,
		OverdueRate:   overdueRate,
		LoanPeriod:    loanPeriod,
		ExtensionDays: extensionDays,
		WaitingDays:   waitingDays,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://backoffice.loandesk.example.com"
	}
	return origins
}
