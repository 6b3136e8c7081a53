package config

import (
	"log"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/core/domain"
	"loandesk-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user when no admin exists.
// Credentials come from ADMIN_PHONE / ADMIN_PASSWORD; with no password
// configured nothing is created, so production setups seed explicitly.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	adminPhone := getEnv("ADMIN_PHONE", "")
	adminPassword := getEnv("ADMIN_PASSWORD", "")
	if adminPhone == "" || adminPassword == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_PHONE / ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Role:        string(domain.RoleAdmin),
		PhoneNumber: adminPhone,
		Password:    hashedPassword,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.PhoneNumber)
	return nil
}
