package config

import (
	"log"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/pkg/password"

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

	if err := s.seedDemoCompany(); err != nil {
		log.Printf("⚠️ Demo company seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDemoCompany seeds a demo company with an admin account.
// This is for development/testing only; in production companies
// bootstrap themselves through /auth/register.
func (s *Seeder) seedDemoCompany() error {
	var count int64
	s.db.Model(&models.Company{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	company := &models.Company{
		Name:          "StaffHub Demo Co.",
		Email:         "hello@staffhub.example.com",
		WorkStartTime: "09:00",
		WorkEndTime:   "18:00",
		LateGraceMins: 15,
	}
	if err := s.db.Create(company).Error; err != nil {
		return err
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		CompanyID: company.ID,
		FullName:  "Demo Admin",
		Email:     "admin@staffhub.example.com",
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo company seeded: %s (admin: %s)", company.Name, admin.Email)
	return nil
}
