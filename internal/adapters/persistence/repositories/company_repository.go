package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// companyRepository implements CompanyRepository interface
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Create creates a new company
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID gets a company by ID
func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company
func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
