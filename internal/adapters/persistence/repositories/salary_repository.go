package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// salaryRepository implements SalaryRepository interface
type salaryRepository struct {
	db *gorm.DB
}

// NewSalaryRepository creates a new salary repository
func NewSalaryRepository(db *gorm.DB) SalaryRepository {
	return &salaryRepository{db: db}
}

// Create creates a new salary record
func (r *salaryRepository) Create(ctx context.Context, salary *models.Salary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

// Update updates a salary record
func (r *salaryRepository) Update(ctx context.Context, salary *models.Salary) error {
	return r.db.WithContext(ctx).Save(salary).Error
}

// GetByID gets a salary record by ID
func (r *salaryRepository) GetByID(ctx context.Context, id uint) (*models.Salary, error) {
	var salary models.Salary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// GetByUserAndMonth gets the salary record for one user and month ("2006-01")
func (r *salaryRepository) GetByUserAndMonth(ctx context.Context, userID uint, month string) (*models.Salary, error) {
	var salary models.Salary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("month = ?", month).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// ListByUser lists salary records for a user, newest month first
func (r *salaryRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Salary, int64, error) {
	var rows []*models.Salary
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Salary{}).Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("month desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListByCompanyAndMonth lists all salary records of a company for one month
func (r *salaryRepository) ListByCompanyAndMonth(ctx context.Context, companyID uint, month string) ([]*models.Salary, error) {
	var rows []*models.Salary
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", companyID).
		Where("month = ?", month).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
