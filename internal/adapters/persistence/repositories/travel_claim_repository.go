package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// travelClaimRepository implements TravelClaimRepository interface
type travelClaimRepository struct {
	db *gorm.DB
}

// NewTravelClaimRepository creates a new travel claim repository
func NewTravelClaimRepository(db *gorm.DB) TravelClaimRepository {
	return &travelClaimRepository{db: db}
}

// Create creates a new travel claim
func (r *travelClaimRepository) Create(ctx context.Context, claim *models.TravelClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetByID gets a travel claim by ID
func (r *travelClaimRepository) GetByID(ctx context.Context, id uint) (*models.TravelClaim, error) {
	var claim models.TravelClaim
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Update updates a travel claim
func (r *travelClaimRepository) Update(ctx context.Context, claim *models.TravelClaim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

// ListByUser lists travel claims for a user, newest first
func (r *travelClaimRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelClaim, int64, error) {
	var rows []*models.TravelClaim
	var total int64

	q := r.db.WithContext(ctx).Model(&models.TravelClaim{}).Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListByCompany lists travel claims of a company, optionally filtered by status
func (r *travelClaimRepository) ListByCompany(ctx context.Context, companyID uint, status string, offset, limit int) ([]*models.TravelClaim, int64, error) {
	var rows []*models.TravelClaim
	var total int64

	q := r.db.WithContext(ctx).Model(&models.TravelClaim{}).Where("company_id = ?", companyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// CountPendingByCompany counts pending travel claims for a company
func (r *travelClaimRepository) CountPendingByCompany(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TravelClaim{}).
		Where("company_id = ?", companyID).
		Where("status = ?", models.ClaimStatusPending).
		Count(&count).Error
	return count, err
}
