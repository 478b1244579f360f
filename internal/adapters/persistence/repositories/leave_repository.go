package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// leaveRepository implements LeaveRepository interface
type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

// Create creates a new leave
func (r *leaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

// GetByID gets a leave by ID
func (r *leaveRepository) GetByID(ctx context.Context, id uint) (*models.Leave, error) {
	var leave models.Leave
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// Update updates a leave
func (r *leaveRepository) Update(ctx context.Context, leave *models.Leave) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

// ListByUser lists leaves for a user, newest first
func (r *leaveRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Leave, int64, error) {
	var rows []*models.Leave
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Leave{}).Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListByCompany lists leaves of a company, optionally filtered by status
func (r *leaveRepository) ListByCompany(ctx context.Context, companyID uint, status string, offset, limit int) ([]*models.Leave, int64, error) {
	var rows []*models.Leave
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Leave{}).Where("company_id = ?", companyID)
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

// CountPendingByCompany counts pending leaves for a company
func (r *leaveRepository) CountPendingByCompany(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Leave{}).
		Where("company_id = ?", companyID).
		Where("status = ?", models.LeaveStatusPending).
		Count(&count).Error
	return count, err
}

// ApprovedDaysByType sums approved leave days per type for one user in a year
func (r *leaveRepository) ApprovedDaysByType(ctx context.Context, userID uint, year int) (map[string]int, error) {
	type typeDays struct {
		Type string
		Days int
	}
	var rows []typeDays

	err := r.db.WithContext(ctx).Model(&models.Leave{}).
		Select("type, SUM(days) as days").
		Where("user_id = ?", userID).
		Where("status = ?", models.LeaveStatusApproved).
		Where("YEAR(start_date) = ?", year).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Type] = row.Days
	}
	return result, nil
}
