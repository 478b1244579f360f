package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// activityLogRepository implements ActivityLogRepository interface
type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// Create appends an activity log entry
func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByCompany lists a company's activity, newest first
func (r *activityLogRepository) ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.ActivityLog, int64, error) {
	var rows []*models.ActivityLog
	var total int64

	q := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("company_id = ?", companyID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListByUser lists one user's activity, newest first
func (r *activityLogRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.ActivityLog, int64, error) {
	var rows []*models.ActivityLog
	var total int64

	q := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
