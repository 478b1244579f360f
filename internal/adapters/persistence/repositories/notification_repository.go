package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser lists notifications for a user, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error) {
	var rows []*models.Notification
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// MarkRead marks a single notification as read; the user filter keeps
// one user from touching another's notifications
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// MarkAllRead marks all of a user's notifications as read
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

// CountUnread counts unread notifications for a user
func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
