package services

import (
	"context"
	"errors"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List lists the caller's notifications
func (s *NotificationService) List(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, offset, limit)
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	affected, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// UnreadCount counts the caller's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
