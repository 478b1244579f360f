package services

import (
	"context"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
)

// ActivityService exposes the append-only activity log
type ActivityService struct {
	activityRepo repositories.ActivityLogRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repositories.ActivityLogRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// ListCompany lists a company's activity (admin/hr)
func (s *ActivityService) ListCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.ActivityLog, int64, error) {
	return s.activityRepo.ListByCompany(ctx, companyID, offset, limit)
}

// ListMine lists the caller's own activity
func (s *ActivityService) ListMine(ctx context.Context, userID uint, offset, limit int) ([]*models.ActivityLog, int64, error) {
	return s.activityRepo.ListByUser(ctx, userID, offset, limit)
}
