package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Company errors
var (
	ErrCompanyNotFound = errors.New("company not found")
)

// CompanyService handles company settings business logic
type CompanyService struct {
	companyRepo  repositories.CompanyRepository
	activityRepo repositories.ActivityLogRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	activityRepo repositories.ActivityLogRepository,
) *CompanyService {
	return &CompanyService{
		companyRepo:  companyRepo,
		activityRepo: activityRepo,
	}
}

// UpdateCompanyInput represents company settings updates (admin)
type UpdateCompanyInput struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	WorkStartTime  *string  `json:"work_start_time"`
	WorkEndTime    *string  `json:"work_end_time"`
	LateGraceMins  *int     `json:"late_grace_mins"`
	HalfDayMins    *int     `json:"half_day_mins"`
	DefaultRadiusM *float64 `json:"default_radius_m"`
}

// Get returns the caller's company
func (s *CompanyService) Get(ctx context.Context, companyID uint) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// Update applies settings changes to the caller's company (admin)
func (s *CompanyService) Update(ctx context.Context, actor *models.Session, input *UpdateCompanyInput) (*models.Company, error) {
	company, err := s.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		company.Address = strings.TrimSpace(*input.Address)
	}
	if input.Email != nil {
		company.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		company.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.WorkStartTime != nil {
		company.WorkStartTime = *input.WorkStartTime
	}
	if input.WorkEndTime != nil {
		company.WorkEndTime = *input.WorkEndTime
	}
	if input.LateGraceMins != nil && *input.LateGraceMins >= 0 {
		company.LateGraceMins = *input.LateGraceMins
	}
	if input.HalfDayMins != nil && *input.HalfDayMins > 0 {
		company.HalfDayMins = *input.HalfDayMins
	}
	if input.DefaultRadiusM != nil && *input.DefaultRadiusM > 0 {
		company.DefaultRadiusM = *input.DefaultRadiusM
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	entry := &models.ActivityLog{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Action:    models.ActionCompanyUpdate,
		Entity:    "company",
		EntityID:  company.ID,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}

	return company, nil
}
