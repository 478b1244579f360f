package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Salary errors
var (
	ErrSalaryNotFound = errors.New("salary record not found")
	ErrInvalidMonth   = errors.New("month must be in YYYY-MM format")
	ErrInvalidAmounts = errors.New("invalid salary amounts")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// SalaryService handles payroll record business logic
type SalaryService struct {
	salaryRepo   repositories.SalaryRepository
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityLogRepository
}

// NewSalaryService creates a new salary service
func NewSalaryService(
	salaryRepo repositories.SalaryRepository,
	userRepo repositories.UserRepository,
	activityRepo repositories.ActivityLogRepository,
) *SalaryService {
	return &SalaryService{
		salaryRepo:   salaryRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

// UpsertSalaryInput represents a salary record create/update
type UpsertSalaryInput struct {
	UserID     uint    `json:"user_id"`
	Month      string  `json:"month"` // YYYY-MM
	Basic      float64 `json:"basic"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
}

// Upsert creates or updates the salary record of an employee for one
// month. The net amount is always recomputed server-side.
func (s *SalaryService) Upsert(ctx context.Context, actor *models.Session, input *UpsertSalaryInput) (*models.Salary, error) {
	if !monthPattern.MatchString(input.Month) {
		return nil, ErrInvalidMonth
	}
	if input.Basic < 0 || input.Allowances < 0 || input.Deductions < 0 {
		return nil, ErrInvalidAmounts
	}

	if _, err := getOwned(ctx, actor.CompanyID, input.UserID, s.userRepo.GetByID, ErrUserNotFound); err != nil {
		return nil, err
	}

	salary, err := s.salaryRepo.GetByUserAndMonth(ctx, input.UserID, input.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if salary == nil {
		salary = &models.Salary{
			CompanyID: actor.CompanyID,
			UserID:    input.UserID,
			Month:     input.Month,
		}
	}

	salary.Basic = input.Basic
	salary.Allowances = input.Allowances
	salary.Deductions = input.Deductions
	salary.ComputeNet()

	if salary.ID == 0 {
		err = s.salaryRepo.Create(ctx, salary)
	} else {
		err = s.salaryRepo.Update(ctx, salary)
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, salary.ID, fmt.Sprintf("user %d, month %s", salary.UserID, salary.Month))
	return salary, nil
}

// ListForUser lists salary records of one user
func (s *SalaryService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Salary, int64, error) {
	return s.salaryRepo.ListByUser(ctx, userID, offset, limit)
}

// ListCompanyMonth lists all salary records of the company for one month (admin/hr)
func (s *SalaryService) ListCompanyMonth(ctx context.Context, companyID uint, month string) ([]*models.Salary, error) {
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}
	return s.salaryRepo.ListByCompanyAndMonth(ctx, companyID, month)
}

func (s *SalaryService) record(ctx context.Context, actor *models.Session, entityID uint, details string) {
	entry := &models.ActivityLog{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Action:    models.ActionSalaryUpsert,
		Entity:    "salary",
		EntityID:  entityID,
		Details:   details,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}
}
