package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
)

// Leave errors
var (
	ErrLeaveNotFound    = errors.New("leave not found")
	ErrInvalidLeaveType = errors.New("invalid leave type")
	ErrInvalidDateRange = errors.New("end date before start date")
	ErrLeaveNotPending  = errors.New("leave is not pending")
	ErrNotLeaveOwner    = errors.New("not the owner of this leave")
)

// LeaveService handles leave application business logic
type LeaveService struct {
	leaveRepo        repositories.LeaveRepository
	notificationRepo repositories.NotificationRepository
	activityRepo     repositories.ActivityLogRepository
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	leaveRepo repositories.LeaveRepository,
	notificationRepo repositories.NotificationRepository,
	activityRepo repositories.ActivityLogRepository,
) *LeaveService {
	return &LeaveService{
		leaveRepo:        leaveRepo,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
	}
}

// ApplyLeaveInput represents a leave application
type ApplyLeaveInput struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"` // 2006-01-02
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// DecideLeaveInput represents an approve/reject decision
type DecideLeaveInput struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// LeaveBalance summarizes approved days taken per type this year
type LeaveBalance struct {
	Year  int            `json:"year"`
	Taken map[string]int `json:"taken"`
}

// Apply files a new leave application for the caller
func (s *LeaveService) Apply(ctx context.Context, actor *models.Session, input *ApplyLeaveInput) (*models.Leave, error) {
	if !validLeaveType(input.Type) {
		return nil, ErrInvalidLeaveType
	}

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	leave := &models.Leave{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Type:      input.Type,
		StartDate: start,
		EndDate:   end,
		Days:      DaysInclusive(start, end),
		Reason:    input.Reason,
		Status:    models.LeaveStatusPending,
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionLeaveApply, leave.ID, fmt.Sprintf("%s leave, %d day(s)", leave.Type, leave.Days))
	return leave, nil
}

// Cancel withdraws the caller's own pending leave
func (s *LeaveService) Cancel(ctx context.Context, actor *models.Session, id uint) (*models.Leave, error) {
	leave, err := getOwned(ctx, actor.CompanyID, id, s.leaveRepo.GetByID, ErrLeaveNotFound)
	if err != nil {
		return nil, err
	}
	if leave.UserID != actor.UserID {
		return nil, ErrNotLeaveOwner
	}
	if leave.Status != models.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	leave.Status = models.LeaveStatusCancelled
	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionLeaveCancel, leave.ID, "")
	return leave, nil
}

// Decide approves or rejects a pending leave (admin/hr). Only the
// pending → approved|rejected transitions exist.
func (s *LeaveService) Decide(ctx context.Context, actor *models.Session, id uint, input *DecideLeaveInput) (*models.Leave, error) {
	leave, err := getOwned(ctx, actor.CompanyID, id, s.leaveRepo.GetByID, ErrLeaveNotFound)
	if err != nil {
		return nil, err
	}
	if leave.Status != models.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	now := time.Now()
	if input.Approve {
		leave.Status = models.LeaveStatusApproved
	} else {
		leave.Status = models.LeaveStatusRejected
	}
	leave.DecidedBy = &actor.UserID
	leave.DecidedAt = &now
	leave.DecisionNote = input.Note

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	s.notify(ctx, leave)
	s.record(ctx, actor, models.ActionLeaveDecide, leave.ID, leave.Status)
	return leave, nil
}

// ListForUser lists leaves of one user
func (s *LeaveService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Leave, int64, error) {
	return s.leaveRepo.ListByUser(ctx, userID, offset, limit)
}

// ListCompany lists company leaves, optionally filtered by status (admin/hr)
func (s *LeaveService) ListCompany(ctx context.Context, companyID uint, status string, offset, limit int) ([]*models.Leave, int64, error) {
	return s.leaveRepo.ListByCompany(ctx, companyID, status, offset, limit)
}

// Balance reports approved leave days taken per type this year
func (s *LeaveService) Balance(ctx context.Context, userID uint) (*LeaveBalance, error) {
	year := time.Now().Year()
	taken, err := s.leaveRepo.ApprovedDaysByType(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	for _, t := range []string{models.LeaveTypeCasual, models.LeaveTypeSick, models.LeaveTypeEarned, models.LeaveTypeUnpaid} {
		if _, ok := taken[t]; !ok {
			taken[t] = 0
		}
	}

	return &LeaveBalance{Year: year, Taken: taken}, nil
}

// DaysInclusive counts calendar days between two dates, both ends
// included
func DaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func validLeaveType(t string) bool {
	switch t {
	case models.LeaveTypeCasual, models.LeaveTypeSick, models.LeaveTypeEarned, models.LeaveTypeUnpaid:
		return true
	}
	return false
}

func (s *LeaveService) notify(ctx context.Context, leave *models.Leave) {
	verb := "approved"
	if leave.Status == models.LeaveStatusRejected {
		verb = "rejected"
	}
	n := &models.Notification{
		CompanyID: leave.CompanyID,
		UserID:    leave.UserID,
		Message: fmt.Sprintf("Your %s leave (%s – %s) was %s",
			leave.Type,
			leave.StartDate.Format("2006-01-02"),
			leave.EndDate.Format("2006-01-02"),
			verb),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create notification: %v", err)
	}
}

func (s *LeaveService) record(ctx context.Context, actor *models.Session, action string, entityID uint, details string) {
	entry := &models.ActivityLog{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Action:    action,
		Entity:    "leave",
		EntityID:  entityID,
		Details:   details,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}
}
