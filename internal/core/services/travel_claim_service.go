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

// Travel claim errors
var (
	ErrClaimNotFound    = errors.New("travel claim not found")
	ErrInvalidClaim     = errors.New("invalid travel claim")
	ErrClaimNotPending  = errors.New("travel claim is not pending")
	ErrClaimNotApproved = errors.New("travel claim is not approved")
)

// TravelClaimService handles travel claim business logic
type TravelClaimService struct {
	claimRepo        repositories.TravelClaimRepository
	notificationRepo repositories.NotificationRepository
	activityRepo     repositories.ActivityLogRepository
}

// NewTravelClaimService creates a new travel claim service
func NewTravelClaimService(
	claimRepo repositories.TravelClaimRepository,
	notificationRepo repositories.NotificationRepository,
	activityRepo repositories.ActivityLogRepository,
) *TravelClaimService {
	return &TravelClaimService{
		claimRepo:        claimRepo,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
	}
}

// SubmitClaimInput represents a travel claim submission
type SubmitClaimInput struct {
	Purpose   string  `json:"purpose"`
	Amount    float64 `json:"amount"`
	TripStart string  `json:"trip_start"` // 2006-01-02
	TripEnd   string  `json:"trip_end"`
}

// DecideClaimInput represents an approve/reject decision
type DecideClaimInput struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Submit files a new travel claim for the caller
func (s *TravelClaimService) Submit(ctx context.Context, actor *models.Session, input *SubmitClaimInput) (*models.TravelClaim, error) {
	if input.Purpose == "" || input.Amount <= 0 {
		return nil, ErrInvalidClaim
	}

	start, err := time.Parse("2006-01-02", input.TripStart)
	if err != nil {
		return nil, ErrInvalidClaim
	}
	end, err := time.Parse("2006-01-02", input.TripEnd)
	if err != nil {
		return nil, ErrInvalidClaim
	}
	if end.Before(start) {
		return nil, ErrInvalidClaim
	}

	claim := &models.TravelClaim{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Purpose:   input.Purpose,
		Amount:    input.Amount,
		TripStart: start,
		TripEnd:   end,
		Status:    models.ClaimStatusPending,
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionClaimSubmit, claim.ID, fmt.Sprintf("%.2f", claim.Amount))
	return claim, nil
}

// Decide approves or rejects a pending claim (admin/hr)
func (s *TravelClaimService) Decide(ctx context.Context, actor *models.Session, id uint, input *DecideClaimInput) (*models.TravelClaim, error) {
	claim, err := getOwned(ctx, actor.CompanyID, id, s.claimRepo.GetByID, ErrClaimNotFound)
	if err != nil {
		return nil, err
	}
	if claim.Status != models.ClaimStatusPending {
		return nil, ErrClaimNotPending
	}

	now := time.Now()
	if input.Approve {
		claim.Status = models.ClaimStatusApproved
	} else {
		claim.Status = models.ClaimStatusRejected
	}
	claim.DecidedBy = &actor.UserID
	claim.DecidedAt = &now
	claim.DecisionNote = input.Note

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	s.notify(ctx, claim)
	s.record(ctx, actor, models.ActionClaimDecide, claim.ID, claim.Status)
	return claim, nil
}

// MarkReimbursed moves an approved claim to reimbursed (admin/hr)
func (s *TravelClaimService) MarkReimbursed(ctx context.Context, actor *models.Session, id uint) (*models.TravelClaim, error) {
	claim, err := getOwned(ctx, actor.CompanyID, id, s.claimRepo.GetByID, ErrClaimNotFound)
	if err != nil {
		return nil, err
	}
	if claim.Status != models.ClaimStatusApproved {
		return nil, ErrClaimNotApproved
	}

	now := time.Now()
	claim.Status = models.ClaimStatusReimbursed
	claim.ReimbursedAt = &now

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	s.notify(ctx, claim)
	s.record(ctx, actor, models.ActionClaimDecide, claim.ID, claim.Status)
	return claim, nil
}

// ListForUser lists claims of one user
func (s *TravelClaimService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelClaim, int64, error) {
	return s.claimRepo.ListByUser(ctx, userID, offset, limit)
}

// ListCompany lists company claims, optionally filtered by status (admin/hr)
func (s *TravelClaimService) ListCompany(ctx context.Context, companyID uint, status string, offset, limit int) ([]*models.TravelClaim, int64, error) {
	return s.claimRepo.ListByCompany(ctx, companyID, status, offset, limit)
}

func (s *TravelClaimService) notify(ctx context.Context, claim *models.TravelClaim) {
	var verb string
	switch claim.Status {
	case models.ClaimStatusApproved:
		verb = "approved"
	case models.ClaimStatusRejected:
		verb = "rejected"
	case models.ClaimStatusReimbursed:
		verb = "reimbursed"
	default:
		return
	}
	n := &models.Notification{
		CompanyID: claim.CompanyID,
		UserID:    claim.UserID,
		Message:   fmt.Sprintf("Your travel claim of %.2f was %s", claim.Amount, verb),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create notification: %v", err)
	}
}

func (s *TravelClaimService) record(ctx context.Context, actor *models.Session, action string, entityID uint, details string) {
	entry := &models.ActivityLog{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Action:    action,
		Entity:    "travel_claim",
		EntityID:  entityID,
		Details:   details,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}
}
