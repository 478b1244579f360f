package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffhub/internal/adapters/persistence/models"
)

func newTestLeaveService() (*LeaveService, *fakeLeaveRepo, *fakeNotificationRepo) {
	leaveRepo := newFakeLeaveRepo()
	notificationRepo := newFakeNotificationRepo()
	return NewLeaveService(leaveRepo, notificationRepo, newFakeActivityRepo()), leaveRepo, notificationRepo
}

func TestDaysInclusive(t *testing.T) {
	day := func(s string) time.Time {
		ts, _ := time.Parse("2006-01-02", s)
		return ts
	}

	tests := []struct {
		start, end string
		want       int
	}{
		{"2025-06-02", "2025-06-02", 1},
		{"2025-06-02", "2025-06-04", 3},
		{"2025-06-30", "2025-07-01", 2},
	}

	for _, tt := range tests {
		if got := DaysInclusive(day(tt.start), day(tt.end)); got != tt.want {
			t.Errorf("DaysInclusive(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestApplyLeaveValidation(t *testing.T) {
	svc, _, _ := newTestLeaveService()
	actor := actorSession(3, 1, models.RoleEmployee)

	tests := []struct {
		name    string
		input   ApplyLeaveInput
		wantErr error
	}{
		{"unknown type", ApplyLeaveInput{Type: "SABBATICAL", StartDate: "2025-06-02", EndDate: "2025-06-03"}, ErrInvalidLeaveType},
		{"bad start date", ApplyLeaveInput{Type: models.LeaveTypeSick, StartDate: "02-06-2025", EndDate: "2025-06-03"}, ErrInvalidDateRange},
		{"end before start", ApplyLeaveInput{Type: models.LeaveTypeSick, StartDate: "2025-06-05", EndDate: "2025-06-03"}, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Apply(context.Background(), actor, &tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	leave, err := svc.Apply(context.Background(), actor, &ApplyLeaveInput{
		Type:      models.LeaveTypeCasual,
		StartDate: "2025-06-02",
		EndDate:   "2025-06-04",
		Reason:    "family function",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if leave.Status != models.LeaveStatusPending {
		t.Errorf("status = %s, want PENDING", leave.Status)
	}
	if leave.Days != 3 {
		t.Errorf("days = %d, want 3", leave.Days)
	}
}

func TestDecideLeave(t *testing.T) {
	svc, _, notificationRepo := newTestLeaveService()
	employee := actorSession(3, 1, models.RoleEmployee)
	hr := actorSession(9, 1, models.RoleHR)

	leave, err := svc.Apply(context.Background(), employee, &ApplyLeaveInput{
		Type:      models.LeaveTypeSick,
		StartDate: "2025-06-02",
		EndDate:   "2025-06-03",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	decided, err := svc.Decide(context.Background(), hr, leave.ID, &DecideLeaveInput{Approve: true, Note: "get well"})
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decided.Status != models.LeaveStatusApproved {
		t.Errorf("status = %s, want APPROVED", decided.Status)
	}
	if decided.DecidedBy == nil || *decided.DecidedBy != hr.UserID {
		t.Error("decider not recorded")
	}

	// Only pending leaves can be decided
	if _, err := svc.Decide(context.Background(), hr, leave.ID, &DecideLeaveInput{Approve: false}); !errors.Is(err, ErrLeaveNotPending) {
		t.Fatalf("got %v, want ErrLeaveNotPending", err)
	}

	// The applicant was notified
	notifications, _, _ := notificationRepo.ListByUser(context.Background(), employee.UserID, 0, 10)
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications))
	}
}

func TestCancelLeave(t *testing.T) {
	svc, _, _ := newTestLeaveService()
	owner := actorSession(3, 1, models.RoleEmployee)
	colleague := actorSession(4, 1, models.RoleEmployee)

	leave, err := svc.Apply(context.Background(), owner, &ApplyLeaveInput{
		Type:      models.LeaveTypeCasual,
		StartDate: "2025-06-02",
		EndDate:   "2025-06-02",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), colleague, leave.ID); !errors.Is(err, ErrNotLeaveOwner) {
		t.Fatalf("got %v, want ErrNotLeaveOwner", err)
	}

	cancelled, err := svc.Cancel(context.Background(), owner, leave.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != models.LeaveStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}

	if _, err := svc.Cancel(context.Background(), owner, leave.ID); !errors.Is(err, ErrLeaveNotPending) {
		t.Fatalf("got %v, want ErrLeaveNotPending", err)
	}
}

func TestLeaveCrossTenantMasking(t *testing.T) {
	svc, _, _ := newTestLeaveService()
	owner := actorSession(3, 1, models.RoleEmployee)
	otherCompanyHR := actorSession(50, 2, models.RoleHR)

	leave, err := svc.Apply(context.Background(), owner, &ApplyLeaveInput{
		Type:      models.LeaveTypeEarned,
		StartDate: "2025-06-02",
		EndDate:   "2025-06-06",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// A valid ID of another tenant reads as not found
	if _, err := svc.Decide(context.Background(), otherCompanyHR, leave.ID, &DecideLeaveInput{Approve: true}); !errors.Is(err, ErrLeaveNotFound) {
		t.Fatalf("got %v, want ErrLeaveNotFound", err)
	}
	if _, err := svc.Cancel(context.Background(), otherCompanyHR, leave.ID); !errors.Is(err, ErrLeaveNotFound) {
		t.Fatalf("got %v, want ErrLeaveNotFound", err)
	}
}

func TestLeaveBalance(t *testing.T) {
	svc, leaveRepo, _ := newTestLeaveService()
	year := time.Now().Year()
	start := time.Date(year, 3, 10, 0, 0, 0, 0, time.UTC)

	leaveRepo.Create(context.Background(), &models.Leave{
		CompanyID: 1, UserID: 3,
		Type:      models.LeaveTypeSick,
		StartDate: start, EndDate: start.AddDate(0, 0, 2),
		Days:   3,
		Status: models.LeaveStatusApproved,
	})
	leaveRepo.Create(context.Background(), &models.Leave{
		CompanyID: 1, UserID: 3,
		Type:      models.LeaveTypeSick,
		StartDate: start, EndDate: start,
		Days:   1,
		Status: models.LeaveStatusRejected,
	})

	balance, err := svc.Balance(context.Background(), 3)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance.Taken[models.LeaveTypeSick] != 3 {
		t.Errorf("sick taken = %d, want 3 (rejected leaves excluded)", balance.Taken[models.LeaveTypeSick])
	}
	// Every type is reported, zero-filled
	for _, typ := range []string{models.LeaveTypeCasual, models.LeaveTypeEarned, models.LeaveTypeUnpaid} {
		if _, ok := balance.Taken[typ]; !ok {
			t.Errorf("type %s missing from balance", typ)
		}
	}
}
