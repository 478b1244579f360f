package services

import (
	"context"
	"time"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService aggregates counts for the dashboard endpoints.
// It queries the database directly instead of going through the
// repositories because every number here is a single aggregate.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// CompanyDashboard is the admin/hr overview
type CompanyDashboard struct {
	TotalEmployees  int64 `json:"total_employees"`
	ActiveEmployees int64 `json:"active_employees"`
	PresentToday    int64 `json:"present_today"`
	OnLeaveToday    int64 `json:"on_leave_today"`
	PendingLeaves   int64 `json:"pending_leaves"`
	PendingClaims   int64 `json:"pending_claims"`
	UnreadAlerts    int64 `json:"unread_alerts"`
}

// EmployeeDashboard is the personal overview
type EmployeeDashboard struct {
	CheckedInToday  bool               `json:"checked_in_today"`
	CheckedOutToday bool               `json:"checked_out_today"`
	TodayStatus     string             `json:"today_status"`
	PendingLeaves   int64              `json:"pending_leaves"`
	PendingClaims   int64              `json:"pending_claims"`
	UnreadAlerts    int64              `json:"unread_alerts"`
	LatestSalary    *models.Salary     `json:"latest_salary,omitempty"`
	TodayAttendance *models.Attendance `json:"today_attendance,omitempty"`
}

// GetCompanyDashboard builds the admin/hr overview for one company
func (s *DashboardService) GetCompanyDashboard(ctx context.Context, companyID uint, userID uint) (*CompanyDashboard, error) {
	out := &CompanyDashboard{}
	today := time.Now().Format("2006-01-02")

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("company_id = ?", companyID).
		Count(&out.TotalEmployees).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("company_id = ?", companyID).
		Where("is_active = ?", true).
		Count(&out.ActiveEmployees).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("company_id = ?", companyID).
		Where("date = ?", today).
		Where("check_in_at IS NOT NULL").
		Count(&out.PresentToday).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Leave{}).
		Where("company_id = ?", companyID).
		Where("status = ?", models.LeaveStatusApproved).
		Where("start_date <= ? AND end_date >= ?", today, today).
		Count(&out.OnLeaveToday).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Leave{}).
		Where("company_id = ?", companyID).
		Where("status = ?", models.LeaveStatusPending).
		Count(&out.PendingLeaves).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.TravelClaim{}).
		Where("company_id = ?", companyID).
		Where("status = ?", models.ClaimStatusPending).
		Count(&out.PendingClaims).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&out.UnreadAlerts).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// GetEmployeeDashboard builds the personal overview for one user
func (s *DashboardService) GetEmployeeDashboard(ctx context.Context, companyID, userID uint) (*EmployeeDashboard, error) {
	out := &EmployeeDashboard{}
	today := time.Now().Format("2006-01-02")

	var attendance models.Attendance
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", today).
		First(&attendance).Error
	switch {
	case err == nil:
		out.CheckedInToday = attendance.CheckInAt != nil
		out.CheckedOutToday = attendance.CheckOutAt != nil
		out.TodayStatus = attendance.Status
		out.TodayAttendance = &attendance
	case err != gorm.ErrRecordNotFound:
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Leave{}).
		Where("user_id = ?", userID).
		Where("status = ?", models.LeaveStatusPending).
		Count(&out.PendingLeaves).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.TravelClaim{}).
		Where("user_id = ?", userID).
		Where("status = ?", models.ClaimStatusPending).
		Count(&out.PendingClaims).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&out.UnreadAlerts).Error; err != nil {
		return nil, err
	}

	var salary models.Salary
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("month DESC").
		First(&salary).Error
	switch {
	case err == nil:
		out.LatestSalary = &salary
	case err != gorm.ErrRecordNotFound:
		return nil, err
	}

	return out, nil
}
