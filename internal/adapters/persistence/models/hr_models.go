package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Attendance
// ============================================================

// Attendance statuses
const (
	AttendanceStatusPresent = "PRESENT"
	AttendanceStatusLate    = "LATE"
	AttendanceStatusHalfDay = "HALF_DAY"
	AttendanceStatusAbsent  = "ABSENT"
)

// Attendance represents attendances table (one row per user per day)
type Attendance struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CompanyID   uint       `gorm:"index;not null" json:"company_id"`
	UserID      uint       `gorm:"index:idx_attendance_user_date,unique;not null" json:"user_id"`
	Date        time.Time  `gorm:"type:date;index:idx_attendance_user_date,unique;not null" json:"date"`
	CheckInAt   *time.Time `json:"check_in_at"`
	CheckOutAt  *time.Time `json:"check_out_at"`
	CheckInLat  *float64   `gorm:"type:decimal(10,7)" json:"check_in_lat"`
	CheckInLng  *float64   `gorm:"type:decimal(10,7)" json:"check_in_lng"`
	CheckOutLat *float64   `gorm:"type:decimal(10,7)" json:"check_out_lat"`
	CheckOutLng *float64   `gorm:"type:decimal(10,7)" json:"check_out_lng"`
	WorkedMins  int        `gorm:"default:0" json:"worked_mins"`
	Status      string     `gorm:"size:20;not null;default:'PRESENT'" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// ============================================================
// Leave
// ============================================================

// Leave types
const (
	LeaveTypeCasual = "CASUAL"
	LeaveTypeSick   = "SICK"
	LeaveTypeEarned = "EARNED"
	LeaveTypeUnpaid = "UNPAID"
)

// Leave statuses
const (
	LeaveStatusPending   = "PENDING"
	LeaveStatusApproved  = "APPROVED"
	LeaveStatusRejected  = "REJECTED"
	LeaveStatusCancelled = "CANCELLED"
)

// Leave represents leaves table
type Leave struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CompanyID    uint           `gorm:"index;not null" json:"company_id"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	Type         string         `gorm:"size:20;not null" json:"type"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time      `gorm:"type:date;not null" json:"end_date"`
	Days         int            `gorm:"not null" json:"days"`
	Reason       string         `gorm:"type:text" json:"reason"`
	Status       string         `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	DecidedBy    *uint          `json:"decided_by"`
	DecidedAt    *time.Time     `json:"decided_at"`
	DecisionNote string         `gorm:"type:text" json:"decision_note"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User    *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Decider *User `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
}

func (Leave) TableName() string {
	return "leaves"
}

// OwnedBy returns the tenant the leave belongs to
func (l *Leave) OwnedBy() uint {
	return l.CompanyID
}

// ============================================================
// Travel Claim
// ============================================================

// Travel claim statuses
const (
	ClaimStatusPending    = "PENDING"
	ClaimStatusApproved   = "APPROVED"
	ClaimStatusRejected   = "REJECTED"
	ClaimStatusReimbursed = "REIMBURSED"
)

// TravelClaim represents travel_claims table
type TravelClaim struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CompanyID    uint           `gorm:"index;not null" json:"company_id"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	Purpose      string         `gorm:"type:text;not null" json:"purpose"`
	Amount       float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	TripStart    time.Time      `gorm:"type:date;not null" json:"trip_start"`
	TripEnd      time.Time      `gorm:"type:date;not null" json:"trip_end"`
	Status       string         `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	DecidedBy    *uint          `json:"decided_by"`
	DecidedAt    *time.Time     `json:"decided_at"`
	ReimbursedAt *time.Time     `json:"reimbursed_at"`
	DecisionNote string         `gorm:"type:text" json:"decision_note"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User    *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Decider *User `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
}

func (TravelClaim) TableName() string {
	return "travel_claims"
}

// OwnedBy returns the tenant the claim belongs to
func (c *TravelClaim) OwnedBy() uint {
	return c.CompanyID
}

// ============================================================
// Salary
// ============================================================

// Salary represents salaries table (one row per user per month)
type Salary struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CompanyID  uint       `gorm:"index;not null" json:"company_id"`
	UserID     uint       `gorm:"index:idx_salary_user_month,unique;not null" json:"user_id"`
	Month      string     `gorm:"size:7;index:idx_salary_user_month,unique;not null" json:"month"`
	Basic      float64    `gorm:"type:decimal(12,2);not null" json:"basic"`
	Allowances float64    `gorm:"type:decimal(12,2);default:0" json:"allowances"`
	Deductions float64    `gorm:"type:decimal(12,2);default:0" json:"deductions"`
	Net        float64    `gorm:"type:decimal(12,2);not null" json:"net"`
	PaidAt     *time.Time `json:"paid_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Salary) TableName() string {
	return "salaries"
}

// ComputeNet recalculates the net amount from its parts
func (s *Salary) ComputeNet() {
	s.Net = s.Basic + s.Allowances - s.Deductions
}

// ============================================================
// Notification & Activity Log
// ============================================================

// Notification represents notifications table
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"company_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Activity actions
const (
	ActionCheckIn       = "CHECK_IN"
	ActionCheckOut      = "CHECK_OUT"
	ActionLeaveApply    = "LEAVE_APPLY"
	ActionLeaveCancel   = "LEAVE_CANCEL"
	ActionLeaveDecide   = "LEAVE_DECIDE"
	ActionClaimSubmit   = "CLAIM_SUBMIT"
	ActionClaimDecide   = "CLAIM_DECIDE"
	ActionSalaryUpsert  = "SALARY_UPSERT"
	ActionEmployeeAdmin = "EMPLOYEE_ADMIN"
	ActionCompanyUpdate = "COMPANY_UPDATE"
)

// ActivityLog represents activity_logs table (append only)
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"company_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Action    string    `gorm:"size:30;not null" json:"action"`
	Entity    string    `gorm:"size:30;not null" json:"entity"`
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Company{},
		&User{},
		&Session{},
		&Attendance{},
		&Leave{},
		&TravelClaim{},
		&Salary{},
		&Notification{},
		&ActivityLog{},
	)
}
