package repositories

import (
	"context"
	"time"

	"staffhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ActiveIDsByCompany(ctx context.Context, companyID uint) ([]uint, error)
}

// SessionRepository defines session repository interface.
// Sessions are keyed by the SHA-256 hash of the opaque client token.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CompanyRepository defines company repository interface
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
}

// AttendanceRepository defines attendance repository interface
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	Update(ctx context.Context, attendance *models.Attendance) error
	GetByUserAndDate(ctx context.Context, userID uint, date time.Time) (*models.Attendance, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error)
	ListByCompanyAndDate(ctx context.Context, companyID uint, date time.Time) ([]*models.Attendance, error)
	UserIDsWithEntryOn(ctx context.Context, companyID uint, date time.Time) ([]uint, error)
	CountForDate(ctx context.Context, companyID uint, date time.Time) (int64, error)
}

// LeaveRepository defines leave repository interface
type LeaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) error
	GetByID(ctx context.Context, id uint) (*models.Leave, error)
	Update(ctx context.Context, leave *models.Leave) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Leave, int64, error)
	ListByCompany(ctx context.Context, companyID uint, status string, offset, limit int) ([]*models.Leave, int64, error)
	CountPendingByCompany(ctx context.Context, companyID uint) (int64, error)
	ApprovedDaysByType(ctx context.Context, userID uint, year int) (map[string]int, error)
}

// TravelClaimRepository defines travel claim repository interface
type TravelClaimRepository interface {
	Create(ctx context.Context, claim *models.TravelClaim) error
	GetByID(ctx context.Context, id uint) (*models.TravelClaim, error)
	Update(ctx context.Context, claim *models.TravelClaim) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelClaim, int64, error)
	ListByCompany(ctx context.Context, companyID uint, status string, offset, limit int) ([]*models.TravelClaim, int64, error)
	CountPendingByCompany(ctx context.Context, companyID uint) (int64, error)
}

// SalaryRepository defines salary repository interface
type SalaryRepository interface {
	Create(ctx context.Context, salary *models.Salary) error
	Update(ctx context.Context, salary *models.Salary) error
	GetByID(ctx context.Context, id uint) (*models.Salary, error)
	GetByUserAndMonth(ctx context.Context, userID uint, month string) (*models.Salary, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Salary, int64, error)
	ListByCompanyAndMonth(ctx context.Context, companyID uint, month string) ([]*models.Salary, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

// ActivityLogRepository defines activity log repository interface
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.ActivityLog, int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.ActivityLog, int64, error)
}
