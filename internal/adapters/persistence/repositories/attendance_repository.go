package repositories

import (
	"context"
	"time"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create creates a new attendance row
func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

// Update updates an attendance row
func (r *attendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

// GetByUserAndDate gets the attendance row for one user on one day
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID uint, date time.Time) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// ListByUser lists attendance rows for a user, newest first
func (r *attendanceRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	var rows []*models.Attendance
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Attendance{}).Where("user_id = ?", userID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("date desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListByCompanyAndDate lists all attendance rows of a company for one day
func (r *attendanceRepository) ListByCompanyAndDate(ctx context.Context, companyID uint, date time.Time) ([]*models.Attendance, error) {
	var rows []*models.Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", companyID).
		Where("date = ?", date.Format("2006-01-02")).
		Order("check_in_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UserIDsWithEntryOn returns the user ids with any attendance row on a day
func (r *attendanceRepository) UserIDsWithEntryOn(ctx context.Context, companyID uint, date time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("company_id = ?", companyID).
		Where("date = ?", date.Format("2006-01-02")).
		Pluck("user_id", &ids).Error
	return ids, err
}

// CountForDate counts attendance rows of a company for one day
func (r *attendanceRepository) CountForDate(ctx context.Context, companyID uint, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("company_id = ?", companyID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status <> ?", models.AttendanceStatusAbsent).
		Count(&count).Error
	return count, err
}
