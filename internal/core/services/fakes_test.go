package services

import (
	"context"
	"strings"
	"time"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == strings.ToLower(email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListByCompany(_ context.Context, companyID uint, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.CompanyID == companyID {
			out = append(out, user)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeUserRepo) ActiveIDsByCompany(_ context.Context, companyID uint) ([]uint, error) {
	var out []uint
	for _, user := range r.users {
		if user.CompanyID == companyID && user.IsActive {
			out = append(out, user.ID)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions  map[string]*models.Session
	nextID    uint
	deleteErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session), nextID: 1}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	session.ID = r.nextID
	r.nextID++
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeSessionRepo) DeleteAllByUserID(_ context.Context, userID uint) error {
	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	for hash, session := range r.sessions {
		if session.IsExpired() {
			delete(r.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

type fakeCompanyRepo struct {
	companies map[uint]*models.Company
	nextID    uint
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uint]*models.Company), nextID: 1}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *models.Company) error {
	company.ID = r.nextID
	r.nextID++
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uint) (*models.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return company, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *models.Company) error {
	r.companies[company.ID] = company
	return nil
}

type fakeAttendanceRepo struct {
	rows   map[uint]*models.Attendance
	nextID uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[uint]*models.Attendance), nextID: 1}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Create(_ context.Context, attendance *models.Attendance) error {
	attendance.ID = r.nextID
	r.nextID++
	r.rows[attendance.ID] = attendance
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, attendance *models.Attendance) error {
	r.rows[attendance.ID] = attendance
	return nil
}

func (r *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID uint, date time.Time) (*models.Attendance, error) {
	for _, row := range r.rows {
		if row.UserID == userID && sameDay(row.Date, date) {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	var out []*models.Attendance
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListByCompanyAndDate(_ context.Context, companyID uint, date time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, row := range r.rows {
		if row.CompanyID == companyID && sameDay(row.Date, date) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) UserIDsWithEntryOn(_ context.Context, companyID uint, date time.Time) ([]uint, error) {
	var out []uint
	for _, row := range r.rows {
		if row.CompanyID == companyID && sameDay(row.Date, date) {
			out = append(out, row.UserID)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountForDate(_ context.Context, companyID uint, date time.Time) (int64, error) {
	ids, _ := r.UserIDsWithEntryOn(context.Background(), companyID, date)
	return int64(len(ids)), nil
}

type fakeLeaveRepo struct {
	rows   map[uint]*models.Leave
	nextID uint
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{rows: make(map[uint]*models.Leave), nextID: 1}
}

func (r *fakeLeaveRepo) Create(_ context.Context, leave *models.Leave) error {
	leave.ID = r.nextID
	r.nextID++
	r.rows[leave.ID] = leave
	return nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id uint) (*models.Leave, error) {
	leave, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return leave, nil
}

func (r *fakeLeaveRepo) Update(_ context.Context, leave *models.Leave) error {
	r.rows[leave.ID] = leave
	return nil
}

func (r *fakeLeaveRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Leave, int64, error) {
	var out []*models.Leave
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) ListByCompany(_ context.Context, companyID uint, status string, offset, limit int) ([]*models.Leave, int64, error) {
	var out []*models.Leave
	for _, row := range r.rows {
		if row.CompanyID == companyID && (status == "" || row.Status == status) {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) CountPendingByCompany(_ context.Context, companyID uint) (int64, error) {
	_, total, _ := r.ListByCompany(context.Background(), companyID, models.LeaveStatusPending, 0, 0)
	return total, nil
}

func (r *fakeLeaveRepo) ApprovedDaysByType(_ context.Context, userID uint, year int) (map[string]int, error) {
	out := make(map[string]int)
	for _, row := range r.rows {
		if row.UserID == userID && row.Status == models.LeaveStatusApproved && row.StartDate.Year() == year {
			out[row.Type] += row.Days
		}
	}
	return out, nil
}

type fakeClaimRepo struct {
	rows   map[uint]*models.TravelClaim
	nextID uint
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{rows: make(map[uint]*models.TravelClaim), nextID: 1}
}

func (r *fakeClaimRepo) Create(_ context.Context, claim *models.TravelClaim) error {
	claim.ID = r.nextID
	r.nextID++
	r.rows[claim.ID] = claim
	return nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id uint) (*models.TravelClaim, error) {
	claim, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return claim, nil
}

func (r *fakeClaimRepo) Update(_ context.Context, claim *models.TravelClaim) error {
	r.rows[claim.ID] = claim
	return nil
}

func (r *fakeClaimRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.TravelClaim, int64, error) {
	var out []*models.TravelClaim
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeClaimRepo) ListByCompany(_ context.Context, companyID uint, status string, offset, limit int) ([]*models.TravelClaim, int64, error) {
	var out []*models.TravelClaim
	for _, row := range r.rows {
		if row.CompanyID == companyID && (status == "" || row.Status == status) {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeClaimRepo) CountPendingByCompany(_ context.Context, companyID uint) (int64, error) {
	_, total, _ := r.ListByCompany(context.Background(), companyID, models.ClaimStatusPending, 0, 0)
	return total, nil
}

type fakeSalaryRepo struct {
	rows   map[uint]*models.Salary
	nextID uint
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{rows: make(map[uint]*models.Salary), nextID: 1}
}

func (r *fakeSalaryRepo) Create(_ context.Context, salary *models.Salary) error {
	salary.ID = r.nextID
	r.nextID++
	r.rows[salary.ID] = salary
	return nil
}

func (r *fakeSalaryRepo) Update(_ context.Context, salary *models.Salary) error {
	r.rows[salary.ID] = salary
	return nil
}

func (r *fakeSalaryRepo) GetByID(_ context.Context, id uint) (*models.Salary, error) {
	salary, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return salary, nil
}

func (r *fakeSalaryRepo) GetByUserAndMonth(_ context.Context, userID uint, month string) (*models.Salary, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.Month == month {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSalaryRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Salary, int64, error) {
	var out []*models.Salary
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSalaryRepo) ListByCompanyAndMonth(_ context.Context, companyID uint, month string) ([]*models.Salary, error) {
	var out []*models.Salary
	for _, row := range r.rows {
		if row.CompanyID == companyID && row.Month == month {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	rows   map[uint]*models.Notification
	nextID uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{rows: make(map[uint]*models.Notification), nextID: 1}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	r.rows[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uint) (int64, error) {
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	row.IsRead = true
	return 1, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, row := range r.rows {
		if row.UserID == userID {
			row.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.UserID == userID && !row.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeActivityRepo struct {
	entries []*models.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Create(_ context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeActivityRepo) ListByCompany(_ context.Context, companyID uint, offset, limit int) ([]*models.ActivityLog, int64, error) {
	var out []*models.ActivityLog
	for _, entry := range r.entries {
		if entry.CompanyID == companyID {
			out = append(out, entry)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeActivityRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.ActivityLog, int64, error) {
	var out []*models.ActivityLog
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, int64(len(out)), nil
}
