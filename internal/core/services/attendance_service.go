package services

import (
	"context"
	"errors"
	"log"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Attendance errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

// AttendanceService handles attendance business logic
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	userRepo       repositories.UserRepository
	companyRepo    repositories.CompanyRepository
	activityRepo   repositories.ActivityLogRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	activityRepo repositories.ActivityLogRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		activityRepo:   activityRepo,
	}
}

// CheckInput carries optional coordinates recorded with a check event
type CheckInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CheckIn opens today's attendance row for the caller
func (s *AttendanceService) CheckIn(ctx context.Context, actor *models.Session, input *CheckInput) (*models.Attendance, error) {
	now := time.Now()
	today := dateOnly(now)

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, actor.UserID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.CheckInAt != nil {
		return nil, ErrAlreadyCheckedIn
	}

	company, err := s.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	status := CheckInStatus(now, company.WorkStartTime, company.LateGraceMins)

	var attendance *models.Attendance
	if existing != nil {
		// Row pre-created as ABSENT by the daily sweep
		existing.CheckInAt = &now
		existing.CheckInLat = input.Latitude
		existing.CheckInLng = input.Longitude
		existing.Status = status
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		attendance = existing
	} else {
		attendance = &models.Attendance{
			CompanyID:  actor.CompanyID,
			UserID:     actor.UserID,
			Date:       today,
			CheckInAt:  &now,
			CheckInLat: input.Latitude,
			CheckInLng: input.Longitude,
			Status:     status,
		}
		if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
			return nil, err
		}
	}

	s.record(ctx, actor, models.ActionCheckIn, attendance.ID)
	return attendance, nil
}

// CheckOut closes today's attendance row for the caller
func (s *AttendanceService) CheckOut(ctx context.Context, actor *models.Session, input *CheckInput) (*models.Attendance, error) {
	now := time.Now()
	today := dateOnly(now)

	attendance, err := s.attendanceRepo.GetByUserAndDate(ctx, actor.UserID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if attendance.CheckInAt == nil {
		return nil, ErrNotCheckedIn
	}
	if attendance.CheckOutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}

	company, err := s.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	attendance.CheckOutAt = &now
	attendance.CheckOutLat = input.Latitude
	attendance.CheckOutLng = input.Longitude
	attendance.WorkedMins = int(now.Sub(*attendance.CheckInAt).Minutes())
	attendance.Status = WorkedStatus(attendance.Status, attendance.WorkedMins, company.HalfDayMins)

	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionCheckOut, attendance.ID)
	return attendance, nil
}

// ListForUser lists attendance rows for one user
func (s *AttendanceService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	return s.attendanceRepo.ListByUser(ctx, userID, offset, limit)
}

// ListToday lists today's attendance across the company (admin)
func (s *AttendanceService) ListToday(ctx context.Context, companyID uint) ([]*models.Attendance, error) {
	return s.attendanceRepo.ListByCompanyAndDate(ctx, companyID, dateOnly(time.Now()))
}

// MarkAbsentees inserts ABSENT rows for every active employee of the
// company who has no attendance entry on the given day. Run by the
// daily sweep for the previous workday.
func (s *AttendanceService) MarkAbsentees(ctx context.Context, companyID uint, date time.Time) (int, error) {
	date = dateOnly(date)

	activeIDs, err := s.userRepo.ActiveIDsByCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}

	presentIDs, err := s.attendanceRepo.UserIDsWithEntryOn(ctx, companyID, date)
	if err != nil {
		return 0, err
	}

	present := make(map[uint]bool, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = true
	}

	marked := 0
	for _, id := range activeIDs {
		if present[id] {
			continue
		}
		row := &models.Attendance{
			CompanyID: companyID,
			UserID:    id,
			Date:      date,
			Status:    models.AttendanceStatusAbsent,
		}
		if err := s.attendanceRepo.Create(ctx, row); err != nil {
			log.Printf("⚠️ Failed to mark absence for user %d: %v", id, err)
			continue
		}
		marked++
	}

	return marked, nil
}

// CheckInStatus derives the attendance status at check-in time. A
// check-in later than work start plus the grace window counts as LATE.
func CheckInStatus(checkIn time.Time, workStart string, graceMins int) string {
	start, err := time.ParseInLocation("2006-01-02 15:04",
		checkIn.Format("2006-01-02")+" "+workStart, checkIn.Location())
	if err != nil {
		return models.AttendanceStatusPresent
	}

	if checkIn.After(start.Add(time.Duration(graceMins) * time.Minute)) {
		return models.AttendanceStatusLate
	}
	return models.AttendanceStatusPresent
}

// WorkedStatus downgrades a day to HALF_DAY when the worked time fell
// below the company threshold; LATE is preserved otherwise.
func WorkedStatus(current string, workedMins, halfDayMins int) string {
	if workedMins < halfDayMins {
		return models.AttendanceStatusHalfDay
	}
	return current
}

// dateOnly strips the time portion, keeping the local calendar day
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *AttendanceService) record(ctx context.Context, actor *models.Session, action string, entityID uint) {
	entry := &models.ActivityLog{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Action:    action,
		Entity:    "attendance",
		EntityID:  entityID,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}
}
