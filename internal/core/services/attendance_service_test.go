package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffhub/internal/adapters/persistence/models"
)

func newTestAttendanceService(t *testing.T) (*AttendanceService, *fakeUserRepo, *fakeAttendanceRepo, *fakeCompanyRepo) {
	t.Helper()
	attendanceRepo := newFakeAttendanceRepo()
	userRepo := newFakeUserRepo()
	companyRepo := newFakeCompanyRepo()
	companyRepo.Create(context.Background(), &models.Company{
		Name:          "Acme",
		WorkStartTime: "09:00",
		LateGraceMins: 15,
		HalfDayMins:   240,
	})
	svc := NewAttendanceService(attendanceRepo, userRepo, companyRepo, newFakeActivityRepo())
	return svc, userRepo, attendanceRepo, companyRepo
}

func actorSession(userID, companyID uint, role models.Role) *models.Session {
	return &models.Session{UserID: userID, CompanyID: companyID, Role: role}
}

func TestCheckInStatus(t *testing.T) {
	day := func(clock string) time.Time {
		ts, err := time.ParseInLocation("2006-01-02 15:04", "2025-03-10 "+clock, time.Local)
		if err != nil {
			t.Fatalf("parse %s: %v", clock, err)
		}
		return ts
	}

	tests := []struct {
		name    string
		checkIn string
		want    string
	}{
		{"before start", "08:45", models.AttendanceStatusPresent},
		{"at start", "09:00", models.AttendanceStatusPresent},
		{"within grace", "09:15", models.AttendanceStatusPresent},
		{"past grace", "09:16", models.AttendanceStatusLate},
		{"afternoon", "14:00", models.AttendanceStatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckInStatus(day(tt.checkIn), "09:00", 15); got != tt.want {
				t.Errorf("CheckInStatus(%s) = %s, want %s", tt.checkIn, got, tt.want)
			}
		})
	}
}

func TestWorkedStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		workedMins int
		want       string
	}{
		{"full day stays present", models.AttendanceStatusPresent, 480, models.AttendanceStatusPresent},
		{"full day stays late", models.AttendanceStatusLate, 480, models.AttendanceStatusLate},
		{"short day downgraded", models.AttendanceStatusPresent, 120, models.AttendanceStatusHalfDay},
		{"exactly at threshold", models.AttendanceStatusPresent, 240, models.AttendanceStatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkedStatus(tt.current, tt.workedMins, 240); got != tt.want {
				t.Errorf("WorkedStatus(%s, %d) = %s, want %s", tt.current, tt.workedMins, got, tt.want)
			}
		})
	}
}

func TestCheckInAndOutFlow(t *testing.T) {
	svc, _, _, _ := newTestAttendanceService(t)
	actor := actorSession(7, 1, models.RoleEmployee)

	if _, err := svc.CheckOut(context.Background(), actor, &CheckInput{}); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("checkout before checkin: got %v, want ErrNotCheckedIn", err)
	}

	row, err := svc.CheckIn(context.Background(), actor, &CheckInput{Latitude: ptr(17.68), Longitude: ptr(83.21)})
	if err != nil {
		t.Fatalf("checkin failed: %v", err)
	}
	if row.CheckInAt == nil {
		t.Fatal("checkin time not set")
	}
	if row.CheckInLat == nil || *row.CheckInLat != 17.68 {
		t.Error("checkin coordinates not recorded")
	}

	if _, err := svc.CheckIn(context.Background(), actor, &CheckInput{}); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second checkin: got %v, want ErrAlreadyCheckedIn", err)
	}

	row, err = svc.CheckOut(context.Background(), actor, &CheckInput{})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if row.CheckOutAt == nil {
		t.Fatal("checkout time not set")
	}
	// Immediate checkout falls under the half day threshold
	if row.Status != models.AttendanceStatusHalfDay {
		t.Errorf("status = %s, want HALF_DAY", row.Status)
	}

	if _, err := svc.CheckOut(context.Background(), actor, &CheckInput{}); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("second checkout: got %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestCheckInReusesAbsentRow(t *testing.T) {
	svc, _, attendanceRepo, _ := newTestAttendanceService(t)
	actor := actorSession(7, 1, models.RoleEmployee)

	// Pre-created by the nightly sweep
	attendanceRepo.Create(context.Background(), &models.Attendance{
		CompanyID: 1,
		UserID:    7,
		Date:      time.Now(),
		Status:    models.AttendanceStatusAbsent,
	})

	row, err := svc.CheckIn(context.Background(), actor, &CheckInput{})
	if err != nil {
		t.Fatalf("checkin failed: %v", err)
	}
	if row.Status == models.AttendanceStatusAbsent {
		t.Error("status not recomputed on checkin")
	}
	if len(attendanceRepo.rows) != 1 {
		t.Errorf("rows = %d, want the absent row reused", len(attendanceRepo.rows))
	}
}

func TestMarkAbsentees(t *testing.T) {
	svc, userRepo, attendanceRepo, _ := newTestAttendanceService(t)

	for i, active := range []bool{true, true, true, false} {
		userRepo.Create(context.Background(), &models.User{
			CompanyID: 1,
			FullName:  "Worker",
			Email:     "w" + string(rune('a'+i)) + "@example.com",
			IsActive:  active,
		})
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	attendanceRepo.Create(context.Background(), &models.Attendance{
		CompanyID: 1,
		UserID:    1,
		Date:      yesterday,
		Status:    models.AttendanceStatusPresent,
	})

	marked, err := svc.MarkAbsentees(context.Background(), 1, yesterday)
	if err != nil {
		t.Fatalf("mark absentees failed: %v", err)
	}
	// Users 2 and 3 were active with no entry; user 4 is inactive
	if marked != 2 {
		t.Errorf("marked = %d, want 2", marked)
	}
}
