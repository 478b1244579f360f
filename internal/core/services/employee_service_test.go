package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/pkg/password"
)

func newTestEmployeeService() (*EmployeeService, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	return NewEmployeeService(userRepo, sessionRepo, newFakeActivityRepo()), userRepo, sessionRepo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateEmployee(t *testing.T) {
	svc, userRepo, _ := newTestEmployeeService()
	admin := actorSession(1, 1, models.RoleAdmin)

	created, err := svc.CreateEmployee(context.Background(), admin, &CreateEmployeeInput{
		FullName: "Ravi Kumar",
		Email:    "Ravi@Example.com",
		Password: "long-enough-pass",
		Position: "Engineer",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != models.RoleEmployee {
		t.Errorf("default role = %s, want employee", created.Role)
	}
	if created.Email != "ravi@example.com" {
		t.Errorf("email not normalized: %s", created.Email)
	}
	if created.CompanyID != admin.CompanyID {
		t.Errorf("company = %d, want actor company %d", created.CompanyID, admin.CompanyID)
	}

	if _, err := svc.CreateEmployee(context.Background(), admin, &CreateEmployeeInput{
		FullName: "Dup",
		Email:    "ravi@example.com",
		Password: "long-enough-pass",
	}); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("got %v, want ErrEmailAlreadyExists", err)
	}

	if _, err := svc.CreateEmployee(context.Background(), admin, &CreateEmployeeInput{
		FullName: "Bad Role",
		Email:    "other@example.com",
		Password: "long-enough-pass",
		Role:     "superuser",
	}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("got %v, want ErrInvalidRole", err)
	}

	stored, _ := userRepo.GetByID(context.Background(), created.ID)
	if stored.Password == "long-enough-pass" {
		t.Error("password stored in the clear")
	}
}

func TestEmployeeCrossTenantMasking(t *testing.T) {
	svc, userRepo, _ := newTestEmployeeService()
	userRepo.Create(context.Background(), &models.User{CompanyID: 2, Email: "other@example.com", IsActive: true})
	admin := actorSession(9, 1, models.RoleAdmin)

	if _, err := svc.GetEmployee(context.Background(), admin.CompanyID, 1); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("get: got %v, want ErrEmployeeNotFound", err)
	}
	if _, err := svc.UpdateEmployee(context.Background(), admin, 1, &UpdateEmployeeInput{FullName: strPtr("X")}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("update: got %v, want ErrEmployeeNotFound", err)
	}
	if err := svc.DeleteEmployee(context.Background(), admin, 1); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("delete: got %v, want ErrEmployeeNotFound", err)
	}
}

func TestUpdateEmployeeGuards(t *testing.T) {
	svc, userRepo, _ := newTestEmployeeService()
	userRepo.Create(context.Background(), &models.User{
		CompanyID: 1, Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true,
	})
	admin := actorSession(1, 1, models.RoleAdmin)

	if _, err := svc.UpdateEmployee(context.Background(), admin, 1, &UpdateEmployeeInput{
		Role: strPtr(string(models.RoleEmployee)),
	}); !errors.Is(err, ErrCannotChangeOwnRole) {
		t.Fatalf("got %v, want ErrCannotChangeOwnRole", err)
	}

	if err := svc.DeleteEmployee(context.Background(), admin, 1); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("got %v, want ErrCannotDeleteSelf", err)
	}
}

func TestDeactivationKillsSessions(t *testing.T) {
	svc, userRepo, sessionRepo := newTestEmployeeService()
	userRepo.Create(context.Background(), &models.User{
		CompanyID: 1, Email: "w@example.com", Role: models.RoleEmployee, IsActive: true,
	})
	sessionRepo.Create(context.Background(), &models.Session{
		TokenHash: password.HashToken("t1"), UserID: 1, CompanyID: 1,
		Role: models.RoleEmployee, ExpiresAt: time.Now().Add(time.Hour),
	})
	admin := actorSession(9, 1, models.RoleAdmin)

	updated, err := svc.UpdateEmployee(context.Background(), admin, 1, &UpdateEmployeeInput{IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsActive {
		t.Error("account still active")
	}
	if len(sessionRepo.sessions) != 0 {
		t.Error("sessions of the deactivated account survived")
	}
}

func TestUpdateGeofenceRequiresCoordinates(t *testing.T) {
	svc, userRepo, _ := newTestEmployeeService()
	userRepo.Create(context.Background(), &models.User{
		CompanyID: 1, Email: "w@example.com", Role: models.RoleEmployee, IsActive: true,
	})
	admin := actorSession(9, 1, models.RoleAdmin)

	if _, err := svc.UpdateGeofence(context.Background(), admin, 1, &UpdateGeofenceInput{
		Enabled: true,
	}); !errors.Is(err, ErrGeofenceIncomplete) {
		t.Fatalf("got %v, want ErrGeofenceIncomplete", err)
	}

	updated, err := svc.UpdateGeofence(context.Background(), admin, 1, &UpdateGeofenceInput{
		Enabled: true,
		Lat:     ptr(17.6868),
		Lng:     ptr(83.2185),
		RadiusM: ptr(150.0),
	})
	if err != nil {
		t.Fatalf("update geofence failed: %v", err)
	}
	if !updated.GeofenceEnabled {
		t.Error("geofence not enabled")
	}

	// Re-enabling without coordinates keeps the stored ones
	if _, err := svc.UpdateGeofence(context.Background(), admin, 1, &UpdateGeofenceInput{Enabled: true}); err != nil {
		t.Fatalf("re-enable failed: %v", err)
	}
}

func TestUpdateGeofenceMergesCoordinates(t *testing.T) {
	svc, userRepo, _ := newTestEmployeeService()
	userRepo.Create(context.Background(), &models.User{
		CompanyID: 1, Email: "w@example.com", Role: models.RoleEmployee, IsActive: true,
		AllowedLng: ptr(83.2185),
	})
	admin := actorSession(9, 1, models.RoleAdmin)

	// The stored longitude plus the supplied latitude form a complete fence
	updated, err := svc.UpdateGeofence(context.Background(), admin, 1, &UpdateGeofenceInput{
		Enabled: true,
		Lat:     ptr(17.6868),
	})
	if err != nil {
		t.Fatalf("update geofence failed: %v", err)
	}
	if !updated.GeofenceEnabled {
		t.Error("geofence not enabled")
	}
	if updated.AllowedLat == nil || *updated.AllowedLat != 17.6868 {
		t.Error("supplied latitude not stored")
	}
	if updated.AllowedLng == nil || *updated.AllowedLng != 83.2185 {
		t.Error("stored longitude lost")
	}
}

func TestChangePassword(t *testing.T) {
	svc, userRepo, _ := newTestEmployeeService()
	hashed, _ := password.Hash("old-password-1")
	userRepo.Create(context.Background(), &models.User{
		CompanyID: 1, Email: "w@example.com", Password: hashed, IsActive: true,
	})

	if err := svc.ChangePassword(context.Background(), 1, &ChangePasswordInput{
		OldPassword: "not-the-old-one",
		NewPassword: "new-password-1",
	}); !errors.Is(err, ErrOldPasswordWrong) {
		t.Fatalf("got %v, want ErrOldPasswordWrong", err)
	}

	if err := svc.ChangePassword(context.Background(), 1, &ChangePasswordInput{
		OldPassword: "old-password-1",
		NewPassword: "new-password-1",
	}); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	user, _ := userRepo.GetByID(context.Background(), 1)
	if !password.Verify("new-password-1", user.Password) {
		t.Error("new password not in effect")
	}
}
