package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/config"
	"staffhub/internal/pkg/geo"
	"staffhub/internal/pkg/password"
)

func ptr(f float64) *float64 { return &f }

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{TTLHours: 24},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeSessionRepo, *fakeCompanyRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	companyRepo := newFakeCompanyRepo()
	return NewAuthService(userRepo, sessionRepo, companyRepo, testConfig()), userRepo, sessionRepo, companyRepo
}

func seedUser(t *testing.T, userRepo *fakeUserRepo, mutate func(*models.User)) *models.User {
	t.Helper()
	hashed, err := password.Hash("correct-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		CompanyID: 1,
		FullName:  "Asha Rao",
		Email:     "asha@example.com",
		Password:  hashed,
		Role:      models.RoleEmployee,
		IsActive:  true,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)
	seedUser(t, userRepo, nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "correct-password"},
		{"wrong password", "asha@example.com", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)
	seedUser(t, userRepo, func(u *models.User) { u.IsActive = false })

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "correct-password",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Fatalf("got %v, want ErrUserInactive", err)
	}
}

func TestLoginGeofence(t *testing.T) {
	const officeLat, officeLng = 17.6868, 83.2185

	newSvc := func(t *testing.T, radius float64) *AuthService {
		svc, userRepo, _, _ := newTestAuthService(t)
		seedUser(t, userRepo, func(u *models.User) {
			u.GeofenceEnabled = true
			u.AllowedLat = ptr(officeLat)
			u.AllowedLng = ptr(officeLng)
			u.AllowedRadiusM = radius
		})
		return svc
	}

	t.Run("missing coordinates", func(t *testing.T) {
		svc := newSvc(t, 100)
		_, err := svc.Login(context.Background(), &LoginInput{
			Email:    "asha@example.com",
			Password: "correct-password",
		})
		if !errors.Is(err, ErrLocationRequired) {
			t.Fatalf("got %v, want ErrLocationRequired", err)
		}
	})

	t.Run("inside the fence", func(t *testing.T) {
		svc := newSvc(t, 100)
		_, err := svc.Login(context.Background(), &LoginInput{
			Email:     "asha@example.com",
			Password:  "correct-password",
			Latitude:  ptr(officeLat),
			Longitude: ptr(officeLng),
		})
		if err != nil {
			t.Fatalf("login inside fence failed: %v", err)
		}
	})

	t.Run("outside the fence", func(t *testing.T) {
		svc := newSvc(t, 100)
		// Roughly 5km north of the office
		callerLat := officeLat + 0.045
		_, err := svc.Login(context.Background(), &LoginInput{
			Email:     "asha@example.com",
			Password:  "correct-password",
			Latitude:  ptr(callerLat),
			Longitude: ptr(officeLng),
		})
		var rejected *LocationRejectedError
		if !errors.As(err, &rejected) {
			t.Fatalf("got %v, want LocationRejectedError", err)
		}
		if rejected.RadiusM != 100 {
			t.Errorf("radius = %v, want 100", rejected.RadiusM)
		}
		wantDistance := math.Round(geo.DistanceMeters(callerLat, officeLng, officeLat, officeLng))
		if rejected.DistanceM != wantDistance {
			t.Errorf("distance = %v, want %v", rejected.DistanceM, wantDistance)
		}
		msg := rejected.Error()
		if !strings.Contains(msg, fmt.Sprintf("You are %.0fm away from the allowed location", wantDistance)) {
			t.Errorf("message %q missing rounded distance", msg)
		}
		if !strings.Contains(msg, "Allowed radius: 100m") {
			t.Errorf("message %q missing radius", msg)
		}
	})

	t.Run("disabled geofence ignores coordinates", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService(t)
		seedUser(t, userRepo, func(u *models.User) {
			u.GeofenceEnabled = false
			u.AllowedLat = ptr(officeLat)
			u.AllowedLng = ptr(officeLng)
		})
		// Far away, but the fence is off
		_, err := svc.Login(context.Background(), &LoginInput{
			Email:     "asha@example.com",
			Password:  "correct-password",
			Latitude:  ptr(0.0),
			Longitude: ptr(0.0),
		})
		if err != nil {
			t.Fatalf("login with disabled geofence failed: %v", err)
		}
	})

	t.Run("enabled without coordinates configured is unrestricted", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService(t)
		seedUser(t, userRepo, func(u *models.User) {
			u.GeofenceEnabled = true
		})
		_, err := svc.Login(context.Background(), &LoginInput{
			Email:    "asha@example.com",
			Password: "correct-password",
		})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	svc, userRepo, sessionRepo, _ := newTestAuthService(t)
	user := seedUser(t, userRepo, func(u *models.User) { u.Role = models.RoleHR })

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.SessionToken == "" {
		t.Fatal("no session token returned")
	}

	session, err := svc.GetSession(context.Background(), result.SessionToken)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if session.UserID != user.ID || session.CompanyID != user.CompanyID || session.Role != models.RoleHR {
		t.Errorf("session principal = %d/%d/%s, want %d/%d/%s",
			session.UserID, session.CompanyID, session.Role,
			user.ID, user.CompanyID, models.RoleHR)
	}

	// The raw token never touches the store
	if _, ok := sessionRepo.sessions[result.SessionToken]; ok {
		t.Error("session stored under the raw token")
	}
	if _, ok := sessionRepo.sessions[password.HashToken(result.SessionToken)]; !ok {
		t.Error("session not stored under the token hash")
	}

	if err := svc.Logout(context.Background(), result.SessionToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.GetSession(context.Background(), result.SessionToken); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v after logout, want ErrSessionNotFound", err)
	}
}

func TestGetSessionExpired(t *testing.T) {
	svc, _, sessionRepo, _ := newTestAuthService(t)

	token := "expired-token"
	sessionRepo.sessions[password.HashToken(token)] = &models.Session{
		ID:        1,
		TokenHash: password.HashToken(token),
		UserID:    1,
		CompanyID: 1,
		Role:      models.RoleEmployee,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	if _, err := svc.GetSession(context.Background(), token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
	if len(sessionRepo.sessions) != 0 {
		t.Error("expired session not cleaned up")
	}
}

func TestLogoutSurfacesStoreFailure(t *testing.T) {
	svc, _, sessionRepo, _ := newTestAuthService(t)
	sessionRepo.deleteErr = errors.New("store unavailable")

	if err := svc.Logout(context.Background(), "any-token"); err == nil {
		t.Fatal("expected error from failing session store")
	}
}

func TestRegister(t *testing.T) {
	svc, userRepo, _, companyRepo := newTestAuthService(t)

	result, err := svc.Register(context.Background(), &RegisterInput{
		CompanyName: "Acme Pvt Ltd",
		FullName:    "Priya Nair",
		Email:       "Priya@Acme.example",
		Password:    "long-enough-pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.Role != models.RoleAdmin {
		t.Errorf("first user role = %s, want admin", result.User.Role)
	}
	if result.User.Email != "priya@acme.example" {
		t.Errorf("email not normalized: %s", result.User.Email)
	}
	if len(companyRepo.companies) != 1 {
		t.Errorf("companies = %d, want 1", len(companyRepo.companies))
	}

	// Duplicate email is rejected
	_, err = svc.Register(context.Background(), &RegisterInput{
		CompanyName: "Other Co",
		FullName:    "Someone Else",
		Email:       "priya@acme.example",
		Password:    "long-enough-pass",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}

	if len(userRepo.users) != 1 {
		t.Errorf("users = %d, want 1", len(userRepo.users))
	}
}
