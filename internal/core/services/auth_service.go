package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/pkg/geo"
	"staffhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrLocationRequired   = errors.New("location required for login")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// LocationRejectedError is returned when the caller is outside the
// account's geofence. It carries the computed distance (rounded to the
// nearest meter) and the configured radius.
type LocationRejectedError struct {
	DistanceM float64
	RadiusM   float64
}

func (e *LocationRejectedError) Error() string {
	return fmt.Sprintf("You are %.0fm away from the allowed location. Allowed radius: %.0fm",
		e.DistanceM, e.RadiusM)
}

// dummyHash is compared against when the email is unknown so that
// failed lookups and wrong passwords take comparable time and yield
// the identical error.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService handles the login state machine and session lifecycle
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	companyRepo repositories.CompanyRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	companyRepo repositories.CompanyRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		companyRepo: companyRepo,
		cfg:         cfg,
	}
}

// RegisterInput bootstraps a new company with its first admin account
type RegisterInput struct {
	CompanyName string `json:"company_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginInput represents login input; coordinates are optional and only
// consulted when the account has geofencing enabled
type LoginInput struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	SessionToken string               `json:"session_token"`
}

// Register creates a company and its first admin, then opens a session
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		Name: strings.TrimSpace(input.CompanyName),
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	user := &models.User{
		CompanyID: company.ID,
		FullName:  strings.TrimSpace(input.FullName),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Company registered: %s (admin: %s)", company.Name, user.Email)

	user.Company = company
	return &AuthResponse{
		User:         user.ToResponse(),
		SessionToken: token,
	}, nil
}

// Login runs the login state machine: credential check, then the
// geofence check when the account requires it, then session
// establishment. Each step must pass before the next runs.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Credential check. Unknown email and wrong password are
	// indistinguishable to the caller.
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			password.Verify(input.Password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 2. Geofence check, only for accounts that have it configured
	if user.GeofenceActive() {
		if input.Latitude == nil || input.Longitude == nil {
			return nil, ErrLocationRequired
		}

		distance := geo.DistanceMeters(*input.Latitude, *input.Longitude, *user.AllowedLat, *user.AllowedLng)
		radius := user.GeofenceRadius()
		if !geo.WithinRadius(distance, radius) {
			return nil, &LocationRejectedError{
				DistanceM: math.Round(distance),
				RadiusM:   radius,
			}
		}
	}

	// 3. Session establishment
	token, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		SessionToken: token,
	}, nil
}

// Logout destroys the session. A store failure here is surfaced to the
// caller rather than swallowed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.DeleteByTokenHash(ctx, password.HashToken(token)); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll destroys every session for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.sessionRepo.DeleteAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions destroyed for user ID: %d", userID)
	return nil
}

// GetSession resolves an opaque token to its session, rejecting tokens
// past their absolute TTL
func (s *AuthService) GetSession(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, password.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.IsExpired() {
		// Best effort cleanup; the cron purge catches leftovers
		_ = s.sessionRepo.DeleteByTokenHash(ctx, session.TokenHash)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// establishSession stores the principal under a fresh opaque token and
// returns the token. Only the SHA-256 digest touches the database.
func (s *AuthService) establishSession(ctx context.Context, user *models.User) (string, error) {
	token := uuid.New().String()

	session := &models.Session{
		TokenHash: password.HashToken(token),
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Session.TTLHours) * time.Hour),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}
