package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Employee service errors
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrInvalidRole         = errors.New("invalid role")
	ErrGeofenceIncomplete  = errors.New("geofence requires both latitude and longitude")
)

// EmployeeService handles employee management business logic
type EmployeeService struct {
	userRepo     repositories.UserRepository
	sessionRepo  repositories.SessionRepository
	activityRepo repositories.ActivityLogRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	activityRepo repositories.ActivityLogRepository,
) *EmployeeService {
	return &EmployeeService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		activityRepo: activityRepo,
	}
}

// CreateEmployeeInput represents employee creation input (admin)
type CreateEmployeeInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

// UpdateEmployeeInput represents admin updates to an employee
type UpdateEmployeeInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Position *string `json:"position"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// UpdateGeofenceInput represents admin updates to an employee's geofence
type UpdateGeofenceInput struct {
	Enabled bool     `json:"enabled"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	RadiusM *float64 `json:"radius_m"`
}

// UpdateProfileInput represents self-service profile updates
type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// CreateEmployee creates an employee inside the admin's own company
func (s *EmployeeService) CreateEmployee(ctx context.Context, actor *models.Session, input *CreateEmployeeInput) (*models.UserResponse, error) {
	role := models.Role(input.Role)
	if input.Role == "" {
		role = models.RoleEmployee
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		CompanyID: actor.CompanyID,
		FullName:  strings.TrimSpace(input.FullName),
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Position:  strings.TrimSpace(input.Position),
		Phone:     strings.TrimSpace(input.Phone),
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionEmployeeAdmin, user.ID, fmt.Sprintf("created employee %s", user.Email))
	log.Printf("✅ Employee created: %s (company %d)", user.Email, user.CompanyID)

	return user.ToResponse(), nil
}

// ListEmployees lists employees of the actor's company with pagination
func (s *EmployeeService) ListEmployees(ctx context.Context, companyID uint, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.ListByCompany(ctx, companyID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

// GetEmployee gets one employee of the given company by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, companyID, id uint) (*models.UserResponse, error) {
	user, err := getOwned(ctx, companyID, id, s.userRepo.GetByID, ErrEmployeeNotFound)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateEmployee updates an employee (admin)
func (s *EmployeeService) UpdateEmployee(ctx context.Context, actor *models.Session, id uint, input *UpdateEmployeeInput) (*models.UserResponse, error) {
	user, err := getOwned(ctx, actor.CompanyID, id, s.userRepo.GetByID, ErrEmployeeNotFound)
	if err != nil {
		return nil, err
	}

	// Admins cannot demote themselves
	if id == actor.UserID && input.Role != nil {
		return nil, ErrCannotChangeOwnRole
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		role := models.Role(*input.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if input.Position != nil {
		user.Position = strings.TrimSpace(*input.Position)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Deactivated accounts lose their sessions immediately
	if input.IsActive != nil && !*input.IsActive {
		_ = s.sessionRepo.DeleteAllByUserID(ctx, user.ID)
	}

	s.record(ctx, actor, models.ActionEmployeeAdmin, user.ID, fmt.Sprintf("updated employee %s", user.Email))

	return user.ToResponse(), nil
}

// UpdateGeofence updates an employee's login geofence (admin)
func (s *EmployeeService) UpdateGeofence(ctx context.Context, actor *models.Session, id uint, input *UpdateGeofenceInput) (*models.UserResponse, error) {
	user, err := getOwned(ctx, actor.CompanyID, id, s.userRepo.GetByID, ErrEmployeeNotFound)
	if err != nil {
		return nil, err
	}

	// Completeness is judged on the merged record, not the stored one
	lat, lng := user.AllowedLat, user.AllowedLng
	if input.Lat != nil {
		lat = input.Lat
	}
	if input.Lng != nil {
		lng = input.Lng
	}
	if input.Enabled && (lat == nil || lng == nil) {
		return nil, ErrGeofenceIncomplete
	}

	user.GeofenceEnabled = input.Enabled
	user.AllowedLat = lat
	user.AllowedLng = lng
	if input.RadiusM != nil && *input.RadiusM > 0 {
		user.AllowedRadiusM = *input.RadiusM
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.ActionEmployeeAdmin, user.ID, fmt.Sprintf("updated geofence for %s", user.Email))

	return user.ToResponse(), nil
}

// DeleteEmployee soft deletes an employee (admin) and kills their sessions
func (s *EmployeeService) DeleteEmployee(ctx context.Context, actor *models.Session, id uint) error {
	if id == actor.UserID {
		return ErrCannotDeleteSelf
	}

	user, err := getOwned(ctx, actor.CompanyID, id, s.userRepo.GetByID, ErrEmployeeNotFound)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.sessionRepo.DeleteAllByUserID(ctx, id)

	s.record(ctx, actor, models.ActionEmployeeAdmin, id, fmt.Sprintf("deleted employee %s", user.Email))
	return nil
}

// GetProfile gets own profile
func (s *EmployeeService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates own profile
func (s *EmployeeService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// ChangePassword changes the caller's password
func (s *EmployeeService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrEmployeeNotFound
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	if !password.ValidatePassword(input.NewPassword) {
		return errors.New("new password must be at least 8 characters")
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// record appends an activity log entry; logging failures never fail
// the mutation they describe
func (s *EmployeeService) record(ctx context.Context, actor *models.Session, action string, entityID uint, details string) {
	entry := &models.ActivityLog{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		Action:    action,
		Entity:    "employee",
		EntityID:  entityID,
		Details:   details,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}
}
