package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Tenancy & Auth Tables
// ============================================================

// Role is the closed set of user roles
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// IsAdministrative reports whether the role may manage other
// employees' records within the same company
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleHR
}

// Company represents companies table (tenant + settings)
type Company struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:150;not null" json:"name"`
	Address        string         `gorm:"size:255" json:"address"`
	Email          string         `gorm:"size:100" json:"email"`
	Phone          string         `gorm:"size:20" json:"phone"`
	WorkStartTime  string         `gorm:"size:5;default:'09:00'" json:"work_start_time"`
	WorkEndTime    string         `gorm:"size:5;default:'18:00'" json:"work_end_time"`
	LateGraceMins  int            `gorm:"default:15" json:"late_grace_mins"`
	HalfDayMins    int            `gorm:"default:240" json:"half_day_mins"`
	DefaultRadiusM float64        `gorm:"type:decimal(8,2);default:100" json:"default_radius_m"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}

// User represents users table
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CompanyID       uint           `gorm:"index;not null" json:"company_id"`
	FullName        string         `gorm:"size:100;not null" json:"full_name"`
	Email           string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password        string         `gorm:"size:255;not null" json:"-"`
	Role            Role           `gorm:"size:20;default:'employee'" json:"role"`
	Position        string         `gorm:"size:100" json:"position"`
	Phone           string         `gorm:"size:20" json:"phone"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	GeofenceEnabled bool           `gorm:"default:false" json:"geofence_enabled"`
	AllowedLat      *float64       `gorm:"type:decimal(10,7)" json:"allowed_lat"`
	AllowedLng      *float64       `gorm:"type:decimal(10,7)" json:"allowed_lng"`
	AllowedRadiusM  float64        `gorm:"type:decimal(8,2);default:100" json:"allowed_radius_m"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// DefaultGeofenceRadiusM is applied when no radius is configured
const DefaultGeofenceRadiusM = 100

// GeofenceActive reports whether login for this user must pass the
// location check. Enabled accounts missing either coordinate fall
// back to an unrestricted login.
func (u *User) GeofenceActive() bool {
	return u.GeofenceEnabled && u.AllowedLat != nil && u.AllowedLng != nil
}

// GeofenceRadius returns the configured radius in meters, defaulting
// to DefaultGeofenceRadiusM
func (u *User) GeofenceRadius() float64 {
	if u.AllowedRadiusM <= 0 {
		return DefaultGeofenceRadiusM
	}
	return u.AllowedRadiusM
}

// UserResponse DTO
type UserResponse struct {
	ID              uint      `json:"id"`
	CompanyID       uint      `json:"company_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	Position        string    `json:"position,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	IsActive        bool      `json:"is_active"`
	GeofenceEnabled bool      `json:"geofence_enabled"`
	AllowedLat      *float64  `json:"allowed_lat,omitempty"`
	AllowedLng      *float64  `json:"allowed_lng,omitempty"`
	AllowedRadiusM  float64   `json:"allowed_radius_m"`
	CompanyName     string    `json:"company_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OwnedBy returns the tenant the account belongs to
func (u *User) OwnedBy() uint {
	return u.CompanyID
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:              u.ID,
		CompanyID:       u.CompanyID,
		FullName:        u.FullName,
		Email:           u.Email,
		Role:            u.Role,
		Position:        u.Position,
		Phone:           u.Phone,
		IsActive:        u.IsActive,
		GeofenceEnabled: u.GeofenceEnabled,
		AllowedLat:      u.AllowedLat,
		AllowedLng:      u.AllowedLng,
		AllowedRadiusM:  u.GeofenceRadius(),
		CreatedAt:       u.CreatedAt,
	}
	if u.Company != nil {
		resp.CompanyName = u.Company.Name
	}
	return resp
}

// Session represents sessions table. The opaque token handed to the
// client is stored hashed; the row carries a snapshot of the principal
// so authorization never trusts client-supplied identity.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CompanyID uint      `gorm:"not null" json:"company_id"`
	Role      Role      `gorm:"size:20;not null" json:"role"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

// IsExpired reports whether the session passed its absolute TTL.
// There is no sliding expiration.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
