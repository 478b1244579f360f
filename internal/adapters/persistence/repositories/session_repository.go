package repositories

import (
	"context"
	"time"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByTokenHash gets a session by its token hash
func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token_hash = ?", tokenHash).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByTokenHash destroys a session by its token hash. Destroying
// an absent session is not an error; only a store failure is.
func (r *sessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.Session{}).Error
}

// DeleteAllByUserID destroys all sessions for a user
func (r *sessionRepository) DeleteAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Session{}).Error
}

// DeleteExpired removes all sessions past their TTL (cleanup job)
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
