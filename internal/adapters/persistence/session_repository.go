package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID retrieves a session by its token
func (r *GormSessionRepository) FindByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model SessionModel
	result := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("session", sessionID)
		}
		return nil, fmt.Errorf("failed to find session: %w", result.Error)
	}

	userID, err := shared.NewUserID(model.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in session: %w", err)
	}

	return &user.Session{
		ID:        model.ID,
		UserID:    userID,
		CreatedAt: model.CreatedAt,
		ExpiresAt: model.ExpiresAt,
	}, nil
}

// Add persists a session
func (r *GormSessionRepository) Add(ctx context.Context, session *user.Session) error {
	model := &SessionModel{
		ID:        session.ID,
		UserID:    session.UserID.Value(),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (r *GormSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session expired at now
func (r *GormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
