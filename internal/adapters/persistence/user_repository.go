package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, userID shared.UserID) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).Where("id = ?", userID.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("user", userID.String())
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}

	return modelToUser(&model)
}

// FindByEmail retrieves a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).Where("email = ?", user.NormalizeEmail(email)).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("user", email)
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}

	return modelToUser(&model)
}

// Add persists a new user
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:           u.ID.Value(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	return nil
}

// DeleteByEmail removes the user with their ships and sessions in one transaction.
// Deleting an unknown email is a no-op.
func (r *GormUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserModel
		result := tx.Where("email = ?", user.NormalizeEmail(email)).First(&model)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find user: %w", result.Error)
		}

		if err := tx.Where("owner_id = ?", model.ID).Delete(&ShipModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ships: %w", err)
		}
		if err := tx.Where("user_id = ?", model.ID).Delete(&SessionModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete sessions: %w", err)
		}
		if err := tx.Delete(&model).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func modelToUser(model *UserModel) (*user.User, error) {
	id, err := shared.NewUserID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %w", err)
	}

	return &user.User{
		ID:           id,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}
