package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID is a value object representing a user's unique identifier
type UserID struct {
	value string
}

// NewUserID creates a new UserID value object from a UUID string
func NewUserID(id string) (UserID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return UserID{}, fmt.Errorf("user_id must be a UUID: %w", err)
	}
	return UserID{value: parsed.String()}, nil
}

// MustNewUserID creates a new UserID value object, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewUserID(id string) UserID {
	userID, err := NewUserID(id)
	if err != nil {
		panic(err)
	}
	return userID
}

// GenerateUserID returns a fresh random UserID
func GenerateUserID() UserID {
	return UserID{value: uuid.NewString()}
}

// Value returns the string value of the UserID
func (u UserID) Value() string {
	return u.value
}

// String returns a string representation of the UserID
func (u UserID) String() string {
	return u.value
}

// Equals checks if two UserIDs are equal
func (u UserID) Equals(other UserID) bool {
	return u.value == other.value
}

// IsZero checks if the UserID is the zero value (uninitialized)
func (u UserID) IsZero() bool {
	return u.value == ""
}
