package persistence

import (
	"time"
)

// UserModel represents the users table
type UserModel struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// SessionModel represents the sessions table
type SessionModel struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserID    string     `gorm:"column:user_id;not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User      *UserModel `gorm:"foreignKey:UserID;references:ID"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null;index"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// ShipModel represents the ships table
type ShipModel struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name      string     `gorm:"column:name;size:100;not null"`
	OwnerID   string     `gorm:"column:owner_id;not null;index:idx_ships_owner_updated,priority:1;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Owner     *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;index:idx_ships_owner_updated,priority:2,sort:desc"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// AllModels lists every model managed by AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&SessionModel{},
		&ShipModel{},
	}
}
