package models

import (
	"time"

	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// User is an operator account for the web application.
type User struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string         `gorm:"type:text;not null;uniqueIndex:idx_users_username" json:"username"`
	Email        string         `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string         `gorm:"type:text;not null" json:"-"`
	FullName     string         `gorm:"type:text" json:"full_name"`
	Role         enums.UserRole `gorm:"type:user_role;not null;default:user" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time     `gorm:"type:timestamptz" json:"last_login"`
	CreatedAt    time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
