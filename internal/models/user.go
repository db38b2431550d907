package models

import (
	"time"
)

// StartingChipBalance is granted once at signup. A user's transaction history
// measures the delta from this value.
const StartingChipBalance = 1000

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:40;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // Hash
	DisplayName string    `gorm:"size:60" json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	ChipBalance int       `gorm:"not null;default:0" json:"chip_balance"`
	Role        string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Not a database column, filled by leaderboard queries
	Rank int `gorm:"-" json:"rank,omitempty"`
}
