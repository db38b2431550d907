package models

import (
	"time"
)

// Vote is one user's wagered guess on a post. One vote per (user, post),
// enforced by the unique index and re-checked inside the placing transaction.
// ChipsWon stays nil until settlement, then is fixed forever: +wager if the
// guess was right, -wager if not.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post" json:"post_id"`
	Guess     string    `gorm:"size:8;not null" json:"guess"` // truth or bluff
	Wager     int       `gorm:"not null" json:"wager"`
	ChipsWon  *int      `json:"chips_won,omitempty"`
	VotedAt   int64     `gorm:"not null" json:"voted_at"`
	CreatedAt time.Time `json:"created_at"`
}
