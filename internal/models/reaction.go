package models

import (
	"time"
)

// Preset reaction types, aligned with the app's emoji reactions.
const (
	ReactionLike = "like"
	ReactionLove = "love"
	ReactionHaha = "haha"
	ReactionWow  = "wow"
	ReactionSad  = "sad"
)

// ValidReactionType reports whether t is one of the preset reaction types.
func ValidReactionType(t string) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad:
		return true
	}
	return false
}

type Reaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_post_reaction" json:"user_id"`
	PostID       uint      `gorm:"not null;index;uniqueIndex:idx_user_post_reaction" json:"post_id"`
	ReactionType string    `gorm:"size:16;not null" json:"reaction_type"`
	ReactedAt    int64     `gorm:"not null" json:"reacted_at"`
	CreatedAt    time.Time `json:"created_at"`
}
