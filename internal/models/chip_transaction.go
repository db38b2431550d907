package models

import (
	"time"
)

// Reasons for a chip transaction.
const (
	ReasonPostStake   = "post_stake"
	ReasonVoteStake   = "vote_stake"
	ReasonVoteCorrect = "vote_correct"
	ReasonBluffFooled = "bluff_fooled"
	ReasonDailyBonus  = "daily_bonus"
)

// ChipTransaction is an append-only ledger entry. Every balance change writes
// one of these in the same transaction; the sum of a user's amounts equals
// their balance delta from StartingChipBalance.
type ChipTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_user_date" json:"user_id"`
	PostID          *uint     `gorm:"index" json:"post_id,omitempty"`
	VoteID          *uint     `gorm:"index" json:"vote_id,omitempty"`
	Amount          int       `gorm:"not null" json:"amount"` // positive credit, negative debit
	Reason          string    `gorm:"size:32;not null" json:"reason"`
	TransactionDate int64     `gorm:"not null;index:idx_user_date" json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}
