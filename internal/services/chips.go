package services

import (
	"errors"
	"math/rand"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/schedule"

	"gorm.io/gorm"
)

// Wager/stake limits. Amounts are whole chips in steps of WagerStep.
const (
	WagerStep = 5
	MinWager  = 5
	MaxWager  = 1000

	// DefaultWager settles legacy votes persisted before wagers were stored.
	DefaultWager = 25

	DailyBonusChips    = 25
	DailyBonusExtraMax = 15
)

var (
	ErrWagerInvalid      = errors.New("wager must be in 5-chip increments between 5 and 1000")
	ErrStakeInvalid      = errors.New("stake must be in 5-chip increments between 5 and 1000")
	ErrInsufficientChips = errors.New("insufficient chips, you can only bet what you have")
)

// ValidateWager checks a mandatory vote wager.
func ValidateWager(amount int) error {
	if amount < MinWager || amount > MaxWager || amount%WagerStep != 0 {
		return ErrWagerInvalid
	}
	return nil
}

// ValidateStake checks an optional post stake; zero means no stake.
func ValidateStake(amount int) error {
	if amount == 0 {
		return nil
	}
	if amount < MinWager || amount > MaxWager || amount%WagerStep != 0 {
		return ErrStakeInvalid
	}
	return nil
}

// CreditChips writes a ledger entry and increments the balance inside the
// caller's transaction. Balance changes must always go through CreditChips or
// DebitChips so the ledger stays paired with the balance.
func CreditChips(tx *gorm.DB, userID uint, amount int, reason string, postID, voteID *uint, nowMs int64) error {
	entry := models.ChipTransaction{
		UserID:          userID,
		PostID:          postID,
		VoteID:          voteID,
		Amount:          amount,
		Reason:          reason,
		TransactionDate: nowMs,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("chip_balance", gorm.Expr("chip_balance + ?", amount)).
		Error
}

// DebitChips takes amount chips from the user inside the caller's transaction,
// writing the matching negative ledger entry. The balance check and the
// decrement are one conditional UPDATE, so a concurrent spend cannot drive the
// balance negative.
func DebitChips(tx *gorm.DB, userID uint, amount int, reason string, postID, voteID *uint, nowMs int64) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND chip_balance >= ?", userID, amount).
		UpdateColumn("chip_balance", gorm.Expr("chip_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientChips
	}
	entry := models.ChipTransaction{
		UserID:          userID,
		PostID:          postID,
		VoteID:          voteID,
		Amount:          -amount,
		Reason:          reason,
		TransactionDate: nowMs,
	}
	return tx.Create(&entry).Error
}

// ClaimDailyBonus grants the once-a-day chip bonus, sometimes with a small
// random extra. Returns the amounts granted and whether today was already
// claimed.
func ClaimDailyBonus(userID uint) (chips int, bonus int, alreadyClaimed bool, err error) {
	dayStart, dayEnd := todayRangeMs()

	var count int64
	db.DB.Model(&models.ChipTransaction{}).
		Where("user_id = ? AND reason = ? AND transaction_date >= ? AND transaction_date < ?",
			userID, models.ReasonDailyBonus, dayStart, dayEnd).
		Count(&count)
	if count > 0 {
		return 0, 0, true, nil
	}

	chips = DailyBonusChips
	if rand.Intn(100) < 30 {
		bonus = (rand.Intn(DailyBonusExtraMax/WagerStep) + 1) * WagerStep
	}

	now := time.Now().UnixMilli()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := CreditChips(tx, userID, chips, models.ReasonDailyBonus, nil, nil, now); err != nil {
			return err
		}
		if bonus > 0 {
			return CreditChips(tx, userID, bonus, models.ReasonDailyBonus, nil, nil, now)
		}
		return nil
	})
	return chips, bonus, false, err
}

// todayRangeMs bounds the current game-zone day in epoch millis.
func todayRangeMs() (int64, int64) {
	now := time.Now().In(schedule.Zone)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, schedule.Zone)
	return start.UnixMilli(), start.Add(24 * time.Hour).UnixMilli()
}
