package services

import (
	"errors"
	"fmt"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/schedule"
	"bluffpot/internal/utils/logger"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

// voteOutcome is the settlement result for one vote.
type voteOutcome struct {
	VoteID   uint
	UserID   uint
	Wager    int
	Correct  bool
	ChipsWon int // +wager or -wager, persisted on the vote
	Payout   int // chips credited to the voter (2x wager when correct, else 0)
}

// settlementOutcome is the full per-post settlement, computed before any
// write happens.
type settlementOutcome struct {
	Votes       []voteOutcome
	AuthorBonus int
	ChipPot     int
}

// computeSettlement scores every vote against the post's hidden value.
// Correct voters are paid 2x their wager; a losing stake was already debited
// when the vote was placed, so losers get no further balance change. If the
// post was a bluff and anyone fell for it, the author earns the sum of the
// fooled voters' wagers.
func computeSettlement(actual string, votes []models.Vote) settlementOutcome {
	isTruth := actual == models.GuessTruth
	out := settlementOutcome{Votes: make([]voteOutcome, 0, len(votes))}

	for _, v := range votes {
		wager := v.Wager
		if wager == 0 {
			wager = DefaultWager
		}
		correct := (v.Guess == models.GuessTruth) == isTruth

		o := voteOutcome{VoteID: v.ID, UserID: v.UserID, Wager: wager, Correct: correct}
		if correct {
			o.Payout = 2 * wager
			o.ChipsWon = wager
			out.ChipPot += o.Payout
		} else {
			o.ChipsWon = -wager
			if !isTruth {
				// Fooled by the bluff: their wager feeds the author bonus.
				out.AuthorBonus += wager
			}
		}
		out.Votes = append(out.Votes, o)
	}

	out.ChipPot += out.AuthorBonus
	return out
}

// SettlePost settles one post: writes a ledger entry per winning vote, fixes
// every vote's ChipsWon, credits balances, pays the bluff bonus and flips the
// post to revealed — all in one transaction.
//
// Safe to call redundantly and early: before reveal time or on an already
// revealed post it is a no-op (settled=false, nil error), and the revealed
// flag is claimed with a conditional UPDATE inside the transaction so two
// racing calls can never both pay out.
func SettlePost(postID uint) (settled bool, err error) {
	nowMs := time.Now().UnixMilli()

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if post.IsRevealed {
			return nil
		}

		var round models.Round
		if err := tx.First(&round, post.RoundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // orphan post, nothing to reveal against
			}
			return err
		}
		norm := schedule.Normalize(round.PostWindowStart, round.PostWindowEnd, round.RevealTime)
		if nowMs < norm.RevealTime {
			return nil
		}

		var votes []models.Vote
		if err := tx.Where("post_id = ?", postID).Find(&votes).Error; err != nil {
			return err
		}
		outcome := computeSettlement(post.Actual, votes)

		// Claim the reveal flag first. Zero rows means another settlement got
		// here between our read and now; back off without paying anyone.
		res := tx.Model(&models.Post{}).
			Where("id = ? AND is_revealed = ?", postID, false).
			Updates(map[string]interface{}{
				"is_revealed": true,
				"revealed_at": nowMs,
				"chip_pot":    outcome.ChipPot,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		pid := post.ID
		for _, o := range outcome.Votes {
			if err := tx.Model(&models.Vote{}).
				Where("id = ?", o.VoteID).
				UpdateColumn("chips_won", o.ChipsWon).
				Error; err != nil {
				return err
			}
			if !o.Correct {
				continue
			}
			vid := o.VoteID
			if err := CreditChips(tx, o.UserID, o.Payout, models.ReasonVoteCorrect, &pid, &vid, nowMs); err != nil {
				return err
			}
		}

		if outcome.AuthorBonus > 0 {
			if err := CreditChips(tx, post.AuthorID, outcome.AuthorBonus, models.ReasonBluffFooled, &pid, nil, nowMs); err != nil {
				return err
			}
		}

		notification := models.Notification{
			UserID:  post.AuthorID,
			PostID:  &pid,
			Type:    models.NotificationTypeReveal,
			Message: fmt.Sprintf("Your %s post was revealed. The pot came to %d chips.", post.Actual, outcome.ChipPot),
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		settled = true
		return nil
	})

	if settled {
		logger.Infof("settled post %d", postID)
	}
	return settled, err
}
