package services

import (
	"errors"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/schedule"

	"gorm.io/gorm"
)

var (
	ErrSelfVote      = errors.New("you can't vote on your own post")
	ErrVotingClosed  = errors.New("voting closed for this post")
	ErrAlreadyVoted  = errors.New("already voted on this post")
	ErrVotesNotReady = errors.New("votes are not available before reveal")
)

// PlaceVote records a wagered guess on a post. Enforces: voter is not the
// author, the post is unrevealed and its voting window open (normalized),
// one vote per (voter, post), and wager validation. The wager is debited with
// its ledger entry in the same transaction as the vote insert, which is what
// lets settlement treat losses as already realized.
func PlaceVote(voterID, postID uint, guess string, wager int) (*models.Vote, error) {
	if guess != models.GuessTruth && guess != models.GuessBluff {
		return nil, ErrInvalidGuess
	}
	if err := ValidateWager(wager); err != nil {
		return nil, err
	}

	nowMs := time.Now().UnixMilli()
	var vote models.Vote

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if post.AuthorID == voterID {
			return ErrSelfVote
		}
		if post.IsRevealed {
			return ErrVotingClosed
		}

		var round models.Round
		if err := tx.First(&round, post.RoundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}
		norm := schedule.Normalize(round.PostWindowStart, round.PostWindowEnd, round.RevealTime)
		if nowMs >= norm.RevealTime {
			return ErrVotingClosed
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", voterID, postID).First(&existing).Error
		if err == nil {
			return ErrAlreadyVoted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote = models.Vote{
			UserID:  voterID,
			PostID:  postID,
			Guess:   guess,
			Wager:   wager,
			VotedAt: nowMs,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		return DebitChips(tx, voterID, wager, models.ReasonVoteStake, &postID, &vote.ID, nowMs)
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// GetMyVote returns the user's vote on a post, nil if none.
func GetMyVote(userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := db.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountVotes returns a post's vote count (safe to show before reveal).
func CountVotes(postID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Vote{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// ListVotesForPost returns every vote on a revealed post. Refused before
// reveal so guesses can't leak.
func ListVotesForPost(postID uint) ([]models.Vote, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !post.IsRevealed {
		return nil, ErrVotesNotReady
	}
	var votes []models.Vote
	err := db.DB.Where("post_id = ?", postID).Order("voted_at").Find(&votes).Error
	return votes, err
}
