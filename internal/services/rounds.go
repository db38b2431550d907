package services

import (
	"errors"
	"math/rand"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/schedule"
	"bluffpot/internal/utils"

	"gorm.io/gorm"
)

var ErrRoundNotFound = errors.New("round not found")

// Daily challenge prompts. One is chosen at random for each round.
var roundPrompts = []string{
	"What's your most overrated Vegas moment?",
	"What's the one spot you'd never tell tourists about?",
	"Best local spot in town. No tourists, no lines — prove it.",
	"Most overrated Vegas moment? Fight me.",
	"Your best local secret. Go.",
	"Something that only a Vegas local would know.",
	"The most underrated thing to do in Vegas.",
	"Your go-to spot when you want to avoid the strip.",
	"Best Vegas moment that didn't cost a dime.",
	"What would you tell a tourist to skip?",
}

func pickRandomPrompt() string {
	return roundPrompts[rand.Intn(len(roundPrompts))]
}

const activeRoundCacheKey = "round:active"

// EnsureRoundForDate returns the round for the given YYYY-MM-DD date, creating
// it if missing. Creation and the back-patch of the previous day's RevealTime
// (chaining reveal to this round's open) run in one transaction, so there is
// no window where the old round never closes.
func EnsureRoundForDate(date string) (uint, error) {
	var roundID uint
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Round
		if err := tx.Where("date = ?", date).First(&existing).Error; err == nil {
			roundID = existing.ID
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// If tomorrow's round already exists, its start is this round's reveal.
		nextDate, err := schedule.NextDate(date)
		if err != nil {
			return err
		}
		var nextRoundStartMs int64
		var next models.Round
		if err := tx.Where("date = ?", nextDate).First(&next).Error; err == nil {
			nextRoundStartMs = next.PostWindowStart
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		times, err := schedule.RoundTimes(date, nextRoundStartMs, nil)
		if err != nil {
			return err
		}

		round := models.Round{
			PromptText:      pickRandomPrompt(),
			Date:            date,
			PostWindowStart: times.PostWindowStart,
			PostWindowEnd:   times.PostWindowEnd,
			RevealTime:      times.RevealTime,
		}
		if err := tx.Create(&round).Error; err != nil {
			return err
		}
		roundID = round.ID

		prevDate, err := schedule.PrevDate(date)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Round{}).
			Where("date = ?", prevDate).
			UpdateColumn("reveal_time", times.PostWindowStart).
			Error; err != nil {
			return err
		}

		utils.GetCache().Delete(activeRoundCacheKey)
		return nil
	})
	return roundID, err
}

// EnsureCurrentRounds ensures today's and yesterday's rounds exist. Yesterday
// covers the cross-midnight edge where last night's round is still open.
func EnsureCurrentRounds() error {
	now := time.Now()
	if _, err := EnsureRoundForDate(schedule.DateString(now, 0)); err != nil {
		return err
	}
	_, err := EnsureRoundForDate(schedule.DateString(now, -1))
	return err
}

// GetRoundByDate loads one round by its date key.
func GetRoundByDate(date string) (*models.Round, error) {
	var round models.Round
	if err := db.DB.Where("date = ?", date).First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

// ListRounds returns the most recent rounds, newest first.
func ListRounds(limit int) ([]models.Round, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var rounds []models.Round
	err := db.DB.Order("date DESC").Limit(limit).Find(&rounds).Error
	return rounds, err
}

// ActiveRound is the round driving the UI right now plus its derived state.
type ActiveRound struct {
	Round                     models.Round           `json:"round"`
	IsActive                  bool                   `json:"is_active"`
	Phase                     string                 `json:"phase"`
	Status                    schedule.StatusPayload `json:"status"`
	ChallengeLabel            string                 `json:"challenge_label"`
	PostingEndsAt             int64                  `json:"posting_ends_at"`
	PreviousPostingFinishedAt int64                  `json:"previous_posting_finished_at,omitempty"`
}

// GetActiveRound picks the round to show: the one whose posting window
// contains now (after midnight we still show yesterday's round until it
// closes), else the nearest upcoming round, else the most recent. The raw
// round list is cached briefly; phase and status are recomputed per call.
func GetActiveRound(nowMs int64) (*ActiveRound, error) {
	rounds, err := recentRounds()
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, ErrRoundNotFound
	}

	normalized := make([]schedule.Times, len(rounds))
	for i, r := range rounds {
		normalized[i] = schedule.Normalize(r.PostWindowStart, r.PostWindowEnd, r.RevealTime)
	}

	chosen := -1
	for i := range rounds {
		if nowMs >= normalized[i].PostWindowStart && nowMs < normalized[i].PostWindowEnd {
			chosen = i
			break
		}
	}
	if chosen == -1 {
		// Nearest upcoming, falling back to the most recently created.
		upcoming := -1
		for i := range rounds {
			if rounds[i].PostWindowStart <= nowMs {
				continue
			}
			if upcoming == -1 || rounds[i].PostWindowStart < rounds[upcoming].PostWindowStart {
				upcoming = i
			}
		}
		if upcoming != -1 {
			chosen = upcoming
		} else {
			chosen = 0
		}
	}

	// Previous round = the one whose posting closed most recently before the
	// chosen round opened.
	var previousEnd int64
	for i := range rounds {
		if normalized[i].PostWindowEnd >= normalized[chosen].PostWindowStart {
			continue
		}
		if normalized[i].PostWindowEnd > previousEnd {
			previousEnd = normalized[i].PostWindowEnd
		}
	}

	round := rounds[chosen]
	phase := schedule.PhaseAt(nowMs, round.PostWindowStart, round.PostWindowEnd, round.RevealTime)
	status := schedule.StatusAt(nowMs, round.PostWindowStart, round.PostWindowEnd, round.RevealTime, previousEnd)

	return &ActiveRound{
		Round:                     round,
		IsActive:                  nowMs >= normalized[chosen].PostWindowStart && nowMs < normalized[chosen].PostWindowEnd,
		Phase:                     phase.String(),
		Status:                    status,
		ChallengeLabel:            schedule.ChallengeLabel(nowMs, round.PostWindowStart, phase),
		PostingEndsAt:             normalized[chosen].PostWindowEnd,
		PreviousPostingFinishedAt: previousEnd,
	}, nil
}

func recentRounds() ([]models.Round, error) {
	if cached := utils.GetCache().Get(activeRoundCacheKey); cached != nil {
		if rounds, ok := cached.([]models.Round); ok {
			return rounds, nil
		}
	}
	var rounds []models.Round
	if err := db.DB.Order("date DESC").Limit(30).Find(&rounds).Error; err != nil {
		return nil, err
	}
	utils.GetCache().Set(activeRoundCacheKey, rounds, 30*time.Second)
	return rounds, nil
}

// SeedDevRound inserts a round that opens immediately. Dev tooling only.
func SeedDevRound(promptText string) (*models.Round, error) {
	now := time.Now()
	nowMs := now.UnixMilli()
	if promptText == "" {
		promptText = pickRandomPrompt()
	}
	round := models.Round{
		PromptText:      promptText,
		Date:            schedule.DateString(now, 0),
		PostWindowStart: nowMs,
		PostWindowEnd:   nowMs + 2*60*60*1000,
		RevealTime:      nowMs + 24*60*60*1000,
	}
	if err := db.DB.Create(&round).Error; err != nil {
		return nil, err
	}
	utils.GetCache().Delete(activeRoundCacheKey)
	return &round, nil
}
