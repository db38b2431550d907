package services

import (
	"os"
	"sync"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/schedule"
	"bluffpot/internal/utils"
	"bluffpot/internal/utils/logger"
)

// SweepService drives settlement and round creation in the background. No
// external trigger is required: the interval sweep retries anything a missed
// execution left behind, because it always re-scans unrevealed posts.
type SweepService struct {
	interval time.Duration
	scanCap  int
}

var (
	sweepService *SweepService
	sweepOnce    sync.Once
)

const defaultSweepScanCap = 500

// GetSweepService returns the singleton sweep service.
func GetSweepService() *SweepService {
	sweepOnce.Do(func() {
		interval := 5 * time.Minute
		if m := utils.StringToInt(os.Getenv("SWEEP_INTERVAL_MINUTES")); m > 0 {
			interval = time.Duration(m) * time.Minute
		}
		scanCap := defaultSweepScanCap
		if c := utils.StringToInt(os.Getenv("SWEEP_SCAN_CAP")); c > 0 {
			scanCap = c
		}
		sweepService = &SweepService{interval: interval, scanCap: scanCap}
	})
	return sweepService
}

// Start launches the settlement sweep loop and the daily ensure-rounds job.
func (s *SweepService) Start() {
	go s.sweepLoop()
	go s.ensureRoundsLoop()
}

func (s *SweepService) sweepLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := s.RunOnce(); err != nil {
			logger.Errorf("settlement sweep failed: %v", err)
		}
	}
}

// RunOnce settles every unrevealed post whose round has passed its reveal
// time. A failure on one post is logged and does not stop the rest of the
// sweep. The scan is capped to bound latency; the next tick picks up the
// remainder. Returns the number of posts settled.
func (s *SweepService) RunOnce() (int, error) {
	nowMs := time.Now().UnixMilli()

	var posts []models.Post
	if err := db.DB.Where("is_revealed = ?", false).
		Order("id").
		Limit(s.scanCap).
		Find(&posts).Error; err != nil {
		return 0, err
	}

	rounds := make(map[uint]*models.Round)
	settled := 0
	for _, post := range posts {
		round, ok := rounds[post.RoundID]
		if !ok {
			var r models.Round
			if err := db.DB.First(&r, post.RoundID).Error; err != nil {
				logger.Warnf("sweep: post %d references missing round %d", post.ID, post.RoundID)
				rounds[post.RoundID] = nil
				continue
			}
			round = &r
			rounds[post.RoundID] = round
		}
		if round == nil {
			continue
		}

		norm := schedule.Normalize(round.PostWindowStart, round.PostWindowEnd, round.RevealTime)
		if norm.RevealTime > nowMs {
			continue
		}

		ok, err := SettlePost(post.ID)
		if err != nil {
			logger.Errorf("sweep: settling post %d: %v", post.ID, err)
			continue
		}
		if ok {
			settled++
		}
	}

	if settled > 0 {
		logger.Infof("settlement sweep settled %d post(s)", settled)
	}
	return settled, nil
}

// ensureRoundsLoop creates today's (and yesterday's) rounds shortly after
// local midnight, which also picks the day's random opening time.
func (s *SweepService) ensureRoundsLoop() {
	for {
		now := time.Now().In(schedule.Zone)
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, schedule.Zone)
		if !now.Before(next) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(time.Until(next))

		if err := EnsureCurrentRounds(); err != nil {
			logger.Errorf("daily round creation failed: %v", err)
		}
	}
}
