package models

import (
	"time"
)

// Round is one day's challenge cycle. All three timestamps are epoch millis.
// PostWindowStart..PostWindowEnd is when posting is allowed; voting stays open
// until RevealTime, which is back-patched to the next round's start when that
// round is created.
type Round struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PromptText      string    `gorm:"not null" json:"prompt_text"`
	Date            string    `gorm:"uniqueIndex;size:10;not null" json:"date"` // YYYY-MM-DD
	PostWindowStart int64     `gorm:"not null" json:"post_window_start"`
	PostWindowEnd   int64     `gorm:"not null" json:"post_window_end"`
	RevealTime      int64     `gorm:"not null" json:"reveal_time"`
	CreatedAt       time.Time `json:"created_at"`
}
