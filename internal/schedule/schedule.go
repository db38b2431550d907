// Package schedule holds the pure round-lifecycle logic: computing a round's
// three canonical timestamps, normalizing persisted timestamps, and deriving
// the current phase. Everything here takes "now" and randomness as inputs so
// callers (and tests) control time.
//
// A = PostWindowStart (random 6-10pm local): posting and voting open.
// B = PostWindowEnd (A + 4h): posting closes, voting still open.
// C = RevealTime, normally the next round's A: voting closes, settlement runs.
// The zone is fixed UTC-8 year round; DST is intentionally not handled.
package schedule

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// PostWindowDurationMs is how long posting stays open after the window opens.
	PostWindowDurationMs = 4 * 60 * 60 * 1000

	// VotingWindowDurationMs is the fallback voting length used for RevealTime
	// when the next round's start is not known yet.
	VotingWindowDurationMs = 24 * 60 * 60 * 1000

	// Windows at or below this are treated as intentional short/dev rounds and
	// are not extended by Normalize.
	shortWindowMs = 60 * 60 * 1000

	// Opening minute is uniform in [openHour:00, openHour+openSpreadHours:00].
	openHour        = 18
	openSpreadHours = 4

	utcOffsetHours = -8
)

// Zone is the fixed game time zone (UTC-8, no DST).
var Zone = time.FixedZone("UTC-8", utcOffsetHours*60*60)

// Times are a round's canonical timestamps in epoch millis.
type Times struct {
	PostWindowStart int64
	PostWindowEnd   int64
	RevealTime      int64
}

// RoundTimes computes the timestamps for a round on the given YYYY-MM-DD date.
// The opening minute is drawn from rng (pass a seeded source for determinism;
// nil falls back to the global source). nextRoundStartMs, when non-zero, is
// used as RevealTime so voting closes when the next round opens.
func RoundTimes(date string, nextRoundStartMs int64, rng *rand.Rand) (Times, error) {
	year, month, day, err := parseDate(date)
	if err != nil {
		return Times{}, err
	}

	minutesAfterOpen := intn(rng, openSpreadHours*60+1)
	hour := openHour + minutesAfterOpen/60
	minute := minutesAfterOpen % 60

	start := time.Date(year, time.Month(month), day, hour, minute, 0, 0, Zone).UnixMilli()
	end := start + PostWindowDurationMs
	reveal := nextRoundStartMs
	if reveal == 0 {
		reveal = end + VotingWindowDurationMs
	}
	return Times{PostWindowStart: start, PostWindowEnd: end, RevealTime: reveal}, nil
}

// Normalize enforces minimum-duration invariants on persisted timestamps
// without touching storage. Short windows (<= 1h) are kept as-is except that
// RevealTime may never precede PostWindowEnd; anything longer is stretched to
// the current 4h posting window. Idempotent, and applied identically at every
// decision point (posting check, phase, settlement gate).
func Normalize(postWindowStart, postWindowEnd, revealTime int64) Times {
	duration := postWindowEnd - postWindowStart
	if duration <= shortWindowMs {
		return Times{
			PostWindowStart: postWindowStart,
			PostWindowEnd:   postWindowEnd,
			RevealTime:      maxInt64(revealTime, postWindowEnd),
		}
	}
	end := maxInt64(postWindowEnd, postWindowStart+PostWindowDurationMs)
	return Times{
		PostWindowStart: postWindowStart,
		PostWindowEnd:   end,
		RevealTime:      maxInt64(revealTime, end),
	}
}

// NormalizeTimes is Normalize over an existing Times value.
func NormalizeTimes(t Times) Times {
	return Normalize(t.PostWindowStart, t.PostWindowEnd, t.RevealTime)
}

func intn(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}

func parseDate(date string) (year, month, day int, err error) {
	if _, err = fmt.Sscanf(date, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return year, month, day, nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// DateString returns the YYYY-MM-DD date of t in the game zone, shifted by
// offsetDays. The shift is applied from local noon so it is immune to the
// fixed-offset boundary.
func DateString(t time.Time, offsetDays int) string {
	local := t.In(Zone)
	noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, Zone)
	return noon.AddDate(0, 0, offsetDays).Format("2006-01-02")
}

// NextDate returns the calendar day after date (YYYY-MM-DD).
func NextDate(date string) (string, error) {
	return shiftDate(date, 1)
}

// PrevDate returns the calendar day before date (YYYY-MM-DD).
func PrevDate(date string) (string, error) {
	return shiftDate(date, -1)
}

func shiftDate(date string, days int) (string, error) {
	year, month, day, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, days).Format("2006-01-02"), nil
}
