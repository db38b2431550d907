package schedule

import (
	"testing"
	"time"
)

func TestStatusAt(t *testing.T) {
	const hour = int64(60 * 60 * 1000)
	start := int64(1_700_000_000_000)
	end := start + 4*hour
	reveal := end + 24*hour
	prevEnd := start - 20*hour

	// During posting
	got := StatusAt(start+hour, start, end, reveal, prevEnd)
	if got.Kind != StatusPostingBegun || got.PostingEndsAt != end {
		t.Errorf("during posting: %+v", got)
	}

	// Before open with a known previous round
	got = StatusAt(start-hour, start, end, reveal, prevEnd)
	if got.Kind != StatusPreviousFinished || got.StatusTimeMs != prevEnd {
		t.Errorf("before open with previous: %+v", got)
	}

	// Before open with no previous round
	got = StatusAt(start-hour, start, end, reveal, 0)
	if got.Kind != StatusPostingOpens || got.StatusTimeMs != start {
		t.Errorf("before open without previous: %+v", got)
	}

	// After posting closed
	got = StatusAt(end+hour, start, end, reveal, prevEnd)
	if got.Kind != StatusPreviousFinished || got.StatusTimeMs != end {
		t.Errorf("after posting: %+v", got)
	}
}

func TestChallengeLabel(t *testing.T) {
	// Round opens tonight at 7pm local; the viewer checks at 10am same day.
	open := time.Date(2024, 6, 1, 19, 0, 0, 0, Zone)
	sameDay := time.Date(2024, 6, 1, 10, 0, 0, 0, Zone)
	nextDay := time.Date(2024, 6, 2, 1, 0, 0, 0, Zone)

	if got := ChallengeLabel(sameDay.UnixMilli(), open.UnixMilli(), PhaseBeforeOpen); got != "Today's challenge" {
		t.Errorf("same day before open = %q", got)
	}
	if got := ChallengeLabel(nextDay.UnixMilli(), open.UnixMilli(), PhaseVoting); got != "Today's challenge" {
		t.Errorf("open round is always today's: %q", got)
	}

	// Before a round that opened on a previous local day
	if got := ChallengeLabel(nextDay.UnixMilli(), open.UnixMilli(), PhaseBeforeOpen); got != "Yesterday's challenge" {
		t.Errorf("before open across midnight = %q", got)
	}
}
