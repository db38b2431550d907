package schedule

import (
	"math/rand"
	"testing"
	"time"
)

func TestRoundTimesDeterministicWithSeed(t *testing.T) {
	a, err := RoundTimes("2024-01-01", 0, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("RoundTimes failed: %v", err)
	}
	b, err := RoundTimes("2024-01-01", 0, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("RoundTimes failed: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced different times: %+v vs %+v", a, b)
	}
}

func TestRoundTimesWindow(t *testing.T) {
	dayStart := time.Date(2024, 3, 15, 0, 0, 0, 0, Zone).UnixMilli()
	openEarliest := dayStart + 18*60*60*1000
	openLatest := dayStart + 22*60*60*1000

	for seed := int64(0); seed < 50; seed++ {
		times, err := RoundTimes("2024-03-15", 0, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("RoundTimes failed: %v", err)
		}
		if times.PostWindowStart < openEarliest || times.PostWindowStart > openLatest {
			t.Errorf("seed %d: start %d outside 6-10pm local [%d, %d]",
				seed, times.PostWindowStart, openEarliest, openLatest)
		}
		if times.PostWindowEnd != times.PostWindowStart+PostWindowDurationMs {
			t.Errorf("seed %d: end is not start+4h", seed)
		}
		if times.RevealTime != times.PostWindowEnd+VotingWindowDurationMs {
			t.Errorf("seed %d: fallback reveal is not end+24h", seed)
		}
	}
}

func TestRoundTimesUsesNextRoundHint(t *testing.T) {
	next := int64(1704250000000)
	times, err := RoundTimes("2024-01-01", next, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("RoundTimes failed: %v", err)
	}
	if times.RevealTime != next {
		t.Errorf("reveal = %d, want next round start %d", times.RevealTime, next)
	}
}

func TestRoundTimesRejectsBadDate(t *testing.T) {
	if _, err := RoundTimes("not-a-date", 0, nil); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestNormalize(t *testing.T) {
	const hour = int64(60 * 60 * 1000)

	tests := []struct {
		name                string
		start, end, reveal  int64
		wantEnd, wantReveal int64
	}{
		{
			name:  "already valid",
			start: 0, end: 4 * hour, reveal: 28 * hour,
			wantEnd: 4 * hour, wantReveal: 28 * hour,
		},
		{
			name:  "legacy two hour window stretched to 4h",
			start: 0, end: 2 * hour, reveal: 26 * hour,
			wantEnd: 4 * hour, wantReveal: 26 * hour,
		},
		{
			name:  "stretch pulls reveal along",
			start: 0, end: 2 * hour, reveal: 3 * hour,
			wantEnd: 4 * hour, wantReveal: 4 * hour,
		},
		{
			name:  "short dev window kept as-is",
			start: 0, end: 2 * 60 * 1000, reveal: 24 * hour,
			wantEnd: 2 * 60 * 1000, wantReveal: 24 * hour,
		},
		{
			name:  "short window still forces reveal >= end",
			start: 0, end: 30 * 60 * 1000, reveal: 10 * 60 * 1000,
			wantEnd: 30 * 60 * 1000, wantReveal: 30 * 60 * 1000,
		},
		{
			name:  "reveal before end clamped",
			start: 0, end: 5 * hour, reveal: 2 * hour,
			wantEnd: 5 * hour, wantReveal: 5 * hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.start, tt.end, tt.reveal)
			if got.PostWindowStart != tt.start {
				t.Errorf("start changed: %d", got.PostWindowStart)
			}
			if got.PostWindowEnd != tt.wantEnd {
				t.Errorf("end = %d, want %d", got.PostWindowEnd, tt.wantEnd)
			}
			if got.RevealTime != tt.wantReveal {
				t.Errorf("reveal = %d, want %d", got.RevealTime, tt.wantReveal)
			}

			// Monotonicity always holds
			if got.PostWindowEnd < got.PostWindowStart || got.RevealTime < got.PostWindowEnd {
				t.Error("normalized times are not monotonic")
			}

			// Normalizing twice is a no-op
			again := NormalizeTimes(got)
			if again != got {
				t.Errorf("normalize is not idempotent: %+v vs %+v", again, got)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	// 03:00 UTC on Jan 2 is still Jan 1 in the fixed UTC-8 zone.
	at := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	if got := DateString(at, 0); got != "2024-01-01" {
		t.Errorf("DateString = %q, want 2024-01-01", got)
	}
	if got := DateString(at, -1); got != "2023-12-31" {
		t.Errorf("DateString(-1) = %q, want 2023-12-31", got)
	}
}

func TestNextPrevDate(t *testing.T) {
	next, err := NextDate("2024-02-28")
	if err != nil || next != "2024-02-29" {
		t.Errorf("NextDate = %q, %v; want 2024-02-29 (leap year)", next, err)
	}
	prev, err := PrevDate("2024-01-01")
	if err != nil || prev != "2023-12-31" {
		t.Errorf("PrevDate = %q, %v; want 2023-12-31", prev, err)
	}
}
