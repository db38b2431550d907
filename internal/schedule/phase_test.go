package schedule

import (
	"testing"
)

func TestPhaseOrdering(t *testing.T) {
	const hour = int64(60 * 60 * 1000)
	start := int64(1_700_000_000_000)
	end := start + 4*hour
	reveal := end + 24*hour

	tests := []struct {
		now  int64
		want Phase
	}{
		{start - 1, PhaseBeforeOpen},
		{start, PhasePosting},
		{end - 1, PhasePosting},
		{end, PhaseVoting},
		{reveal - 1, PhaseVoting},
		{reveal, PhaseRevealed},
		{reveal + hour, PhaseRevealed},
	}

	for _, tt := range tests {
		if got := PhaseAt(tt.now, start, end, reveal); got != tt.want {
			t.Errorf("PhaseAt(now=%d) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestPhaseUsesNormalizedTimes(t *testing.T) {
	const hour = int64(60 * 60 * 1000)
	start := int64(1_700_000_000_000)
	// Legacy 2h window: normalization stretches posting to start+4h.
	rawEnd := start + 2*hour
	reveal := start + 30*hour

	if got := PhaseAt(start+3*hour, start, rawEnd, reveal); got != PhasePosting {
		t.Errorf("phase at raw-end+1h = %v, want posting (normalized end is start+4h)", got)
	}
	if got := PhaseAt(start+5*hour, start, rawEnd, reveal); got != PhaseVoting {
		t.Errorf("phase after normalized end = %v, want voting", got)
	}
}

func TestInPostingWindow(t *testing.T) {
	const hour = int64(60 * 60 * 1000)
	start := int64(1_700_000_000_000)
	end := start + 4*hour
	reveal := end + 24*hour

	if InPostingWindow(start-1, start, end, reveal) {
		t.Error("before open should not be posting")
	}
	if !InPostingWindow(start, start, end, reveal) {
		t.Error("window open should be posting")
	}
	if InPostingWindow(end, start, end, reveal) {
		t.Error("window close should not be posting")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseBeforeOpen, "before_open"},
		{PhasePosting, "posting"},
		{PhaseVoting, "voting"},
		{PhaseRevealed, "revealed"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
