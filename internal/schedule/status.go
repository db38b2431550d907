package schedule

import "time"

// StatusKind is the canonical status line shown with the active round. It is
// computed server-side and never carries pre-formatted time-range strings;
// clients format StatusTimeMs in the viewer's own zone.
type StatusKind string

const (
	StatusPreviousFinished StatusKind = "previous_finished"
	StatusPostingBegun     StatusKind = "posting_begun"
	StatusPostingOpens     StatusKind = "posting_opens"
)

// StatusPayload carries the status kind plus the timestamp relevant to it.
type StatusPayload struct {
	Kind          StatusKind `json:"kind"`
	StatusTimeMs  int64      `json:"status_time_ms,omitempty"`
	PostingEndsAt int64      `json:"posting_ends_at,omitempty"`
}

// StatusAt derives the status payload for a round at nowMs. previousRoundEndMs
// is the prior round's posting close, 0 when unknown.
func StatusAt(nowMs, postWindowStart, postWindowEnd, revealTime, previousRoundEndMs int64) StatusPayload {
	n := Normalize(postWindowStart, postWindowEnd, revealTime)

	if InPostingWindow(nowMs, postWindowStart, postWindowEnd, revealTime) {
		return StatusPayload{Kind: StatusPostingBegun, PostingEndsAt: n.PostWindowEnd}
	}

	if PhaseAt(nowMs, postWindowStart, postWindowEnd, revealTime) == PhaseBeforeOpen {
		if previousRoundEndMs != 0 {
			return StatusPayload{Kind: StatusPreviousFinished, StatusTimeMs: previousRoundEndMs}
		}
		return StatusPayload{Kind: StatusPostingOpens, StatusTimeMs: n.PostWindowStart}
	}

	return StatusPayload{Kind: StatusPreviousFinished, StatusTimeMs: n.PostWindowEnd}
}

// ChallengeLabel says whether the round being shown is today's or yesterday's
// from the viewer's perspective (a round stays on screen past local midnight
// until its window closes).
func ChallengeLabel(nowMs, postWindowStart int64, phase Phase) string {
	if phase == PhaseBeforeOpen && !sameLocalDay(nowMs, postWindowStart) {
		return "Yesterday's challenge"
	}
	return "Today's challenge"
}

func sameLocalDay(aMs, bMs int64) bool {
	a := time.UnixMilli(aMs).In(Zone)
	b := time.UnixMilli(bMs).In(Zone)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
