package schedule

// Phase is a round's lifecycle state. Strictly ordered, terminal at
// PhaseRevealed; derived on demand from now and normalized timestamps, never
// stored.
type Phase int

const (
	PhaseBeforeOpen Phase = iota
	PhasePosting
	PhaseVoting
	PhaseRevealed
)

func (p Phase) String() string {
	switch p {
	case PhaseBeforeOpen:
		return "before_open"
	case PhasePosting:
		return "posting"
	case PhaseVoting:
		return "voting"
	case PhaseRevealed:
		return "revealed"
	}
	return "unknown"
}

// PhaseAt classifies nowMs against the (raw) round timestamps. Normalization
// happens here so every caller sees the same boundaries.
func PhaseAt(nowMs, postWindowStart, postWindowEnd, revealTime int64) Phase {
	n := Normalize(postWindowStart, postWindowEnd, revealTime)
	switch {
	case nowMs < n.PostWindowStart:
		return PhaseBeforeOpen
	case nowMs < n.PostWindowEnd:
		return PhasePosting
	case nowMs < n.RevealTime:
		return PhaseVoting
	default:
		return PhaseRevealed
	}
}

// InPostingWindow reports whether posting is allowed at nowMs.
func InPostingWindow(nowMs, postWindowStart, postWindowEnd, revealTime int64) bool {
	return PhaseAt(nowMs, postWindowStart, postWindowEnd, revealTime) == PhasePosting
}
