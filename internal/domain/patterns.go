package domain

import (
	"fmt"
	"time"
)

const (
	// driftAfterDays is the staleness threshold past which a blocked thread
	// counts as drifting.
	driftAfterDays = 7
	// activeWithinDays is the recency window for the active signal.
	activeWithinDays = 3
)

// Signals are the advisory pattern predicates over a thread or session
// heartbeat. They are independent and may overlap; the stored status field
// stays authoritative and is never derived from them.
type Signals struct {
	Blocked        bool
	Drifting       bool
	Active         bool
	NeedsAttention bool
}

// DaysSince returns the whole days elapsed between last and now. A zero last
// timestamp is rejected: treating it as "now" or as the epoch would both
// produce misleading signals. A last in the future floors at zero.
func DaysSince(last, now time.Time) (int, error) {
	if last.IsZero() {
		return 0, fmt.Errorf("last touched: %w", ErrInvalidTimestamp)
	}
	elapsed := now.Sub(last)
	if elapsed < 0 {
		return 0, nil
	}
	return int(elapsed / (24 * time.Hour)), nil
}

// IsBlocked reports whether any bump is open.
func IsBlocked(bumps []string) bool {
	return len(bumps) > 0
}

// IsDrifting reports staleness with an unresolved blocker. A thread merely
// idle with no blocker is not drifting, it is simply inactive.
func IsDrifting(daysSince int, bumps []string) bool {
	return daysSince > driftAfterDays && len(bumps) > 0
}

// IsActive reports a recent touch.
func IsActive(daysSince int) bool {
	return daysSince < activeWithinDays
}

// DetectSignals derives all pattern predicates from a heartbeat's last touch
// and open bumps.
func DetectSignals(last time.Time, bumps []string, now time.Time) (Signals, error) {
	daysSince, err := DaysSince(last, now)
	if err != nil {
		return Signals{}, err
	}
	blocked := IsBlocked(bumps)
	drifting := IsDrifting(daysSince, bumps)
	return Signals{
		Blocked:        blocked,
		Drifting:       drifting,
		Active:         IsActive(daysSince),
		NeedsAttention: drifting || blocked,
	}, nil
}

// Label picks the single display label for a set of signals, highest risk
// first: blocked > drifting > needs-attention > active.
func (s Signals) Label() string {
	switch {
	case s.Blocked:
		return "blocked"
	case s.Drifting:
		return "drifting"
	case s.NeedsAttention:
		return "needs-attention"
	case s.Active:
		return "active"
	}
	return "inactive"
}

// Signals derives the thread's pattern predicates at now.
func (t Thread) Signals(now time.Time) (Signals, error) {
	return DetectSignals(t.LastTouched, t.WorkingOn.Bumps, now)
}

// Signals derives the session's pattern predicates at now.
func (s HumanAgentSession) Signals(now time.Time) (Signals, error) {
	return DetectSignals(s.LastSession, s.WorkingOn.Bumps, now)
}
