package domain

import "time"

const (
	momentumCeiling     = 100
	momentumGraceDays   = 2
	momentumDecayPerDay = 5
	momentumBumpPenalty = 15
)

// MomentumScore computes the 0-100 health score for a heartbeat. Completed
// threads score 100 unconditionally; otherwise the score decays linearly past
// a two-day grace period and each open bump costs a flat penalty. The result
// depends only on status, days since touch, and bump count.
func MomentumScore(status ThreadStatus, last time.Time, bumps []string, now time.Time) (int, error) {
	if status == StatusComplete {
		return momentumCeiling, nil
	}

	daysSince, err := DaysSince(last, now)
	if err != nil {
		return 0, err
	}

	score := momentumCeiling
	if daysSince > momentumGraceDays {
		score -= (daysSince - momentumGraceDays) * momentumDecayPerDay
	}
	score -= len(bumps) * momentumBumpPenalty

	if score < 0 {
		return 0, nil
	}
	if score > momentumCeiling {
		return momentumCeiling, nil
	}
	return score, nil
}

// Momentum scores the thread at now.
func (t Thread) Momentum(now time.Time) (int, error) {
	return MomentumScore(t.Status, t.LastTouched, t.WorkingOn.Bumps, now)
}

// Momentum scores the session at now. Sessions never carry the complete
// status, so the completion short-circuit does not apply in practice.
func (s HumanAgentSession) Momentum(now time.Time) (int, error) {
	return MomentumScore(s.Status, s.LastSession, s.WorkingOn.Bumps, now)
}
