package application

import (
	"github.com/bnema/helm-threads-cli/internal/domain"
)

// Status is the read-model for one thread: the stored record plus the
// advisory signals and momentum computed at query time.
type Status struct {
	Thread    domain.Thread
	Signals   domain.Signals
	DaysSince int
	Momentum  int
}

// Label is the single display label for the thread, chosen from the advisory
// signals by the canonical precedence.
func (s Status) Label() string {
	return s.Signals.Label()
}

// Stale reports a thread the drift label never catches: idle past the active
// window with no open bumps.
func (s Status) Stale() bool {
	return !s.Signals.Active && !s.Signals.Blocked && s.Thread.Status != domain.StatusComplete &&
		s.Thread.Status != domain.StatusPaused
}
