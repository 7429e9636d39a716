package domain

import (
	"fmt"
	"time"
)

// HumanAgentSession is the continuity state for one (human, agent) pair. It
// carries the same heartbeat shape as a Thread but is scoped to the
// relationship rather than a single piece of work.
type HumanAgentSession struct {
	ID        string
	HumanName string
	AgentName string

	WorkingOn WorkingOn
	Todo      []string
	Upcoming  []string
	Done      []CompletedItem

	LastSession   time.Time
	SessionCount  int
	TotalMessages int

	// Status excludes "complete": relationships pause, they do not finish.
	Status ThreadStatus

	Topics []string
}

// CompletedItem records work a session finished, with optional evidence of
// how completion was verified.
type CompletedItem struct {
	Task        string
	Evidence    string
	CompletedAt time.Time
}

// SessionKey builds the composite store key for a (human, agent) pair.
// Case-sensitive, no normalization.
func SessionKey(humanName, agentName string) string {
	return fmt.Sprintf("%s:%s", humanName, agentName)
}

// Key returns the session's own composite key.
func (s HumanAgentSession) Key() string {
	return SessionKey(s.HumanName, s.AgentName)
}

// RecentDone returns up to the last n completed items, newest last.
func (s HumanAgentSession) RecentDone(n int) []CompletedItem {
	if n <= 0 || len(s.Done) == 0 {
		return nil
	}
	if len(s.Done) <= n {
		return s.Done
	}
	return s.Done[len(s.Done)-n:]
}
