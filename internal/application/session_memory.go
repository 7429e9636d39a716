package application

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/helm-threads-cli/internal/domain"
	"github.com/bnema/helm-threads-cli/internal/ports"
)

// SessionMemory owns the process-wide mapping from "human:agent" composite
// keys to continuity sessions. It is constructed once at startup and handed
// to callers; no other component mutates sessions. Writes are serialized by a
// single lock, which is plenty at the store's expected volume.
type SessionMemory struct {
	mu       sync.RWMutex
	sessions map[string]domain.HumanAgentSession
	clock    ports.Clock
}

func NewSessionMemory(clock ports.Clock) *SessionMemory {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionMemory{
		sessions: map[string]domain.HumanAgentSession{},
		clock:    clock,
	}
}

// Get looks up the session for a (human, agent) pair. Absence is an ordinary
// outcome, not an error: callers decide whether it means first contact. The
// lookup never creates a session as a side effect.
func (m *SessionMemory) Get(humanName, agentName string) (domain.HumanAgentSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[domain.SessionKey(humanName, agentName)]
	if !ok {
		return domain.HumanAgentSession{}, false
	}

	return cloneSession(session), true
}

// Create initializes a fresh session for a pair on first contact. An existing
// session for the same key is rejected rather than silently overwritten;
// overwriting would discard its counters and history.
func (m *SessionMemory) Create(humanName, agentName, initialTask string) (domain.HumanAgentSession, error) {
	key := domain.SessionKey(humanName, agentName)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[key]; ok {
		return domain.HumanAgentSession{}, fmt.Errorf("session %q: %w", key, domain.ErrSessionExists)
	}

	session := domain.HumanAgentSession{
		ID:        uuid.NewString(),
		HumanName: humanName,
		AgentName: agentName,
		WorkingOn: domain.WorkingOn{
			Task: initialTask,
		},
		LastSession:  m.clock.Now(),
		SessionCount: 1,
		Status:       domain.StatusActive,
	}

	m.sessions[key] = cloneSession(session)
	return session, nil
}

// Update stamps the session's last interaction and stores the whole record at
// its composite key, replacing any prior value. Last write wins; the caller
// is responsible for starting from the latest fetched copy.
func (m *SessionMemory) Update(session domain.HumanAgentSession) domain.HumanAgentSession {
	session.LastSession = m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Key()] = cloneSession(session)
	return session
}

// ContinuityPrompt assembles the full re-engagement message for a session:
// greeting first, recent wins second, blockers third, forward suggestion
// last. Composers with nothing to say are skipped.
func (m *SessionMemory) ContinuityPrompt(session domain.HumanAgentSession) (string, error) {
	daysSince, err := domain.DaysSince(session.LastSession, m.clock.Now())
	if err != nil {
		return "", err
	}

	prompts := []string{domain.Returning(session, daysSince)}

	if celebrate, ok := domain.CelebrateDone(session.RecentDone(3)); ok {
		prompts = append(prompts, celebrate)
	}
	if bumps, ok := domain.CheckBumps(session.WorkingOn.Bumps); ok {
		prompts = append(prompts, bumps)
	}
	if next, ok := domain.SuggestNext(session.Todo); ok {
		prompts = append(prompts, next)
	}

	return strings.Join(prompts, "\n\n"), nil
}

// cloneSession deep-copies the slices a session owns so store state is never
// aliased by callers.
func cloneSession(session domain.HumanAgentSession) domain.HumanAgentSession {
	session.WorkingOn.Bumps = cloneStrings(session.WorkingOn.Bumps)
	session.Todo = cloneStrings(session.Todo)
	session.Upcoming = cloneStrings(session.Upcoming)
	session.Topics = cloneStrings(session.Topics)

	if session.Done != nil {
		done := make([]domain.CompletedItem, len(session.Done))
		copy(done, session.Done)
		session.Done = done
	}

	return session
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
