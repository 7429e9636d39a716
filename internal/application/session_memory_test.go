package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/helm-threads-cli/internal/domain"
)

func TestSessionMemoryCreateInitializesDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	memory := NewSessionMemory(fixedClock{now: now})

	session, err := memory.Create("alice", "helm", "build the dashboard")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "alice", session.HumanName)
	assert.Equal(t, "helm", session.AgentName)
	assert.Equal(t, "build the dashboard", session.WorkingOn.Task)
	assert.Empty(t, session.WorkingOn.Bumps)
	assert.Empty(t, session.Todo)
	assert.Empty(t, session.Done)
	assert.Equal(t, now, session.LastSession)
	assert.Equal(t, 1, session.SessionCount)
	assert.Equal(t, 0, session.TotalMessages)
	assert.Equal(t, domain.StatusActive, session.Status)
}

func TestSessionMemoryCreateRejectsExistingKey(t *testing.T) {
	t.Parallel()

	memory := NewSessionMemory(fixedClock{now: time.Now()})

	_, err := memory.Create("alice", "helm", "first")
	require.NoError(t, err)

	_, err = memory.Create("alice", "helm", "second")
	require.ErrorIs(t, err, domain.ErrSessionExists)

	// Different pair, different key: no clash. Keys are case-sensitive.
	_, err = memory.Create("Alice", "helm", "third")
	require.NoError(t, err)
}

func TestSessionMemoryGetDoesNotCreate(t *testing.T) {
	t.Parallel()

	memory := NewSessionMemory(fixedClock{now: time.Now()})

	_, ok := memory.Get("nobody", "helm")
	assert.False(t, ok)

	_, ok = memory.Get("nobody", "helm")
	assert.False(t, ok)
}

func TestSessionMemoryUpdateStampsAndReplaces(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	clock := &steppingClock{times: []time.Time{created, updated}}
	memory := NewSessionMemory(clock)

	session, err := memory.Create("alice", "helm", "build the dashboard")
	require.NoError(t, err)

	session.SessionCount++
	session.TotalMessages += 40
	session.WorkingOn.Bumps = append(session.WorkingOn.Bumps, "CI flaky")
	stored := memory.Update(session)

	assert.Equal(t, updated, stored.LastSession)

	got, ok := memory.Get("alice", "helm")
	require.True(t, ok)
	assert.Equal(t, 2, got.SessionCount)
	assert.Equal(t, 40, got.TotalMessages)
	assert.Equal(t, []string{"CI flaky"}, got.WorkingOn.Bumps)
	assert.Equal(t, updated, got.LastSession)
}

func TestSessionMemoryGetReturnsIsolatedCopy(t *testing.T) {
	t.Parallel()

	memory := NewSessionMemory(fixedClock{now: time.Now()})

	session, err := memory.Create("alice", "helm", "build")
	require.NoError(t, err)
	session.Todo = []string{"write tests"}
	memory.Update(session)

	first, ok := memory.Get("alice", "helm")
	require.True(t, ok)
	first.Todo[0] = "mutated by caller"

	second, ok := memory.Get("alice", "helm")
	require.True(t, ok)
	assert.Equal(t, []string{"write tests"}, second.Todo)
}

func TestContinuityPromptFixedOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	memory := NewSessionMemory(fixedClock{now: now})

	session := domain.HumanAgentSession{
		HumanName: "alice",
		AgentName: "helm",
		WorkingOn: domain.WorkingOn{Task: "wire the dashboard", Bumps: []string{"API down"}},
		Todo:      []string{"deploy", "announce"},
		Done: []domain.CompletedItem{
			{Task: "first"}, {Task: "second"}, {Task: "third"}, {Task: "scaffold", Evidence: "deploys"},
		},
		LastSession: now.Add(-2 * 24 * time.Hour),
		Status:      domain.StatusActive,
	}

	prompt, err := memory.ContinuityPrompt(session)
	require.NoError(t, err)

	blocks := strings.Split(prompt, "\n\n")
	require.Len(t, blocks, 4)
	assert.Contains(t, blocks[0], "Back again!")
	assert.Contains(t, blocks[1], `"scaffold"`)
	assert.Contains(t, blocks[2], "API down")
	assert.Contains(t, blocks[3], `"deploy"`)
	assert.NotContains(t, prompt, "announce")
}

func TestContinuityPromptOnlyGreetingWhenNothingElse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	memory := NewSessionMemory(fixedClock{now: now})

	session := domain.HumanAgentSession{
		HumanName:   "alice",
		AgentName:   "helm",
		WorkingOn:   domain.WorkingOn{Task: "wire the dashboard"},
		LastSession: now.Add(-24 * time.Hour),
		Status:      domain.StatusActive,
	}

	prompt, err := memory.ContinuityPrompt(session)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "\n\n")
	assert.Contains(t, prompt, "wire the dashboard")
	assert.NotContains(t, prompt, "Next up")
	assert.NotContains(t, prompt, "completed")
}

func TestContinuityPromptLongAbsence(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	memory := NewSessionMemory(fixedClock{now: now})

	session := domain.HumanAgentSession{
		HumanName:   "alice",
		AgentName:   "helm",
		WorkingOn:   domain.WorkingOn{Task: "wire the dashboard"},
		LastSession: now.Add(-12 * 24 * time.Hour),
		Status:      domain.StatusDrifting,
	}

	prompt, err := memory.ContinuityPrompt(session)
	require.NoError(t, err)
	assert.Contains(t, prompt, "It's been 12 days")
}

func TestContinuityPromptRejectsZeroLastSession(t *testing.T) {
	t.Parallel()

	memory := NewSessionMemory(fixedClock{now: time.Now()})

	_, err := memory.ContinuityPrompt(domain.HumanAgentSession{HumanName: "alice", AgentName: "helm"})
	require.ErrorIs(t, err, domain.ErrInvalidTimestamp)
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// steppingClock returns its queued times in order, then repeats the last one.
type steppingClock struct {
	times []time.Time
	index int
}

func (s *steppingClock) Now() time.Time {
	if s.index < len(s.times) {
		now := s.times[s.index]
		s.index++
		return now
	}
	return s.times[len(s.times)-1]
}
