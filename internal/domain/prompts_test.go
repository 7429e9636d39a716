package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptSession() HumanAgentSession {
	return HumanAgentSession{
		HumanName: "alice",
		AgentName: "helm",
		WorkingOn: WorkingOn{Task: "wire the dashboard"},
		Status:    StatusActive,
	}
}

func TestReturningLongAway(t *testing.T) {
	t.Parallel()

	msg := Returning(promptSession(), 12)
	assert.Contains(t, msg, "12 days")
	assert.Contains(t, msg, `"wire the dashboard"`)
	assert.Contains(t, msg, "Still relevant")
}

func TestReturningRecentWithAndWithoutBlockers(t *testing.T) {
	t.Parallel()

	session := promptSession()
	msg := Returning(session, 2)
	assert.Contains(t, msg, `"wire the dashboard"`)
	assert.NotContains(t, msg, "blockers")

	session.WorkingOn.Bumps = []string{"API down", "no token"}
	msg = Returning(session, 2)
	assert.Contains(t, msg, "2 blockers last time")
}

func TestReturningBoundaryAtSevenDays(t *testing.T) {
	t.Parallel()

	// Exactly seven days still counts as a quick refresh, not a long absence.
	msg := Returning(promptSession(), 7)
	assert.Contains(t, msg, "Quick refresh")

	msg = Returning(promptSession(), 8)
	assert.Contains(t, msg, "It's been 8 days")
}

func TestCheckBumps(t *testing.T) {
	t.Parallel()

	_, ok := CheckBumps(nil)
	assert.False(t, ok)

	msg, ok := CheckBumps([]string{"API down", "no token"})
	require.True(t, ok)
	assert.Contains(t, msg, "API down, no token")
}

func TestSuggestNextNamesOnlyFirstEntry(t *testing.T) {
	t.Parallel()

	_, ok := SuggestNext(nil)
	assert.False(t, ok)

	msg, ok := SuggestNext([]string{"deploy token", "add pattern detection"})
	require.True(t, ok)
	assert.Contains(t, msg, `"deploy token"`)
	assert.NotContains(t, msg, "add pattern detection")
}

func TestCelebrateDoneDescribesLastEntryOnly(t *testing.T) {
	t.Parallel()

	_, ok := CelebrateDone(nil)
	assert.False(t, ok)

	msg, ok := CelebrateDone([]CompletedItem{
		{Task: "team created"},
		{Task: "scaffold deployed", Evidence: "live on Vercel"},
	})
	require.True(t, ok)
	assert.Contains(t, msg, `"scaffold deployed"`)
	assert.Contains(t, msg, "Evidence: live on Vercel")
	assert.NotContains(t, msg, "team created")
}

func TestCelebrateDoneOmitsMissingEvidence(t *testing.T) {
	t.Parallel()

	msg, ok := CelebrateDone([]CompletedItem{{Task: "types defined"}})
	require.True(t, ok)
	assert.NotContains(t, msg, "Evidence")
}

func TestDriftingPromptVariants(t *testing.T) {
	t.Parallel()

	thread := Thread{Name: "HELM Hackathon", WorkingOn: WorkingOn{Bumps: []string{"mission claimed"}}}
	msg := DriftingPrompt(thread, 9)
	assert.Contains(t, msg, "9 days")
	assert.Contains(t, msg, "1 bump(s)")

	thread.WorkingOn.Bumps = nil
	msg = DriftingPrompt(thread, 9)
	assert.Contains(t, msg, "quiet for 9 days")
	assert.Contains(t, msg, "pause gracefully")
}

func TestBlockedPromptListsAllBumps(t *testing.T) {
	t.Parallel()

	thread := Thread{Name: "HELM Hackathon", WorkingOn: WorkingOn{Bumps: []string{"API down", "no reviewer"}}}
	msg := BlockedPrompt(thread)
	assert.Contains(t, msg, "API down, no reviewer")
}

func TestCriticalPathPrompt(t *testing.T) {
	t.Parallel()

	thread := Thread{Name: "HELM Hackathon"}
	assert.Contains(t, CriticalPathPrompt(thread), "ONE thing")

	thread.WorkingOn.CriticalPath = "get the format working end-to-end"
	assert.Contains(t, CriticalPathPrompt(thread), "get the format working end-to-end")
}

func TestCompletionPromptUsesLastThreeTasks(t *testing.T) {
	t.Parallel()

	thread := Thread{
		Name: "HELM Hackathon",
		Done: []CompletedTask{
			{Task: "one"}, {Task: "two"}, {Task: "three"}, {Task: "four"},
		},
	}

	msg := CompletionPrompt(thread)
	assert.Contains(t, msg, "two, three, four")
	assert.NotContains(t, msg, "one,")
}
