package domain

import (
	"fmt"
	"strings"
)

// Session continuity prompts. Each composer maps record state to one plain
// natural-language string; the bool reports whether there is anything to say,
// and callers skip false results instead of rendering them.

// Returning greets a human coming back to a session. Past seven days away the
// greeting names the gap and invites reconfirming the task.
func Returning(session HumanAgentSession, daysSince int) string {
	if daysSince > 7 {
		return fmt.Sprintf(
			"Welcome back! It's been %d days. Last time we were working on: %q. Still relevant or shall we update?",
			daysSince, session.WorkingOn.Task,
		)
	}
	greeting := fmt.Sprintf("Back again! Quick refresh: We're working on %q.", session.WorkingOn.Task)
	if len(session.WorkingOn.Bumps) > 0 {
		greeting += fmt.Sprintf(" You had %d blockers last time.", len(session.WorkingOn.Bumps))
	}
	return greeting
}

// CheckBumps lists every open blocker, joined in reporting order.
func CheckBumps(bumps []string) (string, bool) {
	if len(bumps) == 0 {
		return "", false
	}
	return fmt.Sprintf("You mentioned these blockers: %s. Any progress or new ones?", strings.Join(bumps, ", ")), true
}

// SuggestNext proposes only the first todo entry, never the full list.
func SuggestNext(todo []string) (string, bool) {
	if len(todo) == 0 {
		return "", false
	}
	return fmt.Sprintf("Next up from our list: %q. Want to tackle this or something else?", todo[0]), true
}

// CelebrateDone describes the most recent completed item in the given slice,
// with its evidence when recorded.
func CelebrateDone(recent []CompletedItem) (string, bool) {
	if len(recent) == 0 {
		return "", false
	}
	last := recent[len(recent)-1]
	msg := fmt.Sprintf("Last session we completed: %q.", last.Task)
	if last.Evidence != "" {
		msg += fmt.Sprintf(" Evidence: %s", last.Evidence)
	}
	return msg, true
}

// Thread-level gentle prompts.

// DriftingPrompt nudges on a quiet thread. The wording depends on whether
// blockers are open.
func DriftingPrompt(thread Thread, daysSince int) string {
	if len(thread.WorkingOn.Bumps) > 0 {
		return fmt.Sprintf(
			"It's been %d days since you touched %q. You have %d bump(s). Still relevant?",
			daysSince, thread.Name, len(thread.WorkingOn.Bumps),
		)
	}
	return fmt.Sprintf("%q has been quiet for %d days. Still alive or ready to pause gracefully?", thread.Name, daysSince)
}

// BlockedPrompt offers to talk through a thread's open bumps.
func BlockedPrompt(thread Thread) string {
	return fmt.Sprintf("%q has bumps: %s. Want to talk through them?", thread.Name, strings.Join(thread.WorkingOn.Bumps, ", "))
}

// CriticalPathPrompt restates the critical path, or asks for one when the
// thread has none.
func CriticalPathPrompt(thread Thread) string {
	if thread.WorkingOn.CriticalPath == "" {
		return fmt.Sprintf("What's the ONE thing that would move %q forward?", thread.Name)
	}
	return fmt.Sprintf("Critical path for %q: %s", thread.Name, thread.WorkingOn.CriticalPath)
}

// CompletionPrompt celebrates up to the last three completed tasks.
func CompletionPrompt(thread Thread) string {
	done := thread.Done
	if len(done) > 3 {
		done = done[len(done)-3:]
	}
	tasks := make([]string, 0, len(done))
	for _, d := range done {
		tasks = append(tasks, d.Task)
	}
	return fmt.Sprintf("Nice progress on %q: %s. How does it feel?", thread.Name, strings.Join(tasks, ", "))
}
