package domain

import "time"

type ThreadID string

// ThreadStatus is the authoritative, caller-assigned state of a thread. It is
// never recomputed from the pattern signals; the two can legitimately diverge.
type ThreadStatus string

const (
	StatusActive   ThreadStatus = "active"
	StatusDrifting ThreadStatus = "drifting"
	StatusBlocked  ThreadStatus = "blocked"
	StatusPaused   ThreadStatus = "paused"
	StatusComplete ThreadStatus = "complete"
)

func (s ThreadStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDrifting, StatusBlocked, StatusPaused, StatusComplete:
		return true
	}
	return false
}

// Thread is one tracked unit of ongoing human-agent work.
type Thread struct {
	ID          ThreadID
	Name        string
	Description string

	WorkingOn WorkingOn
	Todo      []string
	Upcoming  []string
	Done      []CompletedTask

	LastTouched time.Time
	CreatedAt   time.Time

	Status ThreadStatus
}

// WorkingOn is the current focus of a thread or session.
type WorkingOn struct {
	Task         string
	CriticalPath string
	Bumps        []string
}

// CompletedTask records gracefully completed work. Test captures how
// completion was verified.
type CompletedTask struct {
	Task        string
	Test        string
	CompletedAt time.Time
}

// Touch stamps the thread as interacted with now. Caller persists the
// returned copy; the receiver is untouched.
func (t Thread) Touch(now time.Time) Thread {
	t.LastTouched = now
	return t
}

// AddBump appends a blocker in reporting order.
func (t Thread) AddBump(bump string, now time.Time) Thread {
	bumps := make([]string, 0, len(t.WorkingOn.Bumps)+1)
	bumps = append(bumps, t.WorkingOn.Bumps...)
	t.WorkingOn.Bumps = append(bumps, bump)
	t.LastTouched = now
	return t
}

// RemoveBump drops the blocker at index. Out-of-range indexes leave the
// record unchanged apart from the touch stamp.
func (t Thread) RemoveBump(index int, now time.Time) Thread {
	if index >= 0 && index < len(t.WorkingOn.Bumps) {
		bumps := make([]string, 0, len(t.WorkingOn.Bumps)-1)
		bumps = append(bumps, t.WorkingOn.Bumps[:index]...)
		bumps = append(bumps, t.WorkingOn.Bumps[index+1:]...)
		t.WorkingOn.Bumps = bumps
	}
	t.LastTouched = now
	return t
}

// MarkDone appends a completed task with its verification note.
func (t Thread) MarkDone(task, test string, now time.Time) Thread {
	done := make([]CompletedTask, 0, len(t.Done)+1)
	done = append(done, t.Done...)
	t.Done = append(done, CompletedTask{Task: task, Test: test, CompletedAt: now})
	t.LastTouched = now
	return t
}
