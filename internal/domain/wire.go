package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Boundary codec. Storage and transport collaborators exchange records as
// JSON with ISO-8601 string timestamps; everything is parsed back to instants
// here before any date arithmetic happens.

type threadWire struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	WorkingOn   workingOnWire       `json:"workingOn"`
	Todo        []string            `json:"todo"`
	Upcoming    []string            `json:"upcoming"`
	Done        []completedTaskWire `json:"done"`
	LastTouched string              `json:"lastTouched"`
	CreatedAt   string              `json:"createdAt"`
	Status      string              `json:"status"`
}

type workingOnWire struct {
	Task         string   `json:"task"`
	CriticalPath string   `json:"criticalPath,omitempty"`
	Bumps        []string `json:"bumps"`
}

type completedTaskWire struct {
	Task        string `json:"task"`
	Test        string `json:"test,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type sessionWire struct {
	ID            string              `json:"id"`
	HumanName     string              `json:"humanName"`
	AgentName     string              `json:"agentName"`
	WorkingOn     workingOnWire       `json:"workingOn"`
	Todo          []string            `json:"todo"`
	Upcoming      []string            `json:"upcoming"`
	Done          []completedItemWire `json:"done"`
	LastSession   string              `json:"lastSession"`
	SessionCount  int                 `json:"sessionCount"`
	TotalMessages int                 `json:"totalMessages"`
	Status        string              `json:"status"`
	Topics        []string            `json:"topics"`
}

type completedItemWire struct {
	Task        string `json:"task"`
	Evidence    string `json:"evidence,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// EncodeThread serializes a thread to its boundary JSON form.
func EncodeThread(thread Thread) ([]byte, error) {
	done := make([]completedTaskWire, 0, len(thread.Done))
	for _, d := range thread.Done {
		done = append(done, completedTaskWire{
			Task:        d.Task,
			Test:        d.Test,
			CompletedAt: formatTimestamp(d.CompletedAt),
		})
	}

	return json.MarshalIndent(threadWire{
		ID:          string(thread.ID),
		Name:        thread.Name,
		Description: thread.Description,
		WorkingOn: workingOnWire{
			Task:         thread.WorkingOn.Task,
			CriticalPath: thread.WorkingOn.CriticalPath,
			Bumps:        emptyIfNil(thread.WorkingOn.Bumps),
		},
		Todo:        emptyIfNil(thread.Todo),
		Upcoming:    emptyIfNil(thread.Upcoming),
		Done:        done,
		LastTouched: formatTimestamp(thread.LastTouched),
		CreatedAt:   formatTimestamp(thread.CreatedAt),
		Status:      string(thread.Status),
	}, "", "  ")
}

// DecodeThread parses a boundary JSON thread record. Malformed or missing
// lastTouched timestamps are Invalid-Input, never silently "now" or epoch.
func DecodeThread(data []byte) (Thread, error) {
	var wire threadWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Thread{}, fmt.Errorf("decode thread record: %w", err)
	}

	lastTouched, err := parseTimestamp("lastTouched", wire.LastTouched)
	if err != nil {
		return Thread{}, err
	}
	createdAt, err := parseTimestamp("createdAt", wire.CreatedAt)
	if err != nil {
		return Thread{}, err
	}
	if lastTouched.Before(createdAt) {
		return Thread{}, fmt.Errorf("lastTouched %q precedes createdAt %q: %w", wire.LastTouched, wire.CreatedAt, ErrInvalidTimestamp)
	}

	status := ThreadStatus(wire.Status)
	if !status.Valid() {
		return Thread{}, fmt.Errorf("thread status %q: %w", wire.Status, ErrInvalidStatus)
	}

	done := make([]CompletedTask, 0, len(wire.Done))
	for _, d := range wire.Done {
		completedAt, err := parseOptionalTimestamp("done.completedAt", d.CompletedAt)
		if err != nil {
			return Thread{}, err
		}
		done = append(done, CompletedTask{Task: d.Task, Test: d.Test, CompletedAt: completedAt})
	}

	return Thread{
		ID:          ThreadID(wire.ID),
		Name:        wire.Name,
		Description: wire.Description,
		WorkingOn: WorkingOn{
			Task:         wire.WorkingOn.Task,
			CriticalPath: wire.WorkingOn.CriticalPath,
			Bumps:        wire.WorkingOn.Bumps,
		},
		Todo:        wire.Todo,
		Upcoming:    wire.Upcoming,
		Done:        done,
		LastTouched: lastTouched,
		CreatedAt:   createdAt,
		Status:      status,
	}, nil
}

// EncodeSession serializes a session to its boundary JSON form.
func EncodeSession(session HumanAgentSession) ([]byte, error) {
	done := make([]completedItemWire, 0, len(session.Done))
	for _, d := range session.Done {
		done = append(done, completedItemWire{
			Task:        d.Task,
			Evidence:    d.Evidence,
			CompletedAt: formatTimestamp(d.CompletedAt),
		})
	}

	return json.MarshalIndent(sessionWire{
		ID:        session.ID,
		HumanName: session.HumanName,
		AgentName: session.AgentName,
		WorkingOn: workingOnWire{
			Task:         session.WorkingOn.Task,
			CriticalPath: session.WorkingOn.CriticalPath,
			Bumps:        emptyIfNil(session.WorkingOn.Bumps),
		},
		Todo:          emptyIfNil(session.Todo),
		Upcoming:      emptyIfNil(session.Upcoming),
		Done:          done,
		LastSession:   formatTimestamp(session.LastSession),
		SessionCount:  session.SessionCount,
		TotalMessages: session.TotalMessages,
		Status:        string(session.Status),
		Topics:        emptyIfNil(session.Topics),
	}, "", "  ")
}

// DecodeSession parses a boundary JSON session record.
func DecodeSession(data []byte) (HumanAgentSession, error) {
	var wire sessionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return HumanAgentSession{}, fmt.Errorf("decode session record: %w", err)
	}

	lastSession, err := parseTimestamp("lastSession", wire.LastSession)
	if err != nil {
		return HumanAgentSession{}, err
	}

	status := ThreadStatus(wire.Status)
	if !status.Valid() || status == StatusComplete {
		return HumanAgentSession{}, fmt.Errorf("session status %q: %w", wire.Status, ErrInvalidStatus)
	}

	done := make([]CompletedItem, 0, len(wire.Done))
	for _, d := range wire.Done {
		completedAt, err := parseOptionalTimestamp("done.completedAt", d.CompletedAt)
		if err != nil {
			return HumanAgentSession{}, err
		}
		done = append(done, CompletedItem{Task: d.Task, Evidence: d.Evidence, CompletedAt: completedAt})
	}

	return HumanAgentSession{
		ID:        wire.ID,
		HumanName: wire.HumanName,
		AgentName: wire.AgentName,
		WorkingOn: WorkingOn{
			Task:         wire.WorkingOn.Task,
			CriticalPath: wire.WorkingOn.CriticalPath,
			Bumps:        wire.WorkingOn.Bumps,
		},
		Todo:          wire.Todo,
		Upcoming:      wire.Upcoming,
		Done:          done,
		LastSession:   lastSession,
		SessionCount:  wire.SessionCount,
		TotalMessages: wire.TotalMessages,
		Status:        status,
		Topics:        wire.Topics,
	}, nil
}

func parseTimestamp(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is empty: %w", field, ErrInvalidTimestamp)
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", field, raw, ErrInvalidTimestamp)
	}
	return parsed, nil
}

func parseOptionalTimestamp(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return parseTimestamp(field, raw)
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(time.RFC3339)
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
