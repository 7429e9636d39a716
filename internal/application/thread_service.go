package application

import (
	"context"
	"fmt"

	"github.com/bnema/helm-threads-cli/internal/domain"
	"github.com/bnema/helm-threads-cli/internal/ports"
)

// ThreadService reads thread records from the storage collaborator, derives
// their advisory signals and momentum, and applies caller-driven mutations by
// whole-record replacement.
type ThreadService struct {
	repo  ports.ThreadRepository
	clock ports.Clock
}

func NewThreadService(repo ports.ThreadRepository, clock ports.Clock) *ThreadService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ThreadService{repo: repo, clock: clock}
}

// Create stores a new thread with the heartbeat defaults: empty lists, active
// status, creation and touch stamps set to now. The caller supplies the ID;
// identifier generation belongs to the collaborator layer.
func (s *ThreadService) Create(ctx context.Context, id domain.ThreadID, name, description, task string) (domain.Thread, error) {
	now := s.clock.Now()
	thread := domain.Thread{
		ID:          id,
		Name:        name,
		Description: description,
		WorkingOn: domain.WorkingOn{
			Task: task,
		},
		LastTouched: now,
		CreatedAt:   now,
		Status:      domain.StatusActive,
	}

	if err := s.repo.Save(ctx, thread); err != nil {
		return domain.Thread{}, fmt.Errorf("save thread: %w", err)
	}

	return thread, nil
}

// GetStatus loads one thread and computes its read-model.
func (s *ThreadService) GetStatus(ctx context.Context, id domain.ThreadID) (Status, error) {
	thread, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Status{}, fmt.Errorf("get thread by id: %w", err)
	}

	return s.statusFor(thread)
}

// GetStatusAll computes the read-model for every stored thread.
func (s *ThreadService) GetStatusAll(ctx context.Context) ([]Status, error) {
	threads, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	statuses := make([]Status, 0, len(threads))
	for _, thread := range threads {
		status, err := s.statusFor(thread)
		if err != nil {
			return nil, fmt.Errorf("thread %s: %w", thread.ID, err)
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Touch stamps a thread as interacted with now.
func (s *ThreadService) Touch(ctx context.Context, id domain.ThreadID) (domain.Thread, error) {
	return s.replace(ctx, id, func(thread domain.Thread) (domain.Thread, error) {
		return thread.Touch(s.clock.Now()), nil
	})
}

// AddBump records a new blocker on the thread's current task.
func (s *ThreadService) AddBump(ctx context.Context, id domain.ThreadID, bump string) (domain.Thread, error) {
	return s.replace(ctx, id, func(thread domain.Thread) (domain.Thread, error) {
		return thread.AddBump(bump, s.clock.Now()), nil
	})
}

// RemoveBump clears the blocker at index.
func (s *ThreadService) RemoveBump(ctx context.Context, id domain.ThreadID, index int) (domain.Thread, error) {
	return s.replace(ctx, id, func(thread domain.Thread) (domain.Thread, error) {
		if index < 0 || index >= len(thread.WorkingOn.Bumps) {
			return domain.Thread{}, fmt.Errorf("bump %d of %d: %w", index, len(thread.WorkingOn.Bumps), domain.ErrBumpIndexOutOfRange)
		}
		return thread.RemoveBump(index, s.clock.Now()), nil
	})
}

// MarkDone appends completed work, with an optional note on how completion
// was verified.
func (s *ThreadService) MarkDone(ctx context.Context, id domain.ThreadID, task, test string) (domain.Thread, error) {
	return s.replace(ctx, id, func(thread domain.Thread) (domain.Thread, error) {
		return thread.MarkDone(task, test, s.clock.Now()), nil
	})
}

// SetStatus applies a caller-driven status transition. The classifier only
// ever advises; this is the one way the stored status changes.
func (s *ThreadService) SetStatus(ctx context.Context, id domain.ThreadID, status domain.ThreadStatus) (domain.Thread, error) {
	if !status.Valid() {
		return domain.Thread{}, fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}

	return s.replace(ctx, id, func(thread domain.Thread) (domain.Thread, error) {
		thread.Status = status
		thread.LastTouched = s.clock.Now()
		return thread, nil
	})
}

func (s *ThreadService) statusFor(thread domain.Thread) (Status, error) {
	now := s.clock.Now()

	signals, err := thread.Signals(now)
	if err != nil {
		return Status{}, fmt.Errorf("detect signals: %w", err)
	}
	daysSince, err := domain.DaysSince(thread.LastTouched, now)
	if err != nil {
		return Status{}, err
	}
	momentum, err := thread.Momentum(now)
	if err != nil {
		return Status{}, fmt.Errorf("momentum: %w", err)
	}

	return Status{
		Thread:    thread,
		Signals:   signals,
		DaysSince: daysSince,
		Momentum:  momentum,
	}, nil
}

// replace implements read-modify-write with last-writer-wins: the mutation
// runs against the freshly fetched record and the result replaces the whole
// stored value.
func (s *ThreadService) replace(ctx context.Context, id domain.ThreadID, mutate func(domain.Thread) (domain.Thread, error)) (domain.Thread, error) {
	thread, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("get thread by id: %w", err)
	}

	updated, err := mutate(thread)
	if err != nil {
		return domain.Thread{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return domain.Thread{}, fmt.Errorf("save thread: %w", err)
	}

	return updated, nil
}
