package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/helm-threads-cli/internal/application"
	"github.com/bnema/helm-threads-cli/internal/domain"
)

func TestRenderSingleThreadStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.Status{
		{
			Thread: domain.Thread{
				ID:   "th-1",
				Name: "HELM Hackathon",
				WorkingOn: domain.WorkingOn{
					Task:         "Implement thread dashboard",
					CriticalPath: "format working end-to-end",
					Bumps:        []string{"API down"},
				},
				Todo:        []string{"deploy token", "announce"},
				LastTouched: now.Add(-10 * 24 * time.Hour),
				CreatedAt:   now.Add(-30 * 24 * time.Hour),
				Status:      domain.StatusBlocked,
			},
			Signals:   domain.Signals{Blocked: true, Drifting: true, NeedsAttention: true},
			DaysSince: 10,
			Momentum:  45,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "threads: 1 (as of 2026-02-14)")
	assert.Contains(t, output, "HELM Hackathon")
	assert.Contains(t, output, "[blocked]")
	assert.Contains(t, output, "45/100")
	assert.Contains(t, output, "working on: Implement thread dashboard")
	assert.Contains(t, output, "critical path: format working end-to-end")
	assert.Contains(t, output, "bumps (1): API down")
	assert.Contains(t, output, "next: deploy token")
	assert.Contains(t, output, "touched 10 days ago")
	assert.NotContains(t, output, "announce")
	assert.NotContains(t, output, "stale")
}

func TestRenderStaleThreadAndStatusDisagreement(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.Status{
		{
			Thread: domain.Thread{
				ID:          "th-2",
				Name:        "Quiet Thread",
				WorkingOn:   domain.WorkingOn{Task: "idle work"},
				LastTouched: now.Add(-20 * 24 * time.Hour),
				CreatedAt:   now.Add(-40 * 24 * time.Hour),
				Status:      domain.StatusActive,
			},
			Signals:   domain.Signals{},
			DaysSince: 20,
			Momentum:  10,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "[inactive]")
	assert.Contains(t, output, "(status: active)")
	assert.Contains(t, output, "[stale]")
}

func TestRenderWithGentlePrompts(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.Status{
		{
			Thread: domain.Thread{
				ID:          "th-1",
				Name:        "HELM Hackathon",
				WorkingOn:   domain.WorkingOn{Task: "ship", Bumps: []string{"API down"}},
				LastTouched: now.Add(-9 * 24 * time.Hour),
				CreatedAt:   now.Add(-30 * 24 * time.Hour),
				Status:      domain.StatusBlocked,
			},
			Signals:   domain.Signals{Blocked: true, Drifting: true, NeedsAttention: true},
			DaysSince: 9,
			Momentum:  50,
		},
	}, RenderOptions{Now: now, ShowPrompts: true})

	require.NoError(t, err)
	assert.Contains(t, output, "It's been 9 days")
	assert.Contains(t, output, "Want to talk through them?")
}

func TestRenderEmpty(t *testing.T) {
	output, err := Render(nil, RenderOptions{Now: time.Now()})

	require.NoError(t, err)
	assert.Contains(t, output, "threads: 0")
	assert.Contains(t, output, "No threads tracked yet.")
}

func TestRenderWithoutClockOmitsDateStamp(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "threads: 0")
	assert.NotContains(t, output, "as of")
}

func TestRenderMomentumBarWidth(t *testing.T) {
	s := newStyles()

	full := renderMomentumBar(100, 24, s)
	assert.Contains(t, full, "========================")

	empty := renderMomentumBar(0, 24, s)
	assert.Contains(t, empty, "------------------------")

	assert.Equal(t, "", renderMomentumBar(50, 0, s))
}
