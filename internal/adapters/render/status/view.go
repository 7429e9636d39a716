package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/helm-threads-cli/internal/application"
	"github.com/bnema/helm-threads-cli/internal/domain"
)

type RenderOptions struct {
	Now         time.Time
	ShowPrompts bool
}

func renderView(statuses []application.Status, opts RenderOptions, s styles) string {
	header := fmt.Sprintf("threads: %d", len(statuses))
	if !opts.Now.IsZero() {
		header = fmt.Sprintf("threads: %d (as of %s)", len(statuses), opts.Now.Format("2006-01-02"))
	}

	lines := []string{
		s.title.Render("HELM Threads"),
		s.header.Render(header),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No threads tracked yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderThread(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderThread(status application.Status, opts RenderOptions, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.thread.Render(status.Thread.Name),
			" ",
			labelBadge(status, s),
		),
		momentumLine(status.Momentum, s),
		s.detail.Render(fmt.Sprintf("working on: %s", status.Thread.WorkingOn.Task)),
	}

	if cp := status.Thread.WorkingOn.CriticalPath; cp != "" {
		parts = append(parts, s.detail.Render(fmt.Sprintf("critical path: %s", cp)))
	}

	if bumps := status.Thread.WorkingOn.Bumps; len(bumps) > 0 {
		parts = append(parts, s.warning.Render(fmt.Sprintf("bumps (%d): %s", len(bumps), strings.Join(bumps, ", "))))
	}

	if len(status.Thread.Todo) > 0 {
		parts = append(parts, s.detail.Render(fmt.Sprintf("next: %s", status.Thread.Todo[0])))
	}

	parts = append(parts, s.header.Render(touchedLine(status)))

	if opts.ShowPrompts {
		for _, prompt := range gentlePrompts(status) {
			parts = append(parts, s.prompt.Render(prompt))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func labelBadge(status application.Status, s styles) string {
	label := status.Label()
	badge := fmt.Sprintf("[%s]", label)
	style := s.label
	if status.Signals.NeedsAttention {
		style = s.labelRisk
	}

	rendered := style.Render(badge)
	if string(status.Thread.Status) != label {
		rendered += " " + s.header.Render(fmt.Sprintf("(status: %s)", status.Thread.Status))
	}
	if status.Stale() {
		rendered += " " + s.warning.Render("[stale]")
	}

	return rendered
}

func momentumLine(momentum int, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderMomentumBar(momentum, 24, s),
		" ",
		s.barText.Render(fmt.Sprintf("%3d/100", momentum)),
	)
}

func renderMomentumBar(momentum, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	score := momentum
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	filled := int(math.Round(float64(width) * float64(score) / 100.0))
	if filled > width {
		filled = width
	}

	fill := s.barFill
	if score < 40 {
		fill = s.barLow
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func touchedLine(status application.Status) string {
	switch status.DaysSince {
	case 0:
		return "touched today"
	case 1:
		return "touched yesterday"
	default:
		return fmt.Sprintf("touched %d days ago", status.DaysSince)
	}
}

// gentlePrompts picks the nudges worth showing for a thread, riskiest first.
func gentlePrompts(status application.Status) []string {
	var prompts []string

	if status.Signals.Drifting || status.Stale() {
		prompts = append(prompts, domain.DriftingPrompt(status.Thread, status.DaysSince))
	}
	if status.Signals.Blocked {
		prompts = append(prompts, domain.BlockedPrompt(status.Thread))
	}
	if !status.Signals.Blocked && status.Thread.Status != domain.StatusComplete {
		prompts = append(prompts, domain.CriticalPathPrompt(status.Thread))
	}
	if len(status.Thread.Done) > 0 && status.Thread.Status == domain.StatusComplete {
		prompts = append(prompts, domain.CompletionPrompt(status.Thread))
	}

	return prompts
}
