// ABOUTME: Rest countdown between sets, built on the bubbles timer.
// ABOUTME: Space pauses, + adds fifteen seconds, s skips, q quits.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RestExtension is how much the + key adds.
const RestExtension = 15 * time.Second

const progressWidth = 30

type restKeyMap struct {
	Pause key.Binding
	Add   key.Binding
	Skip  key.Binding
	Quit  key.Binding
}

var restKeys = restKeyMap{
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	Add: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "add 15s"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "skip"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// RestResult says how a rest countdown ended.
type RestResult struct {
	Completed bool
	Skipped   bool
	Remaining time.Duration
}

// RestTimer is the bubbletea model for one rest period.
type RestTimer struct {
	label  string
	total  time.Duration
	timer  timer.Model
	styles Styles
	result RestResult
}

// NewRestTimer counts down d for the named exercise.
func NewRestTimer(label string, d time.Duration, st Styles) RestTimer {
	return RestTimer{
		label:  label,
		total:  d,
		timer:  timer.NewWithInterval(d, time.Second),
		styles: st,
	}
}

// Init starts the countdown.
func (m RestTimer) Init() tea.Cmd {
	return m.timer.Init()
}

// Update handles ticks and keys.
func (m RestTimer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.result = RestResult{Completed: true}
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, restKeys.Pause):
			return m, m.timer.Toggle()
		case key.Matches(msg, restKeys.Add):
			m.timer.Timeout += RestExtension
			m.total += RestExtension
			return m, nil
		case key.Matches(msg, restKeys.Skip):
			m.result = RestResult{Skipped: true, Remaining: m.timer.Timeout}
			return m, tea.Quit
		case key.Matches(msg, restKeys.Quit):
			m.result = RestResult{Remaining: m.timer.Timeout}
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the label, remaining time and a progress bar.
func (m RestTimer) View() string {
	remaining := m.timer.Timeout
	if remaining < 0 {
		remaining = 0
	}
	clock := m.styles.Timer.Render(formatClock(remaining))
	if !m.timer.Running() && !m.timer.Timedout() {
		clock = m.styles.Paused.Render(formatClock(remaining) + "  paused")
	}

	var done float64
	if m.total > 0 {
		done = float64(m.total-remaining) / float64(m.total)
	}
	filled := min(max(int(done*progressWidth), 0), progressWidth)
	bar := m.styles.Bar.Render(strings.Repeat("█", filled)) +
		m.styles.Muted.Render(strings.Repeat("░", progressWidth-filled))

	help := m.styles.Muted.Render("space pause · + add 15s · s skip · q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Rest: "+m.label),
		clock,
		bar,
		help,
	) + "\n"
}

// Result reports how the countdown ended.
func (m RestTimer) Result() RestResult {
	return m.result
}

// RunRestTimer runs the countdown in the foreground until it finishes,
// is skipped, or ctx is cancelled.
func RunRestTimer(ctx context.Context, label string, d time.Duration, st Styles, opts ...tea.ProgramOption) (RestResult, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewRestTimer(label, d, st), opts...).Run()
	if err != nil {
		return RestResult{}, fmt.Errorf("run rest timer: %w", err)
	}
	return final.(RestTimer).Result(), nil
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
