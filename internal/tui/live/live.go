// Package live is the optional bubbletea dashboard shown while a run is in
// progress.
package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"httplatencies/internal/tui/components"
	"httplatencies/internal/tui/styles"
)

const (
	recentErrors = 6
	tickInterval = 500 * time.Millisecond
)

type ProgressMsg struct {
	Completed int
	Expected  int
}

type ErrorMsg struct {
	Task int
	Err  string
}

// DoneMsg ends the program once the aggregator has drained.
type DoneMsg struct {
	Summary string
}

type tickMsg time.Time

// Observer forwards aggregator events to a running program.
type Observer struct {
	Program *tea.Program
}

func (o Observer) Progress(completed, expected int) {
	o.Program.Send(ProgressMsg{Completed: completed, Expected: expected})
}

func (o Observer) ProbeError(task int, err error) {
	o.Program.Send(ErrorMsg{Task: task, Err: err.Error()})
}

type Model struct {
	Progress progress.Model
	Samples  components.Sparkline

	Completed int
	Expected  int
	Errors    int
	Recent    []string

	StartTime   time.Time
	lastSampled int

	Done     bool
	Quitting bool
	Summary  string

	Width int
}

func NewModel(expected int) Model {
	return Model{
		Progress:  progress.New(progress.WithDefaultGradient()),
		Samples:   components.NewSparkline(40, "Samples / tick", styles.Active),
		Expected:  expected,
		StartTime: time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.Completed = msg.Completed
		m.Expected = msg.Expected

		return m, m.Progress.SetPercent(m.percent())

	case ErrorMsg:
		m.Errors++
		m.Recent = append(m.Recent, fmt.Sprintf("%d ERROR %s", msg.Task, msg.Err))
		if len(m.Recent) > recentErrors {
			m.Recent = m.Recent[len(m.Recent)-recentErrors:]
		}

		return m, nil

	case tickMsg:
		m.Samples.Add(uint64(max(0, m.Completed-m.lastSampled)))
		m.lastSampled = m.Completed
		if m.Done {
			return m, nil
		}

		return m, tick()

	case DoneMsg:
		m.Done = true
		m.Summary = msg.Summary

		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Progress.Width = max(10, msg.Width-4)
		m.Samples.Width = max(10, msg.Width/2-4)

		return m, nil

	case progress.FrameMsg:
		prog, cmd := m.Progress.Update(msg)
		m.Progress = prog.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m Model) percent() float64 {
	if m.Expected <= 0 {
		return 0
	}

	return min(1.0, float64(m.Completed)/float64(m.Expected))
}

func (m Model) View() string {
	s := strings.Builder{}

	s.WriteString(styles.Title.Render("httplatencies"))
	s.WriteString("\n\n")

	errStyle := styles.Active
	if m.Errors > 0 {
		errStyle = styles.Error
	}

	col1 := fmt.Sprintf("DONE: %d/%d", m.Completed, m.Expected)
	col2 := errStyle.Render(fmt.Sprintf("ERR: %d", m.Errors))
	col3 := fmt.Sprintf("ELAPSED: %s", time.Since(m.StartTime).Round(time.Second))

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Box.Render(col1),
		styles.Box.Render(col2),
		styles.Box.Render(col3),
	))
	s.WriteString("\n\n")

	s.WriteString(styles.Box.Render(m.Samples.View()))
	s.WriteString("\n\n")

	if len(m.Recent) > 0 {
		s.WriteString(styles.Error.Render(strings.Join(m.Recent, "\n")))
		s.WriteString("\n\n")
	}

	s.WriteString(m.Progress.ViewAs(m.percent()))
	s.WriteString("\n\n")

	if m.Summary != "" {
		s.WriteString(styles.Value.Render(m.Summary))
		s.WriteString("\n")
	} else {
		s.WriteString(styles.RenderKey("q", "stop run"))
	}

	return s.String()
}
