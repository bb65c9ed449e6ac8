package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// logTail is how many run-log lines stay on screen.
const logTail = 14

// ─── Messages ────────────────────────────────────────────────────────────────

// LogMsg carries one run-log line from the engine.
type LogMsg string

// ProgressMsg carries the completed fraction of the run.
type ProgressMsg float64

// DoneMsg ends the run.
type DoneMsg struct {
	Processed int
	Failed    int
	Affected  int
	Elapsed   time.Duration
	Err       error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// RunModel renders a cleanup run: spinner, progress bar and log tail.
// Ctrl+C asks the engine to stop at the next category; the view stays up
// until DoneMsg arrives.
type RunModel struct {
	Title      string
	Width      int
	Lines      []string
	Percent    float64
	Cancelling bool
	Done       *DoneMsg

	cancel   func()
	spinner  spinner.Model
	progress progress.Model
}

// NewRunModel creates the view. cancel is called once on Ctrl+C.
func NewRunModel(title string, cancel func()) RunModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = TitleStyle
	return RunModel{
		Title:    title,
		Width:    80,
		cancel:   cancel,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m RunModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.Done != nil {
				return m, tea.Quit
			}
			if !m.Cancelling {
				m.Cancelling = true
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case LogMsg:
		m.Lines = append(m.Lines, string(msg))
		if len(m.Lines) > logTail {
			m.Lines = m.Lines[len(m.Lines)-logTail:]
		}
		return m, nil

	case ProgressMsg:
		m.Percent = float64(msg)
		return m, nil

	case DoneMsg:
		m.Done = &msg
		return m, tea.Quit

	case spinner.TickMsg:
		if m.Done != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m RunModel) View() string {
	var s strings.Builder

	status := m.spinner.View() + " " + TitleStyle.Render(m.Title)
	if m.Cancelling && m.Done == nil {
		status += WarnStyle.Render("  stopping after the current category…")
	}
	if m.Done != nil {
		status = m.summary()
	}
	s.WriteString(status)
	s.WriteString("\n\n")

	w := m.Width - 4
	if w < 20 {
		w = 20
	}
	m.progress.Width = w
	s.WriteString("  " + m.progress.ViewAs(m.Percent))
	s.WriteString("\n\n")

	for _, line := range m.Lines {
		s.WriteString("  " + StyleLogLine(line) + "\n")
	}

	if m.Done == nil {
		s.WriteString("\n" + HintBarStyle.Render("  ctrl+c stop after current category"))
	}
	return s.String()
}

func (m RunModel) summary() string {
	d := m.Done
	counts := fmt.Sprintf("%s items processed, %s entries affected in %.1fs",
		humanize.Comma(int64(d.Processed)), humanize.Comma(int64(d.Affected)), d.Elapsed.Seconds())
	switch {
	case d.Err != nil:
		return WarnStyle.Render(IconWarning+" Stopped: ") + MutedStyle.Render(counts)
	case d.Failed > 0:
		return ErrorStyle.Render(fmt.Sprintf("%s %d items failed; ", IconCross, d.Failed)) + MutedStyle.Render(counts)
	default:
		return DoneStyle.Render(IconCheck+" Done: ") + MutedStyle.Render(counts)
	}
}
