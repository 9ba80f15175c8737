package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows indeterminate activity during generation.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// NewSpinner creates a spinner for the given theme. Headless or color-free
// sessions get a log-line spinner instead of an animated one.
func NewSpinner(theme *Theme, hm *HeadlessManager, title string) Spinner {
	if hm.IsHeadless() || theme.NoColor {
		return newLogSpinner(title, os.Stdout)
	}
	return newAnimatedSpinner(theme, title)
}

type spinnerTitleMsg string

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// animatedSpinner runs a bubbletea program on a background goroutine; Stop
// waits for the program to exit so terminal state is restored.
type animatedSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newAnimatedSpinner(theme *Theme, title string) *animatedSpinner {
	p := tea.NewProgram(newSpinnerModel(theme, title))
	s := &animatedSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

func (s *animatedSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

func (s *animatedSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// logSpinner prints each title once as a plain line.
type logSpinner struct {
	writer io.Writer
}

func newLogSpinner(title string, w io.Writer) *logSpinner {
	_, _ = fmt.Fprintln(w, title)
	return &logSpinner{writer: w}
}

func (s *logSpinner) SetTitle(title string) {
	_, _ = fmt.Fprintln(s.writer, title)
}

func (s *logSpinner) Stop() {}
