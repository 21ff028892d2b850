package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the top-level mode of a dashboard model.
type ViewState int

// Dashboard view states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateHierarchy
	ViewStateError
	ViewStateQuitting
)

// Key strings as reported by tea.KeyMsg.String().
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keyD     = "d"
	keyH     = "h"
	keyO     = "o"
	keyR     = "r"
	keyPgUp  = "pgup"
	keyPgDn  = "pgdown"
)

const msgSelectedOutOfBounds = "Selected manager is out of range.\nPress ESC to return."

// LoadingState wraps the spinner shown while the first fetch is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a loading spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading dashboard..."}
}

// Init returns the command that starts the spinner ticking.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner animation.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner line.
func (l *LoadingState) View() string {
	if l == nil {
		return "Loading..."
	}
	return " " + l.spinner.View() + " " + l.message
}

// newSearchInput creates the text input used for the manager search filter.
func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search managers..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}
