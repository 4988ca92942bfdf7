package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Background(lipgloss.Color("236"))

	statusSeparator = " · "
)

// StatusBar shows the focused divider, the sizes around it and key hints.
type StatusBar struct {
	width   int
	target  string
	state   string
	sizes   string
	session string
	hint    string
	err     error
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetTarget sets the divider label and its interaction state.
func (sb *StatusBar) SetTarget(label, state string) {
	sb.target = label
	sb.state = state
}

// SetSizes sets the formatted sizes of the split the target belongs to.
func (sb *StatusBar) SetSizes(sizes string) {
	sb.sizes = sizes
}

// SetSession sets the active drag session id, empty when idle.
func (sb *StatusBar) SetSession(id string) {
	sb.session = id
}

// SetHint sets the key hints drawn after the status text.
func (sb *StatusBar) SetHint(hint string) {
	sb.hint = hint
}

// SetError shows err until it is cleared with nil.
func (sb *StatusBar) SetError(err error) {
	sb.err = err
}

// View renders the status bar
func (sb *StatusBar) View() string {
	var parts []string
	if sb.target != "" {
		parts = append(parts, sb.target+" "+sb.state)
	}
	if sb.sizes != "" {
		parts = append(parts, sb.sizes)
	}
	if sb.session != "" {
		parts = append(parts, "drag "+sb.session)
	}
	if sb.err != nil {
		parts = append(parts, statusErrorStyle.Render("error: "+sb.err.Error()))
	}
	if sb.hint != "" {
		parts = append(parts, sb.hint)
	}

	text := strings.Join(parts, statusSeparator)
	if sb.width <= 0 {
		return statusBarStyle.Render(text)
	}
	return statusBarStyle.Width(sb.width).MaxWidth(sb.width).MaxHeight(1).Render(text)
}
