package tui

import (
	"fmt"
	"strings"

	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	leafStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	leafTitleStyle = lipgloss.NewStyle().Bold(true)
	leafDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	dividerIdleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dividerSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dividerHoverStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dividerDragStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}

	if m.tree == nil {
		if m.lastError != nil {
			return "Error: " + m.lastError.Error()
		}
		return "Loading..."
	}

	m.updateStatusBar()

	var parts []string
	if content := m.renderNode(m.tree); content != "" {
		parts = append(parts, content)
	}
	if m.helpMode {
		parts = append(parts, m.fullHelpView())
	}
	parts = append(parts, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) fullHelpView() string {
	return m.help.FullHelpView(m.keys.FullHelp())
}

func (m *Model) updateStatusBar() {
	ref := m.focusRef()
	if !ref.valid() {
		m.statusBar.SetTarget("", "")
		m.statusBar.SetSizes(formatSizes(m.tree.split.engine.Sizes()))
		m.statusBar.SetSession("")
	} else {
		m.statusBar.SetTarget(dividerLabel(ref), ref.state().String())
		m.statusBar.SetSizes(formatSizes(ref.split.engine.Sizes()))
		if session, ok := ref.split.engine.Dragging(); ok {
			m.statusBar.SetSession(session.ID)
		} else {
			m.statusBar.SetSession("")
		}
	}

	if m.helpMode {
		m.statusBar.SetHint("")
	} else {
		m.statusBar.SetHint(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
}

// dividerLabel names a divider after the panels on either side.
func dividerLabel(ref dividerRef) string {
	children := ref.split.children
	if ref.index+1 >= len(children) {
		return fmt.Sprintf("divider %d", ref.index)
	}
	left, right := children[ref.index].name, children[ref.index+1].name
	if left == "" {
		left = fmt.Sprintf("#%d", ref.index)
	}
	if right == "" {
		right = fmt.Sprintf("#%d", ref.index+1)
	}
	return left + "|" + right
}

func formatSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%.4g", s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// renderNode draws n into exactly n.rect cells.
func (m *Model) renderNode(n *paneNode) string {
	if n.rect.W <= 0 || n.rect.H <= 0 {
		return ""
	}
	if n.split == nil {
		return renderLeaf(n)
	}

	var parts []string
	for i, child := range n.split.children {
		if part := m.renderNode(child); part != "" {
			parts = append(parts, part)
		}
		if i < len(n.split.dividers) {
			d := n.split.dividers[i]
			if d.W > 0 && d.H > 0 {
				parts = append(parts, m.renderDivider(dividerRef{split: n.split, index: i}, d))
			}
		}
	}

	var joined string
	if n.split.axis == splitpane.Column {
		joined = lipgloss.JoinVertical(lipgloss.Left, parts...)
	} else {
		joined = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	// Panels held under their share by max_size leave a gap; pad it.
	return fill(n.rect.W, n.rect.H, joined)
}

func renderLeaf(n *paneNode) string {
	w, h := n.rect.W, n.rect.H
	if w <= BorderWidth || h <= BorderHeight {
		return fill(w, h, "")
	}

	innerW, innerH := w-BorderWidth, h-BorderHeight
	lines := []string{
		leafTitleStyle.Render(truncate(n.name, innerW)),
		leafDimStyle.Render(truncate(fmt.Sprintf("%dx%d", w, h), innerW)),
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	return leafStyle.
		Width(innerW).
		Height(innerH).
		MaxWidth(w).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

// renderDivider draws a divider line whose weight and colour follow its
// interaction state.
func (m *Model) renderDivider(ref dividerRef, r rect) string {
	state := ref.state()

	glyph := "│"
	if state.Highlighted() {
		glyph = "┃"
	}
	if ref.split.axis == splitpane.Column {
		glyph = "─"
		if state.Highlighted() {
			glyph = "━"
		}
	}

	style := dividerIdleStyle
	switch state {
	case splitpane.Hovered:
		style = dividerHoverStyle
	case splitpane.Dragging:
		style = dividerDragStyle
	default:
		if ref == m.selectedRef() {
			style = dividerSelectedStyle
		}
	}

	line := strings.Repeat(glyph, r.W)
	rows := make([]string, r.H)
	for i := range rows {
		rows[i] = line
	}
	return style.Render(strings.Join(rows, "\n"))
}

// fill pads or clips s to exactly w x h cells.
func fill(w, h int, s string) string {
	return lipgloss.NewStyle().
		Width(w).
		Height(h).
		MaxWidth(w).
		MaxHeight(h).
		Render(s)
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// terminalTooSmallView renders the message when terminal is too small
func (m *Model) terminalTooSmallView() string {
	return fmt.Sprintf("Terminal too small: %dx%d (need %dx%d)",
		m.width, m.height, MinTerminalWidth, MinTerminalHeight)
}
