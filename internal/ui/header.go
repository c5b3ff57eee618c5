package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the header, the command bar, the search line and the
// panes below them.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderSearchLine())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	parts := []string{
		bg.render("recipes", styles.Logo),
		bg.render(m.catalog.Category(), styles.AccentText),
		bg.render(m.countLabel(), styles.MutedText),
	}

	if m.busy() {
		parts = append(parts, bg.render(m.spinner.View()+" Loading", styles.WarningText))
	}

	list := m.catalog.List()
	switch {
	case list.Err() != nil:
		parts = append(parts, bg.render("Last refresh failed", styles.DangerText))
	case list.LastDecodeErr() != nil:
		parts = append(parts, bg.render("Unreadable response, showing previous list", styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.join(parts, "  "))
}

// countLabel describes how many recipes are listed.
func (m Model) countLabel() string {
	total := m.catalog.All().Len()
	visible := m.catalog.Visible().Len()
	if m.catalog.Query() == "" || visible == total {
		return fmt.Sprintf("%d recipes", total)
	}
	return fmt.Sprintf("%d of %d recipes", visible, total)
}

// busy reports whether a list or detail request is outstanding.
func (m Model) busy() bool {
	if m.catalog.Loading() {
		return true
	}
	d, ok := m.catalog.Detail()
	return ok && d.Loading()
}

// renderCommandBar renders the key hints for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.focus {
	case focusSearch:
		commands = []cmd{
			{"enter", "Keep"},
			{"esc", "Clear"},
		}
	case focusDetail:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"r", "Reload"},
			{"i", "Image info"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"/", "Search"},
			{"r", "Refresh"},
			{"i", "Image info"},
			{"?", "More"},
		}
	}

	colon := bg.render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.render(c.key, styles.AccentText)+colon+bg.render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.render("T", styles.AccentText)+colon+bg.render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.join(segments, "  "))
}

// renderSearchLine shows the search field, or the active query when the
// field is not focused.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	line := lipgloss.NewStyle().Padding(0, 1).Width(m.width)

	switch {
	case m.focus == focusSearch:
		return line.Render(m.search.View())
	case m.catalog.Query() != "":
		return line.Render(styles.AccentText.Render("/"+m.catalog.Query()) +
			styles.FaintText.Render("  esc clears"))
	default:
		return line.Render(styles.FaintText.Render("/ to search"))
	}
}
