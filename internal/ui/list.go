package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/schrockblock/recipes/internal/imageload"
	"github.com/schrockblock/recipes/internal/recipe"
)

const (
	glyphImage   = "■"
	glyphPending = "□"
)

// renderContent lays the list and, when a recipe is open, its detail side
// by side.
func (m Model) renderContent() string {
	height := m.height - chromeHeight
	if height < 3 {
		return ""
	}

	listWidth := m.listPaneWidth()
	list := m.renderTitledBox(m.listTitle(), m.renderListRows(listWidth-2), listWidth, height, m.focus != focusDetail)

	if _, ok := m.catalog.Detail(); !ok {
		return list
	}
	detailWidth := m.width - listWidth
	pane := m.renderTitledBox(m.detailTitle(), m.detail.View(), detailWidth, height, m.focus == focusDetail)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, pane)
}

// listPaneWidth returns the list width: the full screen, or a share of it
// while a recipe is open.
func (m Model) listPaneWidth() int {
	if _, ok := m.catalog.Detail(); !ok {
		return m.width
	}
	if m.width >= 160 {
		return m.width * 30 / 100
	}
	return m.width * 40 / 100
}

func (m Model) listTitle() string {
	if m.catalog.Query() != "" {
		return fmt.Sprintf("Recipes (%d/%d)", m.catalog.Visible().Len(), m.catalog.All().Len())
	}
	return fmt.Sprintf("Recipes (%d)", m.catalog.All().Len())
}

// renderListRows renders the rows between offset and the pane height.
func (m Model) renderListRows(width int) string {
	styles := m.theme.Styles()
	visible := m.catalog.Visible()

	if visible.Len() == 0 {
		switch {
		case m.catalog.Loading():
			return styles.MutedText.Render("Loading recipes...")
		case m.catalog.All().Len() == 0:
			return styles.MutedText.Render("No recipes")
		default:
			return styles.MutedText.Render(fmt.Sprintf("No recipes match %q", m.catalog.Query()))
		}
	}

	bgColor := m.theme.SurfaceAlt
	if m.focus != focusDetail {
		bgColor = m.theme.FocusBg
	}

	end := min(m.offset+m.listHeight(), visible.Len())
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		r := visible.At(i)
		if i == m.selected {
			lines = append(lines, m.formatRow(r, width, m.theme.SelectionBg, true))
			continue
		}
		lines = append(lines, m.formatRow(r, width, bgColor, false))
	}
	return strings.Join(lines, "\n")
}

// formatRow formats one recipe as "glyph Name  size".
func (m Model) formatRow(r recipe.Recipe, width int, bgColor string, selected bool) string {
	bg := newBgStyle(bgColor)

	glyph := glyphPending
	if r.HasImage() {
		glyph = glyphImage
	}

	var info string
	if m.showImageInfo && r.HasImage() {
		if desc, err := imageload.Describe(r.ImageData); err == nil {
			info = fmt.Sprintf("%d×%d", desc.Width, desc.Height)
		}
	}

	nameWidth := max(width-lipgloss.Width(glyph)-lipgloss.Width(info)-3, 4)

	var glyphStyle, nameStyle, infoStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		glyphStyle, nameStyle, infoStyle = sel, sel.Bold(true), sel
	} else {
		styles := m.theme.Styles()
		glyphStyle = styles.FaintText
		if r.HasImage() {
			glyphStyle = styles.SuccessText
		}
		nameStyle = styles.Text
		infoStyle = styles.FaintText
	}

	name := truncate(r.Name, nameWidth)
	content := bg.render(glyph, glyphStyle) + bg.spaces(1) + bg.render(name, nameStyle)
	if info != "" {
		gap := max(width-lipgloss.Width(glyph)-1-lipgloss.Width(name)-lipgloss.Width(info), 1)
		content += bg.spaces(gap) + bg.render(info, infoStyle)
	}
	return bg.fill(content, width)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := newBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	inner := max(width-2, 0)
	title = truncate(title, max(inner-4, 0))
	titleLen := lipgloss.Width(title)
	left := max((inner-titleLen-2)/2, 0)
	right := max(inner-titleLen-2-left, 0)

	top := bg.render("┌", borderStyle) +
		bg.render(strings.Repeat("─", left), borderStyle) +
		bg.render(" "+title+" ", titleStyle) +
		bg.render(strings.Repeat("─", right), borderStyle) +
		bg.render("┐", borderStyle)
	bottom := bg.render("└", borderStyle) +
		bg.render(strings.Repeat("─", inner), borderStyle) +
		bg.render("┘", borderStyle)

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(lipgloss.Color(bgColor))
	lines := strings.Split(content, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, bg.render("│", borderStyle)+body.Render(line)+bg.render("│", borderStyle))
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}
