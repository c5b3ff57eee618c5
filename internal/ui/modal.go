package ui

import (
	"strings"

	"github.com/schrockblock/recipes/internal/fetch"
)

// renderAlert renders a failed request as a modal until it is dismissed.
func (m Model) renderAlert(alert *fetch.Alert) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(alert.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(alert.Message))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter/esc to dismiss"))

	return m.renderModal(b.String(), m.theme.Danger, 50)
}
