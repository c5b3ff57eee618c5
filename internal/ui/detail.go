package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/schrockblock/recipes/internal/detail"
	"github.com/schrockblock/recipes/internal/imageload"
	"github.com/schrockblock/recipes/internal/recipe"
)

// resizeDetail fits the detail viewport inside its pane.
func (m *Model) resizeDetail() {
	m.detail.Width = max(m.width-m.listPaneWidth()-4, 0)
	m.detail.Height = max(m.height-chromeHeight-2, 0)
	m.refreshDetail()
}

// refreshDetail re-renders the open recipe into the viewport.
func (m *Model) refreshDetail() {
	d, ok := m.catalog.Detail()
	if !ok {
		m.detail.SetContent("")
		return
	}
	width := max(m.width-m.listPaneWidth()-4, 0)
	if width != m.detail.Width {
		m.detail.Width = width
		m.detail.Height = max(m.height-chromeHeight-2, 0)
	}
	m.detail.SetContent(m.detailContent(d, width))
}

func (m Model) detailTitle() string {
	d, ok := m.catalog.Detail()
	if !ok {
		return "Recipe"
	}
	return d.Recipe().Name
}

// detailContent renders the sections of an open recipe.
func (m Model) detailContent(d detail.Model, width int) string {
	styles := m.theme.Styles()
	r := d.Recipe()
	wrap := lipgloss.NewStyle().Width(max(width, 10))

	var b strings.Builder
	b.WriteString(styles.Heading.Render(r.Name))
	b.WriteString("\n")

	var meta []string
	for _, v := range []*string{r.Category, r.Area} {
		if s := strings.TrimSpace(recipe.Text(v)); s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	if tags := r.TagList(); len(tags) > 0 {
		b.WriteString(styles.InfoText.Render(strings.Join(tags, ", ")))
		b.WriteString("\n")
	}
	if m.showImageInfo {
		b.WriteString(m.labelled("Image", imageSummary(r)))
	}

	switch {
	case d.Loading():
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(m.spinner.View() + " Loading details"))
		b.WriteString("\n")
	case !d.Loaded():
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Details unavailable, press r to retry"))
		b.WriteString("\n")
	}

	if len(r.Ingredients) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Heading.Render("Ingredients"))
		b.WriteString("\n")
		for _, ing := range r.Ingredients {
			line := "• " + ing.Name
			if measure := strings.TrimSpace(ing.MeasurementText()); measure != "" {
				line = "• " + measure + " " + ing.Name
			}
			b.WriteString(wrap.Render(styles.Text.Render(line)))
			b.WriteString("\n")
		}
	}

	if steps := r.Steps(); len(steps) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Heading.Render("Instructions"))
		b.WriteString("\n")
		for _, para := range steps {
			b.WriteString(wrap.Render(styles.Text.Render(para)))
			b.WriteString("\n\n")
		}
	}

	if v := strings.TrimSpace(recipe.Text(r.VideoURL)); v != "" {
		b.WriteString(m.labelled("Video", v))
	}
	if v := strings.TrimSpace(recipe.Text(r.Source)); v != "" {
		b.WriteString(m.labelled("Source", v))
	}
	b.WriteString(m.labelled("ID", r.ID.String()))

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) labelled(label, value string) string {
	styles := m.theme.Styles()
	return styles.FaintText.Width(8).Render(label) + styles.Text.Render(value) + "\n"
}

// imageSummary describes the thumbnail state of r.
func imageSummary(r recipe.Recipe) string {
	if !r.HasImage() {
		return "not loaded"
	}
	info, err := imageload.Describe(r.ImageData)
	if err != nil {
		return fmt.Sprintf("unreadable, %d bytes", len(r.ImageData))
	}
	return info.String()
}
