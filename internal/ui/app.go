package ui

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schrockblock/recipes/internal/catalog"
	"github.com/schrockblock/recipes/internal/detail"
	"github.com/schrockblock/recipes/internal/fetch"
	"github.com/schrockblock/recipes/internal/prefs"
	"github.com/schrockblock/recipes/internal/recipe"
)

// focus is the pane receiving keys.
type focus int

const (
	focusList focus = iota
	focusSearch
	focusDetail
)

// Rows taken by the header, the command bar and the search line.
const chromeHeight = 3

// Options configures the UI.
type Options struct {
	Context       context.Context
	Catalog       catalog.Options
	ThemeName     string
	ShowImageInfo bool
	PrefsPath     string
	Logger        *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	logger    *slog.Logger
	prefsPath string
	keys      keyMap

	// Data state
	catalog catalog.Model

	// UI state
	theme         Theme
	width         int
	height        int
	ready         bool
	focus         focus
	showHelp      bool
	showImageInfo bool

	// List state
	selected int
	offset   int
	window   []recipe.ID

	// Components
	search  textinput.Model
	spinner spinner.Model
	detail  viewport.Model
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Catalog.Env.Context == nil {
		opts.Catalog.Env.Context = ctx
	}
	if opts.Catalog.Env.Logger == nil {
		opts.Catalog.Env.Logger = logger
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search recipes"
	search.CharLimit = 120

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
	)

	return Model{
		ctx:           ctx,
		logger:        logger,
		prefsPath:     prefsPath,
		keys:          DefaultKeyMap(),
		catalog:       catalog.New(opts.Catalog),
		theme:         theme,
		showImageInfo: opts.ShowImageInfo,
		search:        search,
		spinner:       spin,
		detail:        viewport.New(0, 0),
	}
}

// Catalog exposes the catalog state.
func (m Model) Catalog() catalog.Model { return m.catalog }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetch.Send(catalog.Appeared{}))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetail()
		cmd := m.sync()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Everything else belongs to the catalog or to the search cursor.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	cmds = append(cmds, cmd)
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if alert := m.activeAlert(); alert != nil {
		return m.renderAlert(alert)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.activeAlert() != nil {
		if key.Matches(msg, m.keys.Confirm, m.keys.Back) {
			return m.dismissAlert()
		}
		return m, nil
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshDetail()
		return m, nil
	case key.Matches(msg, m.keys.ImageInfo):
		m.showImageInfo = !m.showImageInfo
		m.savePrefs()
		m.refreshDetail()
		return m, nil
	}

	if m.focus == focusDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keyboard input for the recipe list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.catalog.Visible().Len()
	page := max(m.listHeight()-1, 1)

	switch {
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		return m.updateCatalog(catalog.RefreshRequested{})
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			return m.setQuery("")
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		r, ok := m.selectedRecipe()
		if !ok {
			return m, nil
		}
		m.focus = focusDetail
		next, cmd := m.updateCatalog(catalog.ItemSelected{ID: r.ID})
		nm := next.(Model)
		nm.refreshDetail()
		nm.detail.GotoTop()
		return nm, cmd
	}

	if count == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected = min(m.selected+1, count-1)
	case key.Matches(msg, m.keys.Up):
		m.selected = max(m.selected-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selected = min(m.selected+page, count-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selected = max(m.selected-page, 0)
	default:
		return m, nil
	}
	cmd := m.sync()
	return m, cmd
}

// handleSearchKey feeds the search field and filters as the query changes.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.focus = focusList
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.focus = focusList
		return m.setQuery("")
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	next, queryCmd := m.applyQuery(m.search.Value())
	return next, tea.Batch(cmd, queryCmd)
}

// handleDetailKey processes keyboard input while a recipe is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = focusList
		return m.updateCatalog(catalog.DetailClosed{})
	case key.Matches(msg, m.keys.Refresh):
		return m.updateCatalog(catalog.DetailMsg{Msg: detail.RefreshRequested{}})
	case key.Matches(msg, m.keys.Top):
		m.detail.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detail.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// setQuery replaces the search text and filters the list.
func (m Model) setQuery(q string) (tea.Model, tea.Cmd) {
	m.search.SetValue(q)
	return m.applyQuery(q)
}

func (m Model) applyQuery(q string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(catalog.QueryChanged{Query: q})
	m.selected = 0
	m.offset = 0
	syncCmd := m.sync()
	return m, tea.Batch(cmd, syncCmd)
}

// updateCatalog sends msg to the catalog and resynchronizes the view.
func (m Model) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	syncCmd := m.sync()
	return m, tea.Batch(cmd, syncCmd)
}

func (m Model) dismissAlert() (tea.Model, tea.Cmd) {
	if d, ok := m.catalog.Detail(); ok && d.Alert() != nil {
		return m.updateCatalog(catalog.DetailMsg{Msg: detail.AlertDismissed{}})
	}
	return m.updateCatalog(catalog.AlertDismissed{})
}

// activeAlert returns the alert to show, the open detail's first.
func (m Model) activeAlert() *fetch.Alert {
	if d, ok := m.catalog.Detail(); ok && d.Alert() != nil {
		return d.Alert()
	}
	return m.catalog.Alert()
}

func (m Model) selectedRecipe() (recipe.Recipe, bool) {
	visible := m.catalog.Visible()
	if m.selected < 0 || m.selected >= visible.Len() {
		return recipe.Recipe{}, false
	}
	return visible.At(m.selected), true
}

// sync clamps the selection, scrolls it into view and tells the catalog
// which recipes occupy the list rows when that set changed.
func (m *Model) sync() tea.Cmd {
	count := m.catalog.Visible().Len()
	height := m.listHeight()

	m.selected = min(max(m.selected, 0), max(count-1, 0))
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if height > 0 && m.selected >= m.offset+height {
		m.offset = m.selected - height + 1
	}
	m.offset = min(m.offset, max(count-height, 0))

	m.refreshDetail()

	if !m.ready {
		return nil
	}
	ids := m.visibleIDs()
	if slices.Equal(ids, m.window) {
		return nil
	}
	m.window = ids
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(catalog.WindowChanged{IDs: ids})
	return cmd
}

// visibleIDs lists the recipes on screen, top to bottom.
func (m Model) visibleIDs() []recipe.ID {
	visible := m.catalog.Visible()
	end := min(m.offset+m.listHeight(), visible.Len())
	ids := make([]recipe.ID, 0, max(end-m.offset, 0))
	for i := m.offset; i < end; i++ {
		ids = append(ids, visible.At(i).ID)
	}
	return ids
}

// listHeight is the number of recipe rows that fit in the list pane.
func (m Model) listHeight() int {
	return max(m.height-chromeHeight-2, 0)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowImage: m.showImageInfo}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
