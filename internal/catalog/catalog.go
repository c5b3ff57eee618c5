package catalog

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schrockblock/recipes/internal/detail"
	"github.com/schrockblock/recipes/internal/fetch"
	"github.com/schrockblock/recipes/internal/mealdb"
	"github.com/schrockblock/recipes/internal/recipe"
)

// ImageLoader fetches thumbnail bytes.
type ImageLoader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// Options wires a Model to its collaborators.
type Options struct {
	Env      fetch.Env
	Images   ImageLoader
	Category string
}

// Appeared is sent when the list becomes visible.
type Appeared struct{}

// RefreshRequested asks for the list to be fetched again.
type RefreshRequested struct{}

// AlertDismissed clears the list alert.
type AlertDismissed struct{}

// QueryChanged carries the new search text.
type QueryChanged struct{ Query string }

// ItemSelected opens the detail of a recipe.
type ItemSelected struct{ ID recipe.ID }

// DetailClosed closes the open detail.
type DetailClosed struct{}

// DetailMsg is forwarded to the open detail.
type DetailMsg struct{ Msg tea.Msg }

// WindowChanged lists the ids on screen, one per slot, top to bottom.
type WindowChanged struct{ IDs []recipe.ID }

// ImageLoaded reports the bytes for a slot's recipe.
type ImageLoaded struct {
	Slot  int
	ID    recipe.ID
	Token uint64
	Data  []byte
}

// ImageFailed reports a failed thumbnail load.
type ImageFailed struct {
	Slot  int
	ID    recipe.ID
	Token uint64
	Err   error
}

type listMsg struct{ msg tea.Msg }

func wrapList(msg tea.Msg) tea.Msg { return listMsg{msg} }

func wrapDetail(msg tea.Msg) tea.Msg { return DetailMsg{msg} }

type slot struct {
	id     recipe.ID
	url    string
	token  uint64
	cancel context.CancelFunc
}

// Model is the catalog state.
type Model struct {
	all     recipe.Collection
	visible recipe.Collection
	query   string

	list   fetch.Models[mealdb.Wrapper, recipe.RawRecord]
	detail *detail.Model

	slots     []slot
	nextToken uint64

	opts Options
}

// New returns an empty catalog for opts.Category.
func New(opts Options) Model {
	if opts.Category == "" {
		opts.Category = mealdb.DefaultCategory
	}
	if opts.Env.Context == nil {
		opts.Env.Context = context.Background()
	}
	if opts.Env.Logger == nil {
		opts.Env.Logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		list: fetch.NewRecords(opts.Env, mealdb.ListEndpoint(opts.Category)),
		opts: opts,
	}
}

// All returns the full normalized collection.
func (m Model) All() recipe.Collection { return m.all }

// Visible returns the filtered view.
func (m Model) Visible() recipe.Collection { return m.visible }

func (m Model) Query() string { return m.query }

func (m Model) Category() string { return m.opts.Category }

// Loading reports whether the list fetch is in flight.
func (m Model) Loading() bool { return m.list.InFlight() }

// List exposes the list fetch state.
func (m Model) List() fetch.Models[mealdb.Wrapper, recipe.RawRecord] { return m.list }

// Alert returns the list alert, or nil.
func (m Model) Alert() *fetch.Alert { return m.list.Alert() }

// Detail returns the open detail, if any.
func (m Model) Detail() (detail.Model, bool) {
	if m.detail == nil {
		return detail.Model{}, false
	}
	return *m.detail, true
}

// Update advances the catalog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Appeared:
		if m.all.Len() > 0 {
			return m, nil
		}
		return m.updateList(fetch.Refresh{})

	case RefreshRequested:
		return m.updateList(fetch.Refresh{})

	case AlertDismissed:
		return m.updateList(fetch.DismissAlert{})

	case listMsg:
		if up, ok := msg.msg.(fetch.Updated[recipe.RawRecord]); ok {
			m.applyRecords(up.Items)
			// A refresh may change a shown recipe's image URL.
			return m.showWindow(m.windowIDs())
		}
		return m.updateList(msg.msg)

	case QueryChanged:
		m.query = msg.Query
		m.visible = recipe.Filter(m.query, m.all)
		return m, nil

	case ItemSelected:
		r, ok := m.all.Get(msg.ID)
		if !ok {
			return m, nil
		}
		d := detail.New(r, m.opts.Env)
		m.detail = &d
		return m.updateDetail(detail.Appeared{})

	case DetailMsg:
		return m.updateDetail(msg.Msg)

	case DetailClosed:
		m.detail = nil
		return m, nil

	case WindowChanged:
		return m.showWindow(msg.IDs)

	case ImageLoaded:
		if !m.current(msg.Slot, msg.ID, msg.Token) {
			m.opts.Env.Logger.Debug("stale image dropped", "slot", msg.Slot, "id", msg.ID)
			return m, nil
		}
		m.setImage(msg.ID, msg.Data)
		return m, nil

	case ImageFailed:
		m.opts.Env.Logger.Debug("image load failed", "id", msg.ID, "error", msg.Err)
		return m, nil
	}
	return m, nil
}

func (m Model) updateList(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, fetch.Map(cmd, wrapList)
}

func (m Model) updateDetail(msg tea.Msg) (Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	d, cmd := m.detail.Update(msg)
	m.detail = &d
	return m, fetch.Map(cmd, wrapDetail)
}

func (m *Model) applyRecords(raws []recipe.RawRecord) {
	next := recipe.Normalize(raws)
	for _, r := range next.Recipes() {
		if prev, ok := m.all.Get(r.ID); ok && prev.HasImage() && prev.ImageURL == r.ImageURL {
			next = next.WithImage(r.ID, prev.ImageData)
		}
	}
	m.opts.Env.Logger.Debug("catalog updated",
		"category", m.opts.Category,
		"received", len(raws),
		"kept", next.Len(),
		"dropped", len(raws)-next.Len(),
	)
	m.all = next
	m.visible = recipe.Filter(m.query, m.all)
}

func (m *Model) setImage(id recipe.ID, data []byte) {
	m.all = m.all.WithImage(id, data)
	m.visible = m.visible.WithImage(id, data)
	if m.detail != nil && m.detail.ID() == id {
		d := m.detail.WithImage(data)
		m.detail = &d
	}
}
