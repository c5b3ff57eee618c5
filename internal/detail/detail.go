// Package detail holds the state of a single opened recipe.
//
// A detail starts from the recipe shown in the list and refreshes it from the
// lookup endpoint, which carries instructions and ingredients the list
// endpoint omits. The thumbnail bytes already loaded by the list are kept
// across the refresh.
package detail

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schrockblock/recipes/internal/fetch"
	"github.com/schrockblock/recipes/internal/mealdb"
	"github.com/schrockblock/recipes/internal/recipe"
)

// Appeared is sent when the detail becomes visible.
type Appeared struct{}

// RefreshRequested re-runs the lookup.
type RefreshRequested struct{}

// AlertDismissed clears the lookup alert.
type AlertDismissed struct{}

type lookupMsg struct{ msg tea.Msg }

func wrapLookup(msg tea.Msg) tea.Msg { return lookupMsg{msg} }

// Model is the state of one opened recipe.
type Model struct {
	recipe recipe.Recipe
	lookup fetch.Models[mealdb.Wrapper, recipe.RawRecord]
	loaded bool
	env    fetch.Env
}

// New opens r.
func New(r recipe.Recipe, env fetch.Env) Model {
	return Model{
		recipe: r,
		lookup: fetch.NewRecords(env, mealdb.LookupEndpoint(r.ID)),
		env:    env,
	}
}

func (m Model) Recipe() recipe.Recipe { return m.recipe }

func (m Model) ID() recipe.ID { return m.recipe.ID }

// Loading reports whether the lookup is in flight.
func (m Model) Loading() bool { return m.lookup.InFlight() }

// Loaded reports whether the lookup has replaced the list record.
func (m Model) Loaded() bool { return m.loaded }

// Alert returns the lookup alert, or nil.
func (m Model) Alert() *fetch.Alert { return m.lookup.Alert() }

// Lookup exposes the underlying fetch state.
func (m Model) Lookup() fetch.Models[mealdb.Wrapper, recipe.RawRecord] { return m.lookup }

// WithImage attaches thumbnail bytes.
func (m Model) WithImage(data []byte) Model {
	m.recipe.ImageData = data
	return m
}

// Update advances the detail state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Appeared, RefreshRequested:
		return m.updateLookup(fetch.Refresh{})
	case AlertDismissed:
		return m.updateLookup(fetch.DismissAlert{})
	case lookupMsg:
		if up, ok := msg.msg.(fetch.Updated[recipe.RawRecord]); ok {
			m.apply(up.Items)
			return m, nil
		}
		return m.updateLookup(msg.msg)
	}
	return m, nil
}

func (m Model) updateLookup(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.lookup, cmd = m.lookup.Update(msg)
	return m, fetch.Map(cmd, wrapLookup)
}

func (m *Model) apply(items []recipe.RawRecord) {
	if len(items) == 0 {
		return
	}
	r, ok := recipe.Promote(items[0])
	if !ok {
		m.logger().Debug("lookup record not displayable", "id", m.recipe.ID)
		return
	}
	r.ImageData = m.recipe.ImageData
	m.recipe = r
	m.loaded = true
}

func (m Model) logger() *slog.Logger {
	if m.env.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.env.Logger
}
