package catalog

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schrockblock/recipes/internal/recipe"
)

// showWindow reassigns slots to ids and starts loads for slots whose recipe
// or image URL changed and that have no image yet.
func (m Model) showWindow(ids []recipe.ID) (Model, tea.Cmd) {
	next := make([]slot, len(ids))
	var cmds []tea.Cmd
	for i, id := range ids {
		r, ok := m.all.Get(id)
		if i < len(m.slots) && m.slots[i].id == id && m.slots[i].url == r.ImageURL {
			next[i] = m.slots[i]
			continue
		}
		if i < len(m.slots) {
			m.slots[i].release()
		}
		next[i] = slot{id: id, url: r.ImageURL}

		if !ok || r.HasImage() || m.opts.Images == nil {
			continue
		}
		m.nextToken++
		ctx, cancel := context.WithCancel(m.opts.Env.Context)
		next[i] = slot{id: id, url: r.ImageURL, token: m.nextToken, cancel: cancel}
		cmds = append(cmds, loadImage(ctx, cancel, m.opts.Images, i, id, m.nextToken, r.ImageURL))
	}
	for i := len(ids); i < len(m.slots); i++ {
		m.slots[i].release()
	}
	m.slots = next
	return m, tea.Batch(cmds...)
}

func (m Model) windowIDs() []recipe.ID {
	ids := make([]recipe.ID, len(m.slots))
	for i, s := range m.slots {
		ids[i] = s.id
	}
	return ids
}

func (m Model) current(slot int, id recipe.ID, token uint64) bool {
	if slot < 0 || slot >= len(m.slots) {
		return false
	}
	s := m.slots[slot]
	return s.id == id && s.token == token && token != 0
}

func (s slot) release() {
	if s.cancel != nil {
		s.cancel()
	}
}

func loadImage(ctx context.Context, cancel context.CancelFunc, images ImageLoader, slot int, id recipe.ID, token uint64, url string) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		data, err := images.Load(ctx, url)
		if err != nil {
			return ImageFailed{Slot: slot, ID: id, Token: token, Err: err}
		}
		return ImageLoaded{Slot: slot, ID: id, Token: token, Data: data}
	}
}
