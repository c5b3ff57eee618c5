package fetch

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Map wraps every message produced by cmd with wrap. Batches are mapped
// element by element so a parent can route a child's commands back to it.
func Map(cmd tea.Cmd, wrap func(tea.Msg) tea.Msg) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			mapped := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				if c != nil {
					mapped = append(mapped, Map(c, wrap))
				}
			}
			return mapped
		default:
			return wrap(msg)
		}
	}
}

// Send returns a command that yields msg.
func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Run executes cmd synchronously and returns the messages it produced,
// flattening batches. Nil messages are dropped.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Run(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Drive feeds msg to update and keeps feeding the messages its commands
// produce until none are left. It runs without a terminal, for headless
// commands and tests.
func Drive[S any](state S, update func(S, tea.Msg) (S, tea.Cmd), msg tea.Msg) S {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		var cmd tea.Cmd
		state, cmd = update(state, next)
		queue = append(queue, Run(cmd)...)
	}
	return state
}
