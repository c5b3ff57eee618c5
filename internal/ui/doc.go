// Package ui provides the terminal interface of the recipe browser.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a catalog.Model and forwards
// every message it does not handle itself to it, so list fetches, lookups
// and thumbnail loads all complete through the same Update loop. The UI
// only adds presentation state: selection, scroll offset, focus, theme and
// the search field.
//
// # Package Structure
//
//   - app.go: Model, Options, key handling and Run
//   - header.go: status bar, command bar and search line
//   - list.go: recipe rows and the titled pane frame
//   - detail.go: the open recipe rendered into a viewport
//   - help.go, modal.go: help overlay and alert modal
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: palettes and rendering helpers
//
// # Thumbnail Window
//
// After every change to the selection, the filter or the terminal size the
// model computes the ids of the rows on screen. When that list differs from
// the previous one it sends catalog.WindowChanged, which starts loads for
// rows that have no image yet and cancels loads for rows that scrolled away.
//
// # Event Flow
//
//  1. Init starts the spinner and sends catalog.Appeared
//  2. The list fetch settles and the catalog normalizes the records
//  3. The window sync requests thumbnails for the visible rows
//  4. Enter opens a recipe; the catalog runs its lookup
//  5. Failures surface as a modal that enter or esc dismisses
//
// Theme and image-info toggles are persisted with package prefs.
package ui
