// Package app is the composition root of the recipe browser.
//
// # Overview
//
// NewEnv reads the configuration and builds every long-lived collaborator
// once: the TheMealDB client, the thumbnail loader, the id generator for
// ingredients and the logger. The resulting Env is passed explicitly to the
// catalog, detail and fetch constructors; nothing is held in package state.
//
// # Entry Points
//
//   - Run: loads preferences and starts the Bubble Tea browser (blocks)
//   - Env.List: fetches and filters the category without a terminal
//   - Env.Show: looks up one recipe without a terminal
//
// The headless entry points drive the same state machines as the browser
// with fetch.Drive, so both surfaces share normalization, decoding and error
// classification.
//
// # Logging
//
// The browser owns the terminal, so its log goes to the configured log file
// (default ~/.local/state/recipes/recipes.log). Headless commands pass
// os.Stderr as Options.LogOutput. Verbose selects debug level, which traces
// request URLs and normalization counts.
//
// # Errors
//
// Classified request failures come back as *AlertError carrying the same
// title and message the browser shows in its modal. Unclassified transport
// failures and unreadable responses are wrapped with "fetch: %w". A lookup
// with no usable record yields ErrNotFound.
package app
