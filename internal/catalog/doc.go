// Package catalog owns the browsing state: the full collection, the filtered
// view, the search query, thumbnail loads and the opened detail.
//
// # Overview
//
// Model follows the Bubble Tea message loop. Everything that happens to the
// catalog arrives as a message:
//
//   - Appeared: the list became visible; fetch only if nothing is loaded
//   - RefreshRequested: fetch the category list again
//   - QueryChanged: recompute the visible view from the full collection
//   - ItemSelected / DetailClosed: open or close a detail
//   - WindowChanged: the set of rows on screen changed
//   - ImageLoaded / ImageFailed: a thumbnail load finished
//
// The list fetch is a fetch.Models child. Its messages are wrapped before they
// leave the catalog and unwrapped when they come back, so the child never sees
// the parent's state. The detail is a detail.Model child routed the same way.
//
// # Collections
//
// When the list fetch emits items they are normalized with recipe.Normalize
// and replace the full collection in one step. The visible view is then
// recomputed from the current query. Thumbnails already loaded for ids that
// survive the refresh are carried over.
//
// # Thumbnails
//
// Each on-screen row is a slot. A slot starts one load for its recipe if the
// recipe has no image yet. When a slot is reassigned to another id its
// previous load is cancelled and a new generation token issued; a result that
// arrives with a stale token is dropped. Failed loads are not retried.
package catalog
