// Package config loads the recipe browser configuration file.
//
// # Overview
//
// Configuration is optional. Load reads a TOML file and overlays its values on
// Default; a missing file is not an error.
//
// # Resolution
//
//  1. An explicit path (the --config flag) is used as given
//  2. Otherwise ~/.config/recipes/config.toml
//  3. Missing file: defaults
//  4. Missing or blank fields: defaults for those fields
//
// # Fields
//
//	api_base_url = "https://www.themealdb.com/api/json/v1/1/"
//	category = "Dessert"
//	request_timeout_seconds = 10
//	requests_per_second = 4
//	image_cache_entries = 256
//	log_file = "~/.local/state/recipes/recipes.log"
//
// requests_per_second = 0 disables request pacing. Numeric fields that are out
// of range are rejected rather than silently replaced.
//
// # Path Expansion
//
// ExpandPath turns "~/x" into an absolute path under the home directory and
// makes relative paths absolute. It is applied to the config location and to
// log_file, and is shared with package prefs.
package config
