package mealdb

import (
	"net/url"

	"github.com/schrockblock/recipes/internal/recipe"
)

// DefaultCategory is the list shown when no category is configured.
const DefaultCategory = "Dessert"

// Endpoint is a request path relative to the API base URL.
type Endpoint struct {
	Path  string
	Query url.Values
}

// ListEndpoint lists the recipes of one category.
func ListEndpoint(category string) Endpoint {
	if category == "" {
		category = DefaultCategory
	}
	return Endpoint{Path: "filter.php", Query: url.Values{"c": {category}}}
}

// LookupEndpoint fetches the full record of one recipe.
func LookupEndpoint(id recipe.ID) Endpoint {
	return Endpoint{Path: "lookup.php", Query: url.Values{"i": {string(id)}}}
}

// URL returns the endpoint as a relative reference.
func (e Endpoint) URL() *url.URL {
	return &url.URL{Path: e.Path, RawQuery: e.Query.Encode()}
}

func (e Endpoint) String() string { return e.URL().String() }
