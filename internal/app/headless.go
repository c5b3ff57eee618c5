package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/schrockblock/recipes/internal/catalog"
	"github.com/schrockblock/recipes/internal/detail"
	"github.com/schrockblock/recipes/internal/fetch"
	"github.com/schrockblock/recipes/internal/imageload"
	"github.com/schrockblock/recipes/internal/recipe"
)

// ErrNotFound is returned by Show when the lookup yields no displayable
// recipe.
var ErrNotFound = errors.New("recipe not found")

// AlertError carries a classified request failure.
type AlertError struct {
	Alert fetch.Alert
}

func (e *AlertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Alert.Title, e.Alert.Message)
}

// List fetches the configured category without a terminal and returns the
// recipes matching query.
func (e *Env) List(ctx context.Context, query string) (recipe.Collection, error) {
	m := catalog.New(catalog.Options{Env: e.Fetch(ctx), Category: e.Category})
	m = fetch.Drive(m, catalog.Model.Update, catalog.Appeared{})

	// A category with no recipes comes back as "meals": null.
	if errors.Is(m.List().LastDecodeErr(), fetch.ErrNoItems) {
		return recipe.Collection{}, nil
	}
	if err := settledErr(m.List().Err(), m.Alert(), m.List().LastDecodeErr()); err != nil {
		return recipe.Collection{}, err
	}
	if query != "" {
		m = fetch.Drive(m, catalog.Model.Update, catalog.QueryChanged{Query: query})
	}
	return m.Visible(), nil
}

// Show looks up a single recipe by id.
func (e *Env) Show(ctx context.Context, id recipe.ID) (recipe.Recipe, error) {
	m := detail.New(recipe.Recipe{ID: id}, e.Fetch(ctx))
	m = fetch.Drive(m, detail.Model.Update, detail.Appeared{})

	lookup := m.Lookup()
	if errors.Is(lookup.LastDecodeErr(), fetch.ErrNoItems) {
		return recipe.Recipe{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	if err := settledErr(lookup.Err(), m.Alert(), lookup.LastDecodeErr()); err != nil {
		return recipe.Recipe{}, err
	}
	if !m.Loaded() {
		return recipe.Recipe{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	return m.Recipe(), nil
}

// DescribeImage downloads the thumbnail of r and reads its header.
func (e *Env) DescribeImage(ctx context.Context, r recipe.Recipe) (imageload.Info, error) {
	data, err := e.Images.Load(ctx, r.ImageURL)
	if err != nil {
		return imageload.Info{}, fmt.Errorf("load image: %w", err)
	}
	return imageload.Describe(data)
}

func settledErr(transport error, alert *fetch.Alert, decode error) error {
	switch {
	case alert != nil:
		return &AlertError{Alert: *alert}
	case transport != nil:
		return fmt.Errorf("fetch: %w", transport)
	case decode != nil:
		return fmt.Errorf("fetch: %w", decode)
	}
	return nil
}
