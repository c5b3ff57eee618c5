// Package mealdb reads TheMealDB JSON API and turns its records into
// recipe.RawRecord values.
//
// # Overview
//
// The package has two halves:
//
//   - record.go and fields.go: tolerant decoding of the wire format
//   - client.go and endpoint.go: the HTTP Performer that fetches raw bytes
//
// Decoding and fetching are kept apart so the state machines in package fetch
// can inject a fake Performer in tests and still exercise the real decoder.
//
// # Wire Format
//
// Both endpoints return the same wrapper:
//
//	{"meals": [ {...}, {...} ]}
//	{"meals": null}
//
// A record is a flat JSON object of string fields:
//
//   - idMeal, strMeal, strMealThumb: required for display
//   - strInstructions, strYoutube: optional detail fields
//   - strCategory, strArea, strTags, strSource: optional metadata
//   - strIngredient1..20 and strMeasure1..20: positional ingredient slots
//
// The API is loose about types. Missing data appears as null, as an empty
// string, or as an absent key, and nothing guarantees the value is a string at
// all. Every field is read on its own: a value that is not a JSON string is
// treated as absent and never fails the record. Decoding fails only when the
// payload is not well-formed JSON, reported as *DecodeError.
//
// # Ingredient Slots
//
// Slots are described by a static table of (ingredient key, measure key)
// pairs iterated once in order. A slot produces an Ingredient when its
// ingredient name is non-blank after trimming. A missing or empty measure
// leaves Measurement nil. Every Ingredient receives a fresh id from the
// parser's recipe.IDGenerator. A record with no surviving slots has nil
// Ingredients.
//
// # Endpoints
//
//   - GET filter.php?c=<category>: the list of recipes in one category
//   - GET lookup.php?i=<id>: one recipe with full detail
//
// Paths are resolved against the configured base URL, which defaults to
// https://www.themealdb.com/api/json/v1/1/.
//
// # Client
//
//	client, err := mealdb.NewClient(cfg.APIBaseURL,
//		mealdb.WithTimeout(10*time.Second),
//		mealdb.WithRateLimit(4),
//	)
//	body, err := client.Perform(ctx, mealdb.ListEndpoint("Dessert"))
//
// Every failure returned by Perform is a *neterr.TransportError whose Code is
// either a negative transport code or the HTTP status of the response, so
// callers can classify it with neterr.Classify.
//
// Requests are paced by a token bucket (golang.org/x/time/rate) because the
// public API throttles bursty clients. The Client is safe for concurrent use.
package mealdb
