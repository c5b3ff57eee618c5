// Package recipe holds the domain model of the catalog and the pure functions
// that turn raw upstream records into the collection the UI displays.
//
// # Overview
//
// Data moves through three shapes:
//
//   - RawRecord: everything the wire layer could read, every field optional
//   - Recipe: a promoted record that is guaranteed to have an id, name and image URL
//   - Collection: an ordered, id-unique, immutable set of recipes
//
// Promote decides whether a RawRecord is displayable. Normalize runs the whole
// pipeline (promote, drop blank fields, sort by name, dedupe by id) and is
// idempotent on its own output. Filter narrows a collection with a word-prefix
// search over recipe names.
//
// # Ordering
//
// Names are compared byte-wise, which for valid UTF-8 is code-point order.
// This is not locale-aware collation: "Zucchini" sorts before "apple". The sort
// is stable, so records with equal names keep their input order.
//
// # Duplicate ids
//
// The upstream API should never repeat an id within one response. When it does,
// the later entry in sorted order wins and the earlier one is dropped, so the
// collection stays sorted by name. See NewCollection.
//
// # Search
//
// A query matches a name when every word of the query is a case-insensitive
// prefix of at least one word of the name. Words are maximal runs of letters,
// digits and combining marks. Case folding uses golang.org/x/text/cases.
//
//	recipe.MatchesWordPrefixes("app crum", "Apple & Blackberry Crumble") // true
//	recipe.MatchesWordPrefixes("berry", "Apple & Blackberry Crumble")    // false
//
// An empty query, or a query made only of delimiters, returns the collection
// unchanged.
//
// # Concurrency
//
// All values in this package are immutable once built. Collection methods that
// look like mutations return a new Collection and leave the receiver untouched,
// so collections can be shared freely between the state machine and views.
package recipe
