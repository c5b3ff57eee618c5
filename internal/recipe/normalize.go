package recipe

import (
	"slices"
	"strings"
)

// Normalize promotes raw records and turns the survivors into a sorted,
// id-unique collection. Records that cannot be promoted, or whose id, name or
// image URL is blank, are dropped.
func Normalize(raws []RawRecord) Collection {
	promoted := make([]Recipe, 0, len(raws))
	for _, raw := range raws {
		if r, ok := Promote(raw); ok {
			promoted = append(promoted, r)
		}
	}
	return NormalizeRecipes(promoted)
}

// NormalizeRecipes applies the blank-field filter, the name sort and id
// deduplication to recipes that are already promoted.
func NormalizeRecipes(recipes []Recipe) Collection {
	kept := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if blank(string(r.ID)) || blank(r.Name) || blank(r.ImageURL) {
			continue
		}
		kept = append(kept, r)
	}
	slices.SortStableFunc(kept, func(a, b Recipe) int {
		return strings.Compare(a.Name, b.Name)
	})
	return NewCollection(kept)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
