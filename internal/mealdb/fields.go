package mealdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxIngredients is the number of positional ingredient slots in a record.
const MaxIngredients = 20

// Fields is one undecoded record keyed by wire name.
type Fields map[string]json.RawMessage

// String reads key as a string. Absent keys, null and non-string values all
// read as nil.
func (f Fields) String(key string) *string {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

// NonBlank reads key like String but also treats blank strings as absent.
func (f Fields) NonBlank(key string) *string {
	s := f.String(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

type slot struct {
	ingredient string
	measure    string
}

var ingredientSlots = buildSlots(MaxIngredients)

func buildSlots(n int) []slot {
	slots := make([]slot, n)
	for i := range slots {
		slots[i] = slot{
			ingredient: fmt.Sprintf("strIngredient%d", i+1),
			measure:    fmt.Sprintf("strMeasure%d", i+1),
		}
	}
	return slots
}
