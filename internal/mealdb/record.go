package mealdb

import (
	"encoding/json"
	"fmt"

	"github.com/schrockblock/recipes/internal/recipe"
)

const (
	keyID           = "idMeal"
	keyName         = "strMeal"
	keyThumb        = "strMealThumb"
	keyInstructions = "strInstructions"
	keyYoutube      = "strYoutube"
	keyCategory     = "strCategory"
	keyArea         = "strArea"
	keyTags         = "strTags"
	keySource       = "strSource"
)

// DecodeError reports a payload that is not well-formed JSON of the expected
// shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode meals payload: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Wrapper is the envelope returned by both endpoints. Meals is nil when the
// API answered with null or omitted the key.
type Wrapper struct {
	Meals []recipe.RawRecord
}

// UnwrapMeals extracts the record list, reporting false when it is absent.
func UnwrapMeals(w Wrapper) ([]recipe.RawRecord, bool) {
	return w.Meals, w.Meals != nil
}

// Parser turns wire records into RawRecords.
type Parser struct {
	newID recipe.IDGenerator
}

// NewParser returns a Parser that assigns ingredient ids with newID. A nil
// generator falls back to random UUIDs.
func NewParser(newID recipe.IDGenerator) *Parser {
	if newID == nil {
		newID = recipe.DefaultIDGenerator()
	}
	return &Parser{newID: newID}
}

// ParseRecord reads one record. It never fails.
func (p *Parser) ParseRecord(f Fields) recipe.RawRecord {
	return recipe.RawRecord{
		ID:           f.String(keyID),
		Name:         f.String(keyName),
		ImageURL:     f.String(keyThumb),
		Instructions: f.String(keyInstructions),
		VideoURL:     f.String(keyYoutube),
		Ingredients:  p.parseIngredients(f),
		Category:     f.String(keyCategory),
		Area:         f.String(keyArea),
		Tags:         f.String(keyTags),
		Source:       f.String(keySource),
	}
}

// parseIngredients keeps the slots with a non-blank ingredient name. A blank
// measure, including "", reads as absent.
func (p *Parser) parseIngredients(f Fields) []recipe.Ingredient {
	var out []recipe.Ingredient
	for _, s := range ingredientSlots {
		if f.NonBlank(s.ingredient) == nil {
			continue
		}
		out = append(out, recipe.Ingredient{
			ID:          p.newID(),
			Name:        *f.String(s.ingredient),
			Measurement: f.NonBlank(s.measure),
		})
	}
	return out
}

// DecodeRecord parses a single JSON object.
func (p *Parser) DecodeRecord(data []byte) (recipe.RawRecord, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return recipe.RawRecord{}, &DecodeError{Err: err}
	}
	return p.ParseRecord(f), nil
}

// DecodeWrapper parses a {"meals": [...]} envelope.
func (p *Parser) DecodeWrapper(data []byte) (Wrapper, error) {
	var envelope struct {
		Meals []Fields `json:"meals"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Wrapper{}, &DecodeError{Err: err}
	}
	if envelope.Meals == nil {
		return Wrapper{}, nil
	}
	meals := make([]recipe.RawRecord, len(envelope.Meals))
	for i, f := range envelope.Meals {
		meals[i] = p.ParseRecord(f)
	}
	return Wrapper{Meals: meals}, nil
}
