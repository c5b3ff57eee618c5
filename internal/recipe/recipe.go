package recipe

import (
	"strings"

	"github.com/google/uuid"
)

// ID identifies a recipe as assigned by the upstream catalog.
type ID string

func (id ID) String() string { return string(id) }

// IDGenerator produces synthetic identifiers for ingredients.
type IDGenerator func() uuid.UUID

// DefaultIDGenerator returns random version 4 UUIDs.
func DefaultIDGenerator() IDGenerator { return uuid.New }

// Ingredient is one line of a recipe's ingredient list.
//
// ID is synthetic. It is assigned when the record is parsed and is only
// stable for the lifetime of that parsed value.
type Ingredient struct {
	ID          uuid.UUID
	Name        string
	Measurement *string
}

// MeasurementText returns the measurement or an empty string.
func (i Ingredient) MeasurementText() string { return Text(i.Measurement) }

// RawRecord is a record as read from the wire. Any field may be absent.
type RawRecord struct {
	ID           *string
	Name         *string
	ImageURL     *string
	Instructions *string
	VideoURL     *string
	Ingredients  []Ingredient

	Category *string
	Area     *string
	Tags     *string
	Source   *string
}

// Recipe is a record that can be displayed: it always carries an id, a name
// and an image URL. ImageData is filled lazily once the thumbnail is loaded.
type Recipe struct {
	ID           ID
	Name         string
	ImageURL     string
	ImageData    []byte
	Instructions *string
	VideoURL     *string
	Ingredients  []Ingredient

	Category *string
	Area     *string
	Tags     *string
	Source   *string
}

// HasImage reports whether the thumbnail bytes have been loaded.
func (r Recipe) HasImage() bool { return r.ImageData != nil }

// Promote converts a RawRecord into a Recipe. It reports false when the id,
// name or image URL is missing; other fields pass through unchanged.
func Promote(raw RawRecord) (Recipe, bool) {
	if raw.ID == nil || raw.Name == nil || raw.ImageURL == nil {
		return Recipe{}, false
	}
	return Recipe{
		ID:           ID(*raw.ID),
		Name:         *raw.Name,
		ImageURL:     *raw.ImageURL,
		Instructions: raw.Instructions,
		VideoURL:     raw.VideoURL,
		Ingredients:  raw.Ingredients,
		Category:     raw.Category,
		Area:         raw.Area,
		Tags:         raw.Tags,
		Source:       raw.Source,
	}, true
}

// TagList splits the comma separated tags, dropping blanks.
func (r Recipe) TagList() []string {
	var tags []string
	for _, t := range strings.Split(Text(r.Tags), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Steps splits the instructions on line breaks, dropping blank lines.
func (r Recipe) Steps() []string {
	text := strings.ReplaceAll(Text(r.Instructions), "\r\n", "\n")
	var steps []string
	for _, p := range strings.Split(text, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			steps = append(steps, p)
		}
	}
	return steps
}

// Text dereferences an optional string, returning "" when absent.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }
