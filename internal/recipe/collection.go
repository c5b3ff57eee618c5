package recipe

// Collection is an ordered set of recipes with unique ids.
//
// The zero value is an empty collection. Collections are never modified in
// place; WithImage, Replace and Filter return new values.
type Collection struct {
	items []Recipe
	index map[ID]int
}

// NewCollection builds a collection from recipes in order.
//
// A repeated id keeps only its last occurrence, at that occurrence's
// position, so a sorted input stays sorted.
func NewCollection(recipes []Recipe) Collection {
	last := make(map[ID]int, len(recipes))
	for i, r := range recipes {
		last[r.ID] = i
	}
	c := Collection{
		items: make([]Recipe, 0, len(last)),
		index: make(map[ID]int, len(last)),
	}
	for i, r := range recipes {
		if last[r.ID] != i {
			continue
		}
		c.index[r.ID] = len(c.items)
		c.items = append(c.items, r)
	}
	return c
}

// Len returns the number of recipes.
func (c Collection) Len() int { return len(c.items) }

// At returns the recipe at position i.
func (c Collection) At(i int) Recipe { return c.items[i] }

// Get looks a recipe up by id.
func (c Collection) Get(id ID) (Recipe, bool) {
	i, ok := c.index[id]
	if !ok {
		return Recipe{}, false
	}
	return c.items[i], true
}

// Index returns the position of id, or -1.
func (c Collection) Index(id ID) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Recipes returns a copy of the elements in order.
func (c Collection) Recipes() []Recipe {
	out := make([]Recipe, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the ids in order.
func (c Collection) IDs() []ID {
	out := make([]ID, len(c.items))
	for i, r := range c.items {
		out[i] = r.ID
	}
	return out
}

// Replace swaps in r for the element with the same id. Unknown ids leave the
// collection unchanged.
func (c Collection) Replace(r Recipe) Collection {
	i, ok := c.index[r.ID]
	if !ok {
		return c
	}
	items := make([]Recipe, len(c.items))
	copy(items, c.items)
	items[i] = r
	return Collection{items: items, index: c.index}
}

// WithImage attaches thumbnail bytes to the recipe with the given id.
func (c Collection) WithImage(id ID, data []byte) Collection {
	r, ok := c.Get(id)
	if !ok {
		return c
	}
	r.ImageData = data
	return c.Replace(r)
}

// Filter returns the recipes for which keep reports true, in order.
func (c Collection) Filter(keep func(Recipe) bool) Collection {
	kept := make([]Recipe, 0, len(c.items))
	for _, r := range c.items {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return NewCollection(kept)
}
