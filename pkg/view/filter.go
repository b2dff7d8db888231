package view

import (
	"time"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/value"
)

// Filter is an attribute predicate. c is the item's own collection and is
// nil when it cannot be resolved; such items never match.
type Filter interface {
	Match(c *collection.Collection, it *item.Item) bool
}

// HasRating matches items whose first rating field is above zero.
type HasRating struct{}

func (HasRating) Match(c *collection.Collection, it *item.Item) bool {
	v, ok := value.FirstOfType(c, it, collection.FieldRating)
	return ok && v.Number() > 0
}

// StatusIn matches items whose first status field holds one of Values.
type StatusIn struct {
	Values []string
}

func (f StatusIn) Match(c *collection.Collection, it *item.Item) bool {
	v, ok := value.FirstOfType(c, it, collection.FieldStatus)
	if !ok {
		return false
	}
	s := v.Text()
	for _, want := range f.Values {
		if s == want {
			return true
		}
	}
	return false
}

// Tagged matches items whose first tags field contains Tag.
type Tagged struct {
	Tag string
}

func (f Tagged) Match(c *collection.Collection, it *item.Item) bool {
	v, ok := value.FirstOfType(c, it, collection.FieldTags)
	if !ok {
		return false
	}
	for _, t := range v.List() {
		if t == f.Tag {
			return true
		}
	}
	return false
}

// AddedSince matches items added at or after Since.
type AddedSince struct {
	Since time.Time
}

func (f AddedSince) Match(_ *collection.Collection, it *item.Item) bool {
	return !it.Added().Before(f.Since)
}

// FilterBy keeps items that pass every filter.
func FilterBy(lookup Lookup, items []*item.Item, filters ...Filter) []*item.Item {
	if len(filters) == 0 {
		return append([]*item.Item(nil), items...)
	}
	out := make([]*item.Item, 0, len(items))
	for _, it := range items {
		c := lookup[it.CollectionID]
		keep := c != nil
		for _, f := range filters {
			if !keep {
				break
			}
			keep = f.Match(c, it)
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}
