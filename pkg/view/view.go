// Package view derives the ordered list of items a user sees from the
// stored state and the current, non-persisted view inputs.
//
// The pipeline is strictly staged: Narrow, Search, FilterBy, Sort. Every
// field lookup is made against the item's own collection because field ids
// are only unique within one collection and the "all" and "favorites"
// views mix schemas.
package view

import (
	"fmt"
	"strings"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/state"
	"tableflip.dev/stash/pkg/value"
)

// Selector picks the item subset being browsed: All, Favorites, or a
// collection id.
type Selector string

const (
	// All selects every item.
	All Selector = "all"
	// Favorites selects items marked favorite.
	Favorites Selector = "favorites"
)

// ForCollection returns the selector for a collection id.
func ForCollection(id string) Selector {
	return Selector(id)
}

// CollectionID returns the collection id the selector names, if any.
func (s Selector) CollectionID() (string, bool) {
	switch s {
	case All, Favorites, "":
		return "", false
	default:
		return string(s), true
	}
}

// Lookup indexes collections by id.
type Lookup map[string]*collection.Collection

// Options are the view inputs. The zero value shows all items unsorted.
type Options struct {
	Selector Selector
	Query    string
	Filters  []Filter
	Sort     SortKey
}

// Apply runs the full pipeline over the state.
func Apply(s *state.State, o Options) []*item.Item {
	if s == nil {
		return nil
	}
	lookup := Lookup(s.Lookup())
	out := Searched(s, o)
	out = FilterBy(lookup, out, o.Filters...)
	return Sort(lookup, out, o.Sort)
}

// Searched returns the view-narrowed and searched items, before attribute
// filters. It is the set attribute filter choices are derived from.
func Searched(s *state.State, o Options) []*item.Item {
	if s == nil {
		return nil
	}
	out := Narrow(s.ItemList(), o.Selector)
	return Search(out, o.Query)
}

// ActiveCollection resolves the selector to a collection, or nil for the
// all and favorites views and for unknown ids.
func ActiveCollection(s *state.State, sel Selector) *collection.Collection {
	id, ok := sel.CollectionID()
	if !ok {
		return nil
	}
	return s.Collection(id)
}

// Narrow keeps the items the selector names.
func Narrow(items []*item.Item, sel Selector) []*item.Item {
	out := make([]*item.Item, 0, len(items))
	colID, scoped := sel.CollectionID()
	for _, it := range items {
		switch {
		case sel == Favorites:
			if it.IsFavorite {
				out = append(out, it)
			}
		case scoped:
			if it.CollectionID == colID {
				out = append(out, it)
			}
		default:
			out = append(out, it)
		}
	}
	return out
}

// Search keeps items where any stored value, converted to text, contains
// the query case-insensitively. Only an empty query keeps everything;
// whitespace is matched as given.
func Search(items []*item.Item, query string) []*item.Item {
	q := strings.ToLower(query)
	if q == "" {
		return append([]*item.Item(nil), items...)
	}
	out := make([]*item.Item, 0, len(items))
	for _, it := range items {
		if matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it *item.Item, q string) bool {
	for _, raw := range it.FieldValues {
		if strings.Contains(strings.ToLower(value.Stringify(raw)), q) {
			return true
		}
	}
	return false
}

// ParseSelector maps user input to a selector. Names are resolved against
// the state's collections by id first, then by name.
func ParseSelector(s *state.State, raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", string(All):
		return All, nil
	case string(Favorites), "favs", "fav":
		return Favorites, nil
	}
	if c := s.CollectionByName(raw); c != nil {
		return ForCollection(c.ID), nil
	}
	return All, fmt.Errorf("view: unknown collection %q", raw)
}
