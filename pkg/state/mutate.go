package state

import (
	"time"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
)

// Every function in this file treats its input as immutable and returns
// either the input itself (nothing to do) or a new State.

// Patch carries the mutable members of a collection. Nil members are left
// unchanged; a nil or empty Fields keeps the current schema, as does one
// that fails collection.ValidateFields.
type Patch struct {
	Name        *string
	Icon        *string
	Color       *collection.Color
	Description *string
	Fields      []*collection.FieldDefinition
}

// CreateCollection appends c. Its ItemIDs are rebuilt from the items that
// already point at its id. A duplicate id leaves s unchanged.
func CreateCollection(s *State, c *collection.Collection) *State {
	if c == nil || c.ID == "" || s.Collection(c.ID) != nil {
		return s
	}
	next := s.Clone()
	nc := c.Clone()
	nc.ItemIDs = []string{}
	for _, it := range next.ItemList() {
		if it.CollectionID == nc.ID {
			nc.ItemIDs = append(nc.ItemIDs, it.ID)
		}
	}
	next.Collections = append(next.Collections, nc)
	return next
}

// EditCollection applies p to the collection with the given id, keeping its
// id and item ids. Items are not touched.
func EditCollection(s *State, id string, p Patch) *State {
	if s.Collection(id) == nil {
		return s
	}
	next := s.Clone()
	c := next.Collection(id)
	if p.Name != nil && *p.Name != "" {
		c.Name = *p.Name
	}
	if p.Icon != nil && *p.Icon != "" {
		c.Icon = *p.Icon
	}
	if p.Color != nil && *p.Color != "" {
		c.Color = *p.Color
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if len(p.Fields) > 0 && collection.ValidateFields(p.Fields) == nil {
		fields := make([]*collection.FieldDefinition, 0, len(p.Fields))
		for _, f := range p.Fields {
			cp := *f
			cp.Options = append([]string(nil), f.Options...)
			fields = append(fields, &cp)
		}
		c.Fields = fields
	}
	return next
}

// ReplaceCollection swaps in an edited copy of a collection's schema and
// metadata. ItemIDs always come from the stored collection.
func ReplaceCollection(s *State, c *collection.Collection) *State {
	if c == nil {
		return s
	}
	name, icon, color, desc := c.Name, c.Icon, c.Color, c.Description
	return EditCollection(s, c.ID, Patch{
		Name:        &name,
		Icon:        &icon,
		Color:       &color,
		Description: &desc,
		Fields:      c.Fields,
	})
}

// DeleteCollection removes the collection and every item that points at it.
func DeleteCollection(s *State, id string) *State {
	if s.Collection(id) == nil {
		return s
	}
	next := s.Clone()
	cols := next.Collections[:0]
	for _, c := range next.Collections {
		if c.ID != id {
			cols = append(cols, c)
		}
	}
	next.Collections = cols
	for itemID, it := range next.Items {
		if it.CollectionID == id {
			delete(next.Items, itemID)
		}
	}
	return next
}

// SaveItem creates or replaces an item. On create, DateAdded defaults to
// now and the id is put at the front of the owning collection's ItemIDs.
// On replace, the stored DateAdded is kept and ItemIDs order is untouched
// unless the item moved to another collection. An item whose collection
// does not exist is still stored.
func SaveItem(s *State, it *item.Item, now time.Time) *State {
	if it == nil || it.ID == "" {
		return s
	}
	next := s.Clone()
	ni := it.Clone()
	if ni.FieldValues == nil {
		ni.FieldValues = map[string]any{}
	}

	existing, ok := next.Items[ni.ID]
	if !ok {
		if ni.DateAdded.IsZero() {
			ni.DateAdded = item.Timestamp{Time: now}
		}
		next.Items[ni.ID] = ni
		if c := next.Collection(ni.CollectionID); c != nil {
			c.ItemIDs = prepend(without(c.ItemIDs, ni.ID), ni.ID)
		}
		return next
	}

	ni.DateAdded = existing.DateAdded
	if existing.CollectionID != ni.CollectionID {
		if old := next.Collection(existing.CollectionID); old != nil {
			old.ItemIDs = without(old.ItemIDs, ni.ID)
		}
		if c := next.Collection(ni.CollectionID); c != nil {
			c.ItemIDs = prepend(without(c.ItemIDs, ni.ID), ni.ID)
		}
	}
	next.Items[ni.ID] = ni
	return next
}

// DeleteItem removes the item and its id from its collection.
func DeleteItem(s *State, id string) *State {
	if s.Item(id) == nil {
		return s
	}
	next := s.Clone()
	delete(next.Items, id)
	for _, c := range next.Collections {
		c.ItemIDs = without(c.ItemIDs, id)
	}
	return next
}

// ToggleFavorite flips the item's favorite flag.
func ToggleFavorite(s *State, id string) *State {
	it := s.Item(id)
	if it == nil {
		return s
	}
	flipped := it.Clone()
	flipped.IsFavorite = !flipped.IsFavorite
	return SaveItem(s, flipped, it.Added())
}

// ToggleDarkMode flips the dark mode preference.
func ToggleDarkMode(s *State) *State {
	next := s.Clone()
	next.DarkMode = !next.DarkMode
	return next
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func prepend(ids []string, id string) []string {
	return append([]string{id}, ids...)
}
