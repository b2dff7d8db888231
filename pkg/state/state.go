// Package state holds the root aggregate persisted by stash and the pure
// operations that derive a new aggregate from an old one.
package state

import (
	"encoding/json"
	"fmt"
	"sort"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
)

// State is the unit of persistence: read whole, written whole.
type State struct {
	Collections []*collection.Collection `json:"collections" yaml:"collections"`
	Items       map[string]*item.Item    `json:"items" yaml:"items"`
	DarkMode    bool                     `json:"darkMode" yaml:"darkMode"`
}

// Default returns the empty state used when nothing has been stored yet.
func Default() *State {
	return &State{
		Collections: []*collection.Collection{},
		Items:       map[string]*item.Item{},
	}
}

// Decode parses a persisted document. Missing members decode as zero
// values; there is no version check.
func Decode(data []byte) (*State, error) {
	s := &State{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("state: decode: %w", err)
	}
	s.normalize()
	return s, nil
}

// Encode serializes the whole state.
func Encode(s *State) ([]byte, error) {
	if s == nil {
		s = Default()
	}
	return json.Marshal(s)
}

func (s *State) normalize() {
	if s.Collections == nil {
		s.Collections = []*collection.Collection{}
	}
	cols := s.Collections[:0]
	for _, c := range s.Collections {
		if c == nil {
			continue
		}
		if c.ItemIDs == nil {
			c.ItemIDs = []string{}
		}
		fields := c.Fields[:0]
		for _, f := range c.Fields {
			if f != nil {
				fields = append(fields, f)
			}
		}
		c.Fields = fields
		cols = append(cols, c)
	}
	s.Collections = cols
	if s.Items == nil {
		s.Items = map[string]*item.Item{}
	}
	for id, it := range s.Items {
		if it == nil {
			delete(s.Items, id)
			continue
		}
		if it.ID == "" {
			it.ID = id
		}
		if it.FieldValues == nil {
			it.FieldValues = map[string]any{}
		}
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	if s == nil {
		return Default()
	}
	cp := &State{
		Collections: make([]*collection.Collection, len(s.Collections)),
		Items:       make(map[string]*item.Item, len(s.Items)),
		DarkMode:    s.DarkMode,
	}
	for i, c := range s.Collections {
		cp.Collections[i] = c.Clone()
	}
	for id, it := range s.Items {
		cp.Items[id] = it.Clone()
	}
	return cp
}

// Collection returns the collection with the given id, or nil.
func (s *State) Collection(id string) *collection.Collection {
	if s == nil {
		return nil
	}
	for _, c := range s.Collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CollectionByName returns the first collection whose name or id matches.
func (s *State) CollectionByName(name string) *collection.Collection {
	if c := s.Collection(name); c != nil {
		return c
	}
	if s == nil {
		return nil
	}
	for _, c := range s.Collections {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Item returns the item with the given id, or nil.
func (s *State) Item(id string) *item.Item {
	if s == nil {
		return nil
	}
	return s.Items[id]
}

// ItemList returns all items newest first, ties broken by id, so callers
// get a deterministic order out of the map.
func (s *State) ItemList() []*item.Item {
	if s == nil {
		return nil
	}
	out := make([]*item.Item, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		lt, rt := out[i].Added(), out[j].Added()
		if lt.Equal(rt) {
			return out[i].ID < out[j].ID
		}
		return lt.After(rt)
	})
	return out
}

// Lookup returns the collection index by id for pipeline use.
func (s *State) Lookup() map[string]*collection.Collection {
	m := make(map[string]*collection.Collection, len(s.Collections))
	for _, c := range s.Collections {
		m[c.ID] = c
	}
	return m
}
