package view

import (
	"sort"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/state"
	"tableflip.dev/stash/pkg/value"
)

// AvailableStatuses returns the distinct non-empty status values among the
// narrowed and searched items, sorted.
func AvailableStatuses(s *state.State, o Options) []string {
	return distinct(s, o, func(c *collection.Collection, it *item.Item) []string {
		v, ok := value.FirstOfType(c, it, collection.FieldStatus)
		if !ok {
			return nil
		}
		return []string{v.Text()}
	})
}

// AvailableTags returns the distinct tags among the narrowed and searched
// items, sorted.
func AvailableTags(s *state.State, o Options) []string {
	return distinct(s, o, func(c *collection.Collection, it *item.Item) []string {
		v, ok := value.FirstOfType(c, it, collection.FieldTags)
		if !ok {
			return nil
		}
		return v.List()
	})
}

func distinct(s *state.State, o Options, values func(*collection.Collection, *item.Item) []string) []string {
	if s == nil {
		return []string{}
	}
	lookup := s.Lookup()
	seen := map[string]struct{}{}
	out := []string{}
	for _, it := range Searched(s, o) {
		c := lookup[it.CollectionID]
		if c == nil {
			continue
		}
		for _, v := range values(c, it) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
