package state

import (
	"fmt"

	"tableflip.dev/stash/pkg/collection"
)

// Check reports violations of the collection/item invariants. Items that
// point at a missing collection are tolerated and not reported; see Orphans.
func Check(s *State) []error {
	var errs []error
	seenCols := make(map[string]struct{}, len(s.Collections))
	for _, c := range s.Collections {
		if _, dup := seenCols[c.ID]; dup {
			errs = append(errs, fmt.Errorf("collection %s: duplicate id", c.ID))
		}
		seenCols[c.ID] = struct{}{}

		if len(c.Fields) == 0 {
			errs = append(errs, fmt.Errorf("collection %s: no fields", c.ID))
		}
		seenFields := make(map[string]struct{}, len(c.Fields))
		for _, f := range c.Fields {
			if _, dup := seenFields[f.ID]; dup {
				errs = append(errs, fmt.Errorf("collection %s: duplicate field id %s", c.ID, f.ID))
			}
			seenFields[f.ID] = struct{}{}
		}

		listed := make(map[string]struct{}, len(c.ItemIDs))
		for _, id := range c.ItemIDs {
			if _, dup := listed[id]; dup {
				errs = append(errs, fmt.Errorf("collection %s: item %s listed twice", c.ID, id))
			}
			listed[id] = struct{}{}
			it := s.Items[id]
			switch {
			case it == nil:
				errs = append(errs, fmt.Errorf("collection %s: lists missing item %s", c.ID, id))
			case it.CollectionID != c.ID:
				errs = append(errs, fmt.Errorf("collection %s: lists item %s owned by %s", c.ID, id, it.CollectionID))
			}
		}
		for id, it := range s.Items {
			if it.CollectionID != c.ID {
				continue
			}
			if _, ok := listed[id]; !ok {
				errs = append(errs, fmt.Errorf("collection %s: item %s not listed", c.ID, id))
			}
		}
	}
	return errs
}

// Orphans returns the ids of items whose collection does not exist, in
// ItemList order.
func Orphans(s *State) []string {
	var out []string
	for _, it := range s.ItemList() {
		if s.Collection(it.CollectionID) == nil {
			out = append(out, it.ID)
		}
	}
	return out
}

// Repair rebuilds every collection's ItemIDs from the items. Ids already
// listed keep their relative order; unlisted items are inserted newest
// first ahead of them. Returns s unchanged when nothing needs fixing.
func Repair(s *State) *State {
	if len(Check(s)) == 0 {
		return s
	}
	next := s.Clone()
	for _, c := range next.Collections {
		c.ItemIDs = repairIDs(next, c)
	}
	return next
}

func repairIDs(s *State, c *collection.Collection) []string {
	kept := make([]string, 0, len(c.ItemIDs))
	listed := make(map[string]struct{}, len(c.ItemIDs))
	for _, id := range c.ItemIDs {
		if it := s.Items[id]; it == nil || it.CollectionID != c.ID {
			continue
		}
		if _, dup := listed[id]; dup {
			continue
		}
		listed[id] = struct{}{}
		kept = append(kept, id)
	}
	var missing []string
	for _, it := range s.ItemList() {
		if it.CollectionID != c.ID {
			continue
		}
		if _, ok := listed[it.ID]; !ok {
			missing = append(missing, it.ID)
		}
	}
	return append(missing, kept...)
}
