// Package items contains runners for item commands.
package items

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/printers"
	"tableflip.dev/stash/pkg/state"
	"tableflip.dev/stash/pkg/value"
)

var errNoService = errors.New("items: no service")

// Find resolves an item by id, unique id prefix, or unique title.
func Find(st *state.State, ref string) (*item.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("items: item id is required")
	}
	if it := st.Item(ref); it != nil {
		return it, nil
	}

	var byPrefix, byTitle []*item.Item
	lookup := st.Lookup()
	for _, it := range st.ItemList() {
		if strings.HasPrefix(it.ID, ref) {
			byPrefix = append(byPrefix, it)
		}
		if strings.EqualFold(value.Title(lookup[it.CollectionID], it), ref) {
			byTitle = append(byTitle, it)
		}
	}
	switch {
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) == 0 && len(byTitle) == 1:
		return byTitle[0], nil
	case len(byPrefix) > 1 || len(byTitle) > 1:
		return nil, fmt.Errorf("items: %q matches more than one item, use the id", ref)
	default:
		return nil, fmt.Errorf("items: item %q not found", ref)
	}
}

// assign parses name=value pairs against c's schema and stores them on it.
func assign(c *collection.Collection, it *item.Item, values [][2]string) error {
	for _, kv := range values {
		f := c.FieldByName(kv[0])
		if f == nil {
			f = c.Field(kv[0])
		}
		if f == nil {
			names := make([]string, 0, len(c.Fields))
			for _, cf := range c.Fields {
				names = append(names, cf.Name)
			}
			return fmt.Errorf("%w: %q (fields of %s: %s)", collection.ErrFieldNotFound, kv[0], c.Name, strings.Join(names, ", "))
		}
		v, err := value.ParseInput(f, kv[1])
		if err != nil {
			return err
		}
		it.Set(f.ID, v)
	}
	return nil
}

// Add creates an item in a collection.
type Add struct {
	Service    *app.Service
	Out        io.Writer
	Collection string
	// Values are field name and raw input pairs.
	Values   [][2]string
	Favorite bool
	Added    *time.Time
	ShowID   bool
}

// Do stores the new item and prints it.
func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	st := a.Service.State()
	c := st.CollectionByName(a.Collection)
	if c == nil {
		return fmt.Errorf("items: collection %q not found", a.Collection)
	}
	it := item.New("", c.ID)
	it.IsFavorite = a.Favorite
	if a.Added != nil {
		it.DateAdded = item.Timestamp{Time: *a.Added}
	}
	if err := assign(c, it, a.Values); err != nil {
		return err
	}
	saved, err := a.Service.SaveItem(ctx, it)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out, ShowID: a.ShowID}
	pp.Message("Added %q to %s (%s).", value.Title(c, saved), c.Name, saved.ID)
	return nil
}

// Edit changes field values of an item and optionally moves it to another
// collection. Values are parsed against the destination's schema.
type Edit struct {
	Service *app.Service
	Out     io.Writer
	Item    string
	Values  [][2]string
	// MoveTo is a collection name or id; empty keeps the item where it is.
	MoveTo string
}

// Do saves the edited copy.
func (e *Edit) Do(ctx context.Context) error {
	if e.Service == nil {
		return errNoService
	}
	st := e.Service.State()
	found, err := Find(st, e.Item)
	if err != nil {
		return err
	}
	it := found.Clone()
	if e.MoveTo != "" {
		dest := st.CollectionByName(e.MoveTo)
		if dest == nil {
			return fmt.Errorf("items: collection %q not found", e.MoveTo)
		}
		it.CollectionID = dest.ID
	}
	c := st.Collection(it.CollectionID)
	if c == nil {
		if len(e.Values) > 0 {
			return fmt.Errorf("items: collection %q of item %s not found, move it first", it.CollectionID, it.ID)
		}
	} else if err := assign(c, it, e.Values); err != nil {
		return err
	}
	if _, err := e.Service.SaveItem(ctx, it); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.Message("Updated %s.", it.ID)
	return nil
}

// Delete removes items by reference.
type Delete struct {
	Service *app.Service
	Out     io.Writer
	Items   []string
}

// Do deletes every referenced item; unknown references are reported and
// skipped.
func (d *Delete) Do(ctx context.Context) error {
	if d.Service == nil {
		return errNoService
	}
	pp := printers.PrettyPrint{Out: d.Out}
	var errs []error
	for _, ref := range d.Items {
		it, err := Find(d.Service.State(), ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := d.Service.DeleteItem(ctx, it.ID); err != nil {
			return err
		}
		pp.Message("Deleted %s.", it.ID)
	}
	return errors.Join(errs...)
}

// Favorite toggles the favorite flag of an item.
type Favorite struct {
	Service *app.Service
	Out     io.Writer
	Item    string
}

// Do flips the flag and reports the new value.
func (f *Favorite) Do(ctx context.Context) error {
	if f.Service == nil {
		return errNoService
	}
	it, err := Find(f.Service.State(), f.Item)
	if err != nil {
		return err
	}
	updated, err := f.Service.ToggleFavorite(ctx, it.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: f.Out}
	if updated.IsFavorite {
		pp.Message("%s is now a favorite.", it.ID)
	} else {
		pp.Message("%s is no longer a favorite.", it.ID)
	}
	return nil
}

// Show prints every field of one item.
type Show struct {
	Service *app.Service
	Out     io.Writer
	Item    string
	ShowID  bool
	JSON    bool
	Width   int
}

// Do renders the item.
func (s *Show) Do(_ context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	st := s.Service.State()
	it, err := Find(st, s.Item)
	if err != nil {
		return err
	}
	c := st.Collection(it.CollectionID)
	if s.JSON {
		return printers.JSON(s.Out, resolved(c, it))
	}
	pp := printers.PrettyPrint{Out: s.Out, ShowID: s.ShowID, Width: s.Width}
	pp.Item(c, it)
	return nil
}

// resolved maps field names to coerced values, plus the item's metadata.
func resolved(c *collection.Collection, it *item.Item) map[string]interface{} {
	out := map[string]interface{}{
		"id":         it.ID,
		"collection": it.CollectionID,
		"dateAdded":  it.DateAdded,
		"isFavorite": it.IsFavorite,
	}
	fields := map[string]interface{}{}
	if c != nil {
		for _, f := range c.Fields {
			v := value.Resolve(c, it, f.ID)
			switch v.Kind {
			case value.Number:
				fields[f.Name] = v.Number()
			case value.Bool:
				fields[f.Name] = v.Bool()
			case value.List:
				fields[f.Name] = v.List()
			default:
				fields[f.Name] = v.Text()
			}
		}
	}
	out["fields"] = fields
	return out
}
