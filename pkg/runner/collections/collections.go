// Package collections contains runners for collection management commands.
package collections

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/printers"
	"tableflip.dev/stash/pkg/state"
)

var errNoService = errors.New("collections: no service")

// find resolves a collection by id or name.
func find(svc *app.Service, ref string) (*collection.Collection, error) {
	if svc == nil {
		return nil, errNoService
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("collections: collection name is required")
	}
	c := svc.State().CollectionByName(ref)
	if c == nil {
		return nil, fmt.Errorf("collections: collection %q not found", ref)
	}
	return c, nil
}

// List prints every collection.
type List struct {
	Service *app.Service
	Out     io.Writer
	ShowID  bool
	JSON    bool
}

// Do renders the collections in stored order.
func (l *List) Do(_ context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	st := l.Service.State()
	if l.JSON {
		return printers.JSON(l.Out, st.Collections)
	}
	pp := printers.PrettyPrint{Out: l.Out, ShowID: l.ShowID}
	pp.TitleWithCount("Collections", len(st.Collections))
	pp.Collections(st.Collections...)
	return nil
}

// Show prints one collection's schema.
type Show struct {
	Service    *app.Service
	Out        io.Writer
	Collection string
	JSON       bool
}

// Do renders the schema.
func (s *Show) Do(_ context.Context) error {
	c, err := find(s.Service, s.Collection)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, c)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Schema(c)
	return nil
}

// Create adds a collection, optionally from a preset, and makes it the
// active view.
type Create struct {
	Service     *app.Service
	Out         io.Writer
	Name        string
	Icon        string
	Color       string
	Description string
	Preset      string
	// Fields are specs in the form name:type[:option|option].
	Fields []string
}

// Do creates the collection.
func (c *Create) Do(ctx context.Context) error {
	if c.Service == nil {
		return errNoService
	}
	color, err := collection.ParseColor(c.Color)
	if err != nil {
		return err
	}
	fields := make([]*collection.FieldDefinition, 0, len(c.Fields))
	for _, spec := range c.Fields {
		f, err := ParseFieldSpec(spec)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}

	var nc *collection.Collection
	if c.Preset != "" {
		nc, err = collection.FromPreset(c.Preset, c.Name)
		if err != nil {
			return err
		}
		if c.Icon != "" {
			nc.Icon = c.Icon
		}
		if c.Color != "" {
			nc.Color = color
		}
		if c.Description != "" {
			nc.Description = strings.TrimSpace(c.Description)
		}
		nc.Fields = append(nc.Fields, fields...)
		nc = collection.New(nc.Name, nc.Icon, nc.Color, nc.Description, nc.Fields...)
	} else {
		nc = collection.New(c.Name, c.Icon, color, c.Description, fields...)
	}

	created, err := c.Service.CreateCollection(ctx, nc)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: c.Out}
	pp.Message("Created collection %q with %d fields.", created.Name, len(created.Fields))
	return nil
}

// ParseFieldSpec parses name:type[:option|option]. A bare name is a text
// field.
func ParseFieldSpec(spec string) (*collection.FieldDefinition, error) {
	parts := strings.SplitN(spec, ":", 3)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("collections: field %q has no name", spec)
	}
	t := collection.FieldText
	if len(parts) > 1 {
		var err error
		if t, err = collection.ParseFieldType(parts[1]); err != nil {
			return nil, err
		}
	}
	var opts []string
	if len(parts) > 2 {
		if !t.Enumerated() {
			return nil, fmt.Errorf("collections: field %q: %w", name, collection.ErrNotEnumerated)
		}
		opts = strings.Split(parts[2], "|")
	}
	return collection.NewField(name, t, opts...), nil
}

// Edit changes a collection's metadata. Nil members are left alone.
type Edit struct {
	Service     *app.Service
	Out         io.Writer
	Collection  string
	Name        *string
	Icon        *string
	Color       *string
	Description *string
}

// Do applies the edit.
func (e *Edit) Do(ctx context.Context) error {
	c, err := find(e.Service, e.Collection)
	if err != nil {
		return err
	}
	p := state.Patch{Name: e.Name, Icon: e.Icon, Description: e.Description}
	if e.Color != nil {
		color, err := collection.ParseColor(*e.Color)
		if err != nil {
			return err
		}
		p.Color = &color
	}
	if err := e.Service.EditCollection(ctx, c.ID, p); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.Message("Updated collection %q.", e.Service.State().Collection(c.ID).Name)
	return nil
}

// Delete removes a collection and every item in it.
type Delete struct {
	Service    *app.Service
	Out        io.Writer
	Collection string
	// Confirm is asked before deleting; nil means yes.
	Confirm func(question string) (bool, error)
}

// Do deletes after confirmation.
func (d *Delete) Do(ctx context.Context) error {
	c, err := find(d.Service, d.Collection)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	if d.Confirm != nil {
		ok, err := d.Confirm(fmt.Sprintf("Delete %q and its %d items", c.Name, len(c.ItemIDs)))
		if err != nil {
			return err
		}
		if !ok {
			pp.Message("Nothing deleted.")
			return nil
		}
	}
	if err := d.Service.DeleteCollection(ctx, c.ID); err != nil {
		return err
	}
	pp.Message("Deleted collection %q and %d items.", c.Name, len(c.ItemIDs))
	return nil
}
