package collections

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/printers"
)

// FieldOp is a schema edit.
type FieldOp string

const (
	FieldAdd          FieldOp = "add"
	FieldRename       FieldOp = "rename"
	FieldRemove       FieldOp = "remove"
	FieldMoveUp       FieldOp = "up"
	FieldMoveDown     FieldOp = "down"
	FieldOptionAdd    FieldOp = "option-add"
	FieldOptionRemove FieldOp = "option-remove"
)

// Field edits one field of a collection's schema. Items are never touched;
// values for a removed field stay on the items.
type Field struct {
	Service    *app.Service
	Out        io.Writer
	Collection string
	Op         FieldOp
	// Field is the field name or id; for FieldAdd it is a field spec
	// (name:type[:option|option]).
	Field string
	// Value is the new name for FieldRename and the option for the option
	// edits.
	Value string
}

// Do applies the edit to a copy of the collection and stores it.
func (f *Field) Do(ctx context.Context) error {
	c, err := find(f.Service, f.Collection)
	if err != nil {
		return err
	}
	edited := c.Clone()

	if f.Op == FieldAdd {
		nf, err := ParseFieldSpec(f.Field)
		if err != nil {
			return err
		}
		if edited.FieldByName(nf.Name) != nil {
			return fmt.Errorf("collections: %s already has a field named %q", c.Name, nf.Name)
		}
		edited.Fields = append(edited.Fields, nf)
	} else {
		target := edited.Field(f.Field)
		if target == nil {
			target = edited.FieldByName(f.Field)
		}
		if target == nil {
			return fmt.Errorf("%w: %q in %s", collection.ErrFieldNotFound, f.Field, c.Name)
		}
		if err := f.apply(edited, target); err != nil {
			return err
		}
	}

	if err := f.Service.UpdateCollection(ctx, edited); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: f.Out}
	pp.Schema(f.Service.State().Collection(c.ID))
	return nil
}

func (f *Field) apply(c *collection.Collection, target *collection.FieldDefinition) error {
	switch f.Op {
	case FieldRename:
		return c.RenameField(target.ID, f.Value)
	case FieldRemove:
		return c.RemoveField(target.ID)
	case FieldMoveUp:
		return c.MoveField(target.ID, -1)
	case FieldMoveDown:
		return c.MoveField(target.ID, 1)
	case FieldOptionAdd:
		return c.AddOption(target.ID, f.Value)
	case FieldOptionRemove:
		return c.RemoveOption(target.ID, f.Value)
	default:
		return fmt.Errorf("collections: unknown field operation %q", f.Op)
	}
}
