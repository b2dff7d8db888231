package collection

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TitleFieldName is the name of the field every collection starts with.
const TitleFieldName = "Title"

// FieldDefinition is one named, typed slot in a collection's schema.
type FieldDefinition struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Type    FieldType `json:"type" yaml:"type"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// NewField returns a field definition with a fresh id.
func NewField(name string, t FieldType, options ...string) *FieldDefinition {
	f := &FieldDefinition{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Type: t,
	}
	if t.Enumerated() {
		for _, opt := range options {
			f.addOption(opt)
		}
	}
	return f
}

func (f *FieldDefinition) clone() *FieldDefinition {
	if f == nil {
		return nil
	}
	cp := *f
	if f.Options != nil {
		cp.Options = append([]string(nil), f.Options...)
	}
	return &cp
}

func (f *FieldDefinition) addOption(opt string) bool {
	opt = strings.TrimSpace(opt)
	if opt == "" {
		return false
	}
	for _, existing := range f.Options {
		if existing == opt {
			return false
		}
	}
	f.Options = append(f.Options, opt)
	return true
}

// HasOption reports whether opt is one of the field's options.
func (f *FieldDefinition) HasOption(opt string) bool {
	for _, existing := range f.Options {
		if existing == opt {
			return true
		}
	}
	return false
}

// Collection is a user-defined schema plus the ordered ids of the items
// that belong to it. ItemIDs is most-recently-added first and is maintained
// by the state mutations, never by callers.
type Collection struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Icon        string             `json:"icon" yaml:"icon"`
	Color       Color              `json:"color" yaml:"color"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []*FieldDefinition `json:"fields" yaml:"fields"`
	ItemIDs     []string           `json:"itemIds" yaml:"itemIds"`
}

// New builds a collection whose first field is a text field named Title.
// A supplied text field named Title is reused for that slot; any other field
// with that name is dropped. Fields without an id get one and duplicate ids
// are replaced.
func New(name, icon string, color Color, description string, fields ...*FieldDefinition) *Collection {
	if icon == "" {
		icon = DefaultIcon
	}
	if color == "" {
		color = DefaultColor
	}
	c := &Collection{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Icon:        icon,
		Color:       color,
		Description: strings.TrimSpace(description),
		ItemIDs:     []string{},
	}

	c.Fields = PinTitle(fields...)
	seen := make(map[string]struct{}, len(c.Fields))
	for _, f := range c.Fields {
		if _, dup := seen[f.ID]; dup {
			f.ID = uuid.NewString()
		}
		seen[f.ID] = struct{}{}
	}
	return c
}

// PinTitle returns copies of fields with a text field named Title at
// position 0. A supplied text field named Title is moved there; any other
// field with that name is dropped. Nil fields are skipped, and fields
// without an id or type get one.
func PinTitle(fields ...*FieldDefinition) []*FieldDefinition {
	var title *FieldDefinition
	rest := make([]*FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(f.Name), TitleFieldName) {
			if title == nil && (f.Type == FieldText || f.Type == "") {
				title = f.clone()
			}
			continue
		}
		rest = append(rest, f.clone())
	}
	if title == nil {
		title = NewField(TitleFieldName, FieldText)
	}
	title.Name = TitleFieldName
	title.Type = FieldText
	title.Options = nil

	out := append([]*FieldDefinition{title}, rest...)
	for _, f := range out {
		if f.Type == "" {
			f.Type = FieldText
		}
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
	}
	return out
}

// ValidateFields reports whether fields is a usable schema: a text field
// named Title first and unique, non-empty field ids.
func ValidateFields(fields []*FieldDefinition) error {
	if len(fields) == 0 || fields[0] == nil ||
		fields[0].Type != FieldText || !strings.EqualFold(fields[0].Name, TitleFieldName) {
		return ErrTitleField
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f == nil || f.ID == "" {
			return fmt.Errorf("%w: field without id", ErrDuplicateField)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateField, f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Fields = make([]*FieldDefinition, len(c.Fields))
	for i, f := range c.Fields {
		cp.Fields[i] = f.clone()
	}
	cp.ItemIDs = append([]string{}, c.ItemIDs...)
	return &cp
}

// Field returns the field with the given id, or nil.
func (c *Collection) Field(id string) *FieldDefinition {
	if c == nil {
		return nil
	}
	for _, f := range c.Fields {
		if f != nil && f.ID == id {
			return f
		}
	}
	return nil
}

// FieldByName returns the first field whose name matches case-insensitively.
func (c *Collection) FieldByName(name string) *FieldDefinition {
	if c == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	for _, f := range c.Fields {
		if f != nil && strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// TitleField returns the field used as the item's label: the field named
// Title, else the first field. Nil when the collection has no fields.
func (c *Collection) TitleField() *FieldDefinition {
	if f := c.FieldByName(TitleFieldName); f != nil {
		return f
	}
	if c == nil || len(c.Fields) == 0 {
		return nil
	}
	return c.Fields[0]
}

// FirstFieldOfType returns the first field of type t, or nil.
func (c *Collection) FirstFieldOfType(t FieldType) *FieldDefinition {
	if c == nil {
		return nil
	}
	for _, f := range c.Fields {
		if f != nil && f.Type == t {
			return f
		}
	}
	return nil
}

func (c *Collection) indexOf(id string) int {
	for i, f := range c.Fields {
		if f != nil && f.ID == id {
			return i
		}
	}
	return -1
}

// AddField appends a new field to the schema.
func (c *Collection) AddField(name string, t FieldType, options ...string) (*FieldDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("collection: field name required")
	}
	f := NewField(name, t, options...)
	c.Fields = append(c.Fields, f)
	return f, nil
}

// RenameField changes a field's name in place.
func (c *Collection) RenameField(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("collection: field name required")
	}
	f := c.Field(id)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	f.Name = name
	return nil
}

// AddOption appends an option to an enumerated field. Empty and duplicate
// options are ignored.
func (c *Collection) AddOption(id, opt string) error {
	f := c.Field(id)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	if !f.Type.Enumerated() {
		return fmt.Errorf("%w: %s is %s", ErrNotEnumerated, f.Name, f.Type)
	}
	f.addOption(opt)
	return nil
}

// RemoveOption drops an option from an enumerated field. Items already
// holding that value keep it.
func (c *Collection) RemoveOption(id, opt string) error {
	f := c.Field(id)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	if !f.Type.Enumerated() {
		return fmt.Errorf("%w: %s is %s", ErrNotEnumerated, f.Name, f.Type)
	}
	opts := f.Options[:0]
	for _, existing := range f.Options {
		if existing != opt {
			opts = append(opts, existing)
		}
	}
	f.Options = opts
	return nil
}

// RemoveField drops a field from the schema. The title field at position 0
// cannot be removed. Values items hold for the field are left in place.
func (c *Collection) RemoveField(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	if i == 0 {
		return ErrTitleField
	}
	c.Fields = append(c.Fields[:i], c.Fields[i+1:]...)
	return nil
}

// MoveField swaps a field with its neighbour; delta < 0 moves it up and
// delta > 0 moves it down. Moving past either end is a no-op. The title
// field stays at position 0.
func (c *Collection) MoveField(id string, delta int) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	if delta == 0 {
		return nil
	}
	j := i + 1
	if delta < 0 {
		j = i - 1
	}
	if i == 0 || j == 0 {
		return ErrTitleField
	}
	if j >= len(c.Fields) {
		return nil
	}
	c.Fields[i], c.Fields[j] = c.Fields[j], c.Fields[i]
	return nil
}
