// Package collection defines the schema side of stash: collections and the
// typed fields their items are keyed by.
package collection

import (
	"errors"
	"fmt"
	"strings"
)

// FieldType identifies how a field's stored value should be interpreted.
type FieldType string

const (
	// FieldText is a single line of text.
	FieldText FieldType = "text"
	// FieldLongText is free-form multi-line text.
	FieldLongText FieldType = "longtext"
	// FieldURL is a link.
	FieldURL FieldType = "url"
	// FieldImage is an image reference (usually a URL).
	FieldImage FieldType = "image"
	// FieldDate is a calendar date kept as text.
	FieldDate FieldType = "date"
	// FieldStatus is an enumerated progress value (e.g. "To Watch").
	FieldStatus FieldType = "status"
	// FieldSelect is an enumerated choice.
	FieldSelect FieldType = "select"
	// FieldRating is a 1-5 star rating.
	FieldRating FieldType = "rating"
	// FieldToggle is a yes/no flag.
	FieldToggle FieldType = "toggle"
	// FieldTags is an ordered list of labels.
	FieldTags FieldType = "tags"
)

// AllFieldTypes returns the list of supported field types.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldText,
		FieldLongText,
		FieldURL,
		FieldImage,
		FieldDate,
		FieldStatus,
		FieldSelect,
		FieldRating,
		FieldToggle,
		FieldTags,
	}
}

// ParseFieldType converts a string to a FieldType or returns an error for
// unknown values. An empty string parses as FieldText.
func ParseFieldType(raw string) (FieldType, error) {
	t := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return FieldText, nil
	}
	for _, candidate := range AllFieldTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return FieldText, fmt.Errorf("collection: unknown field type %q", raw)
}

// MustFieldType parses the input and panics on error. Intended for tests/presets.
func MustFieldType(raw string) FieldType {
	t, err := ParseFieldType(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Enumerated reports whether the type carries an option list.
func (t FieldType) Enumerated() bool {
	return t == FieldStatus || t == FieldSelect
}

// Color is a theme key for a collection.
type Color string

const (
	ColorSlate  Color = "slate"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorAmber  Color = "amber"
	ColorGreen  Color = "green"
	ColorTeal   Color = "teal"
	ColorBlue   Color = "blue"
	ColorIndigo Color = "indigo"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
)

// DefaultColor is used when no color was chosen.
const DefaultColor = ColorIndigo

// DefaultIcon is used when no icon was chosen.
const DefaultIcon = "folder"

// AllColors returns the theme keys in display order.
func AllColors() []Color {
	return []Color{
		ColorSlate,
		ColorRed,
		ColorOrange,
		ColorAmber,
		ColorGreen,
		ColorTeal,
		ColorBlue,
		ColorIndigo,
		ColorPurple,
		ColorPink,
	}
}

// ParseColor converts a string to a Color. An empty string yields DefaultColor.
func ParseColor(raw string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return DefaultColor, nil
	}
	for _, candidate := range AllColors() {
		if candidate == c {
			return candidate, nil
		}
	}
	return DefaultColor, fmt.Errorf("collection: unknown color %q", raw)
}

var (
	// ErrTitleField is returned when an edit would remove or move the title field.
	ErrTitleField = errors.New("collection: the title field cannot be removed or moved")
	// ErrDuplicateField is returned when a schema repeats or omits a field id.
	ErrDuplicateField = errors.New("collection: duplicate field id")
	// ErrFieldNotFound is returned when a field id does not exist in the collection.
	ErrFieldNotFound = errors.New("collection: field not found")
	// ErrNotEnumerated is returned when options are edited on a non-enumerated field.
	ErrNotEnumerated = errors.New("collection: field does not take options")
)
