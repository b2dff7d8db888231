// Package value turns untyped stored field values into typed values using
// the declaring field's type. Every conversion is total: missing or
// malformed data yields the type's zero value instead of an error.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// Text holds a string.
	Text Kind = iota
	// Number holds a float64.
	Number
	// Bool holds a boolean.
	Bool
	// List holds an ordered list of strings.
	List
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a coerced field value. Only the member matching Kind is set.
type Value struct {
	Kind Kind
	text string
	num  float64
	b    bool
	list []string
}

// TextOf returns a Text value.
func TextOf(s string) Value { return Value{Kind: Text, text: s} }

// NumberOf returns a Number value.
func NumberOf(n float64) Value { return Value{Kind: Number, num: n} }

// BoolOf returns a Bool value.
func BoolOf(b bool) Value { return Value{Kind: Bool, b: b} }

// ListOf returns a List value.
func ListOf(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: List, list: items}
}

// Text returns the string form of the value regardless of kind.
func (v Value) Text() string {
	switch v.Kind {
	case Text:
		return v.text
	case Number:
		return formatNumber(v.num)
	case Bool:
		return strconv.FormatBool(v.b)
	case List:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Number returns the numeric form; non-number kinds yield 0.
func (v Value) Number() float64 {
	if v.Kind == Number {
		return v.num
	}
	return 0
}

// Bool returns the boolean form; non-bool kinds yield false.
func (v Value) Bool() bool {
	if v.Kind == Bool {
		return v.b
	}
	return false
}

// List returns the list form; non-list kinds yield nil.
func (v Value) List() []string {
	if v.Kind == List {
		return v.list
	}
	return nil
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Text()
}

// IsZero reports whether the value is the zero value of its kind.
func (v Value) IsZero() bool {
	switch v.Kind {
	case Text:
		return v.text == ""
	case Number:
		return v.num == 0
	case Bool:
		return !v.b
	case List:
		return len(v.list) == 0
	default:
		return true
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
