// Package item defines the records stored inside collections.
package item

import (
	"time"
)

// Item is one record of a collection. FieldValues is keyed by field id and
// holds untyped values; their meaning comes from the owning collection's
// schema at read time. Keys for fields that no longer exist are kept.
type Item struct {
	ID           string         `json:"id" yaml:"id"`
	CollectionID string         `json:"collectionId" yaml:"collectionId"`
	DateAdded    Timestamp      `json:"dateAdded" yaml:"dateAdded"`
	IsFavorite   bool           `json:"isFavorite" yaml:"isFavorite"`
	FieldValues  map[string]any `json:"fieldValues" yaml:"fieldValues"`
}

// New returns an item for the collection with an empty value map.
func New(id, collectionID string) *Item {
	return &Item{
		ID:           id,
		CollectionID: collectionID,
		FieldValues:  make(map[string]any),
	}
}

// Added returns the creation time.
func (i *Item) Added() time.Time {
	return i.DateAdded.Time
}

// Value returns the raw stored value for a field id.
func (i *Item) Value(fieldID string) (any, bool) {
	if i == nil || i.FieldValues == nil {
		return nil, false
	}
	v, ok := i.FieldValues[fieldID]
	return v, ok
}

// Set stores a raw value for a field id. A nil value removes the key.
func (i *Item) Set(fieldID string, v any) {
	if i.FieldValues == nil {
		i.FieldValues = make(map[string]any)
	}
	if v == nil {
		delete(i.FieldValues, fieldID)
		return
	}
	i.FieldValues[fieldID] = v
}

// Clone returns a deep copy of the item. Slice and map values inside
// FieldValues are copied one level deep, which covers every shape the
// coercion rules produce.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	cp := *i
	cp.FieldValues = make(map[string]any, len(i.FieldValues))
	for k, v := range i.FieldValues {
		cp.FieldValues[k] = cloneValue(v)
	}
	return &cp
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		return append([]any(nil), t...)
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = vv
		}
		return m
	default:
		return v
	}
}
