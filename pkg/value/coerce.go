package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
)

// Coerce converts a raw stored value to the variant implied by the field
// type. It never fails; absent or malformed data yields the zero value.
func Coerce(t collection.FieldType, raw any) Value {
	switch t {
	case collection.FieldRating:
		return NumberOf(toNumber(raw))
	case collection.FieldToggle:
		return BoolOf(toBool(raw))
	case collection.FieldTags:
		return ListOf(toList(raw))
	default:
		return TextOf(Stringify(raw))
	}
}

// Resolve coerces the item's value for fieldID using the field's declared
// type in c. A field id the schema no longer declares is read as text.
func Resolve(c *collection.Collection, it *item.Item, fieldID string) Value {
	raw, _ := it.Value(fieldID)
	if f := c.Field(fieldID); f != nil {
		return Coerce(f.Type, raw)
	}
	return TextOf(Stringify(raw))
}

// FirstOfType resolves the item's value for the first field of type t in c.
// ok is false when the collection has no such field.
func FirstOfType(c *collection.Collection, it *item.Item, t collection.FieldType) (v Value, ok bool) {
	f := c.FirstFieldOfType(t)
	if f == nil {
		return Coerce(t, nil), false
	}
	raw, _ := it.Value(f.ID)
	return Coerce(t, raw), true
}

// Title returns the item's label: the coerced value of its collection's
// title field, or "" when the collection has no fields.
func Title(c *collection.Collection, it *item.Item) string {
	f := c.TitleField()
	if f == nil {
		return ""
	}
	raw, _ := it.Value(f.ID)
	return Coerce(f.Type, raw).Text()
}

// Stringify converts any stored value to text without consulting a schema.
// Lists are joined with commas.
func Stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = Stringify(p)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func toNumber(raw any) float64 {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case int32:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = f
	case bool:
		if v {
			n = 1
		}
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func toBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case nil:
		return false
	default:
		return toNumber(v) != 0
	}
}

func toList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return dedup(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, Stringify(p))
		}
		return dedup(parts)
	case string:
		return ParseTags(v)
	default:
		return dedup([]string{Stringify(v)})
	}
}

// dedup trims entries, drops empty ones and removes exact duplicates while
// keeping first-seen order.
func dedup(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
