package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/stash/pkg/collection"
)

var validate = validator.New()

// ParseTags splits comma-delimited input into a tag list: entries are
// trimmed, empty entries dropped and exact duplicates removed.
func ParseTags(raw string) []string {
	return dedup(strings.Split(raw, ","))
}

// ParseRating parses a star rating and checks it is within 1-5.
func ParseRating(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("value: rating %q is not a whole number", raw)
	}
	if err := validate.Var(n, "min=1,max=5"); err != nil {
		return 0, fmt.Errorf("value: rating must be between 1 and 5, got %d", n)
	}
	return n, nil
}

// ParseInput converts user input for a field into the value to store. A
// blank input yields nil, which clears the field.
func ParseInput(f *collection.FieldDefinition, raw string) (any, error) {
	if f == nil {
		return nil, fmt.Errorf("value: no field")
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	switch f.Type {
	case collection.FieldRating:
		return ParseRating(trimmed)
	case collection.FieldToggle:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("value: %s expects true or false, got %q", f.Name, raw)
		}
		return b, nil
	case collection.FieldTags:
		return ParseTags(trimmed), nil
	case collection.FieldStatus, collection.FieldSelect:
		if len(f.Options) > 0 && !f.HasOption(trimmed) {
			return nil, fmt.Errorf("value: %q is not an option of %s (%s)", trimmed, f.Name, strings.Join(f.Options, ", "))
		}
		return trimmed, nil
	case collection.FieldURL:
		if err := validate.Var(trimmed, "url"); err != nil {
			return nil, fmt.Errorf("value: %s expects a URL, got %q", f.Name, raw)
		}
		return trimmed, nil
	case collection.FieldDate:
		if err := validate.Var(trimmed, "datetime=2006-01-02"); err != nil {
			return nil, fmt.Errorf("value: %s expects a YYYY-MM-DD date, got %q", f.Name, raw)
		}
		return trimmed, nil
	case collection.FieldLongText:
		return strings.TrimRight(raw, " \t\r\n"), nil
	default:
		return trimmed, nil
	}
}
