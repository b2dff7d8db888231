package collection

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a ready-made schema a new collection can start from.
type Preset struct {
	Name        string
	Icon        string
	Color       Color
	Description string
	Fields      func() []*FieldDefinition
}

var presets = map[string]Preset{
	"films": {
		Name:        "Films",
		Icon:        "film",
		Color:       ColorRed,
		Description: "Movies watched and to watch.",
		Fields: func() []*FieldDefinition {
			return []*FieldDefinition{
				NewField("Director", FieldText),
				NewField("Year", FieldText),
				NewField("Rating", FieldRating),
				NewField("Status", FieldStatus, "To Watch", "Watching", "Watched"),
				NewField("Genres", FieldTags),
				NewField("Poster", FieldImage),
			}
		},
	},
	"books": {
		Name:        "Books",
		Icon:        "book",
		Color:       ColorAmber,
		Description: "Reading list.",
		Fields: func() []*FieldDefinition {
			return []*FieldDefinition{
				NewField("Author", FieldText),
				NewField("Rating", FieldRating),
				NewField("Status", FieldStatus, "To Read", "Reading", "Read"),
				NewField("Owned", FieldToggle),
				NewField("Notes", FieldLongText),
			}
		},
	},
	"games": {
		Name:  "Games",
		Icon:  "gamepad",
		Color: ColorPurple,
		Fields: func() []*FieldDefinition {
			return []*FieldDefinition{
				NewField("Platform", FieldSelect, "PC", "Switch", "PlayStation", "Xbox"),
				NewField("Rating", FieldRating),
				NewField("Status", FieldStatus, "Backlog", "Playing", "Finished"),
				NewField("Store", FieldURL),
			}
		},
	},
	"vinyl": {
		Name:  "Vinyl",
		Icon:  "disc",
		Color: ColorTeal,
		Fields: func() []*FieldDefinition {
			return []*FieldDefinition{
				NewField("Artist", FieldText),
				NewField("Released", FieldDate),
				NewField("Rating", FieldRating),
				NewField("Tags", FieldTags),
			}
		},
	},
}

// PresetNames returns the available preset keys, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FromPreset builds a new collection from the named preset. An empty name
// overrides nothing; otherwise it replaces the preset's display name.
func FromPreset(key, name string) (*Collection, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, fmt.Errorf("collection: unknown preset %q", key)
	}
	if strings.TrimSpace(name) == "" {
		name = p.Name
	}
	return New(name, p.Icon, p.Color, p.Description, p.Fields()...), nil
}
