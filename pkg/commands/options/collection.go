// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/collection"
)

var validate = validator.New()

// CollectionOptions captures the collection selection flag.
type CollectionOptions struct {
	Collection string
}

// AddCollectionArgs wires the --collection flag on the provided command.
func AddCollectionArgs(cmd *cobra.Command, o *CollectionOptions) {
	cmd.Flags().StringVarP(&o.Collection, "collection", "c", "",
		"Collection name or id.")
}

// CollectionInput carries the collection metadata flags.
type CollectionInput struct {
	Name        string `validate:"required,max=80"`
	Icon        string `validate:"max=40"`
	Color       string `validate:"omitempty,oneof=slate red orange amber green teal blue indigo purple pink"`
	Description string `validate:"max=500"`
	Preset      string
}

// AddCollectionInputArgs registers the metadata flags. Name comes from the
// positional argument.
func AddCollectionInputArgs(cmd *cobra.Command, o *CollectionInput) {
	colors := make([]string, 0, len(collection.AllColors()))
	for _, c := range collection.AllColors() {
		colors = append(colors, string(c))
	}
	cmd.Flags().StringVar(&o.Icon, "icon", "",
		"Icon name for the collection, see `stash icons`.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		fmt.Sprintf("Theme color, one of %s.", strings.Join(colors, ", ")))
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Short description.")
}

// AddPresetArgs registers the --preset flag.
func AddPresetArgs(cmd *cobra.Command, o *CollectionInput) {
	cmd.Flags().StringVar(&o.Preset, "preset", "",
		fmt.Sprintf("Start from a ready-made schema, one of %s.", strings.Join(collection.PresetNames(), ", ")))
}

// Validate checks the input after trimming.
func (o *CollectionInput) Validate() error {
	o.Name = strings.TrimSpace(o.Name)
	o.Color = strings.ToLower(strings.TrimSpace(o.Color))
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid collection: %w", err)
	}
	return nil
}
