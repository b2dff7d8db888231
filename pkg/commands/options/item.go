package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO = "2006-1-2"
)

// ItemOptions carries field values given on the command line.
type ItemOptions struct {
	Set      []string
	Favorite bool
	Added    string
}

func AddItemArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().StringArrayVarP(&o.Set, "set", "s", nil,
		`Set a field value, example: --set "Rating=4". An empty value clears the field.`)
}

func AddFavoriteArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().BoolVar(&o.Favorite, "fav", false,
		"Mark the item as a favorite.")
}

func AddAddedArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().StringVar(&o.Added, "added", "",
		`Backdate the item, example: --added="2020-2-28".`)
}

// Assignments splits the --set flags into field name and raw value pairs,
// in the order given.
func (o *ItemOptions) Assignments() ([][2]string, error) {
	out := make([][2]string, 0, len(o.Set))
	for _, s := range o.Set {
		name, raw, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected field=value, got %q", s)
		}
		out = append(out, [2]string{name, raw})
	}
	return out, nil
}

// GetAdded parses --added. Nil means not set.
func (o *ItemOptions) GetAdded() (*time.Time, error) {
	if o.Added == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.Added, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
