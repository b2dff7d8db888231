package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/timeutil"
	"tableflip.dev/stash/pkg/view"
)

// ViewOptions are the pipeline inputs of `stash list`.
type ViewOptions struct {
	View   string
	Search string
	Sort   string
	Rated  bool
	Status []string
	Tag    string
	Since  string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	keys := make([]string, 0, len(view.AllSortKeys()))
	for _, k := range view.AllSortKeys() {
		keys = append(keys, string(k))
	}
	cmd.Flags().StringVar(&o.View, "view", "all",
		`Items to browse: "all", "favorites", or a collection name.`)
	cmd.Flags().StringVarP(&o.Search, "search", "q", "",
		"Case-insensitive text search over every field value.")
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		fmt.Sprintf("Sort order, one of %s.", strings.Join(keys, ", ")))
	cmd.Flags().BoolVar(&o.Rated, "rated", false,
		"Only items with a rating.")
	cmd.Flags().StringSliceVar(&o.Status, "status", nil,
		"Only items whose status is one of these values.")
	cmd.Flags().StringVar(&o.Tag, "tag", "",
		"Only items carrying this tag.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only items added within this age, example: --since 2w (h, d, w, mo, y).`)
}

// Filters builds the attribute filters the flags ask for. now anchors
// --since.
func (o *ViewOptions) Filters(now time.Time) ([]view.Filter, error) {
	var filters []view.Filter
	if o.Rated {
		filters = append(filters, view.HasRating{})
	}
	if len(o.Status) > 0 {
		filters = append(filters, view.StatusIn{Values: o.Status})
	}
	if t := strings.TrimSpace(o.Tag); t != "" {
		filters = append(filters, view.Tagged{Tag: t})
	}
	if o.Since != "" {
		since, err := timeutil.Since(now, o.Since)
		if err != nil {
			return nil, err
		}
		filters = append(filters, view.AddedSince{Since: since})
	}
	return filters, nil
}
