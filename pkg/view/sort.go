package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/value"
)

// SortKey names an ordering. Unknown keys leave the order unchanged.
type SortKey string

const (
	DateAsc    SortKey = "date_asc"
	DateDesc   SortKey = "date_desc"
	TitleAsc   SortKey = "title_asc"
	TitleDesc  SortKey = "title_desc"
	RatingAsc  SortKey = "rating_asc"
	RatingDesc SortKey = "rating_desc"
	StatusAsc  SortKey = "status_asc"
)

// AllSortKeys lists the supported keys.
func AllSortKeys() []SortKey {
	return []SortKey{DateDesc, DateAsc, TitleAsc, TitleDesc, RatingDesc, RatingAsc, StatusAsc}
}

// ParseSortKey validates user input. An empty string means no sorting.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if k == "" {
		return "", nil
	}
	for _, candidate := range AllSortKeys() {
		if candidate == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("view: unknown sort %q", raw)
}

// Sort returns a stably sorted copy of items.
func Sort(lookup Lookup, items []*item.Item, key SortKey) []*item.Item {
	out := append([]*item.Item(nil), items...)
	less := lessFunc(lookup, key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(lookup Lookup, key SortKey) func(a, b *item.Item) bool {
	switch key {
	case DateAsc:
		return func(a, b *item.Item) bool { return a.Added().Before(b.Added()) }
	case DateDesc:
		return func(a, b *item.Item) bool { return a.Added().After(b.Added()) }
	case TitleAsc, TitleDesc:
		col := collate.New(language.English, collate.IgnoreCase)
		title := func(it *item.Item) string { return value.Title(lookup[it.CollectionID], it) }
		if key == TitleAsc {
			return func(a, b *item.Item) bool { return col.CompareString(title(a), title(b)) < 0 }
		}
		return func(a, b *item.Item) bool { return col.CompareString(title(a), title(b)) > 0 }
	case RatingAsc, RatingDesc:
		rating := func(it *item.Item) float64 {
			v, _ := value.FirstOfType(lookup[it.CollectionID], it, collection.FieldRating)
			return v.Number()
		}
		if key == RatingAsc {
			return func(a, b *item.Item) bool { return rating(a) < rating(b) }
		}
		return func(a, b *item.Item) bool { return rating(a) > rating(b) }
	case StatusAsc:
		status := func(it *item.Item) string {
			v, _ := value.FirstOfType(lookup[it.CollectionID], it, collection.FieldStatus)
			return v.Text()
		}
		return func(a, b *item.Item) bool { return status(a) < status(b) }
	default:
		return nil
	}
}
