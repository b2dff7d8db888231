package view

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/state"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func filmsCollection() *collection.Collection {
	return &collection.Collection{
		ID:   "films",
		Name: "Films",
		Fields: []*collection.FieldDefinition{
			{ID: "f-title", Name: "Title", Type: collection.FieldText},
			{ID: "f-rating", Name: "Rating", Type: collection.FieldRating},
			{ID: "f-director", Name: "Director", Type: collection.FieldText},
			{ID: "f-status", Name: "Status", Type: collection.FieldStatus, Options: []string{"To Watch", "Watched"}},
		},
	}
}

func booksCollection() *collection.Collection {
	return &collection.Collection{
		ID:   "books",
		Name: "Books",
		Fields: []*collection.FieldDefinition{
			{ID: "b-name", Name: "Name", Type: collection.FieldText},
			{ID: "b-stars", Name: "Stars", Type: collection.FieldRating},
			{ID: "b-tags", Name: "Tags", Type: collection.FieldTags},
		},
	}
}

func save(s *state.State, id, col string, at time.Time, values map[string]any) *state.State {
	it := item.New(id, col)
	for k, v := range values {
		it.Set(k, v)
	}
	it.DateAdded = item.Timestamp{Time: at}
	return state.SaveItem(s, it, at)
}

func ids(items []*item.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// fixture: Films A (Interstellar, 5, Nolan, Watched), B (Past Lives, 4,
// To Watch), Books C (Dune, 3 stars, favorite), plus an orphan D.
func fixture() *state.State {
	s := state.CreateCollection(state.Default(), filmsCollection())
	s = state.CreateCollection(s, booksCollection())
	s = save(s, "A", "films", t0, map[string]any{
		"f-title": "Interstellar", "f-rating": 5.0, "f-director": "Christopher Nolan", "f-status": "Watched",
	})
	s = save(s, "B", "films", t0.Add(time.Hour), map[string]any{
		"f-title": "Past Lives", "f-rating": 4.0, "f-status": "To Watch",
	})
	s = save(s, "C", "books", t0.Add(2*time.Hour), map[string]any{
		"b-name": "Dune", "b-stars": "3", "b-tags": []any{"sci-fi", "classic"},
	})
	s = state.ToggleFavorite(s, "C")
	s = save(s, "D", "ghost", t0.Add(3*time.Hour), map[string]any{"x": "Nolan's lost item"})
	return s
}

func TestFilmsScenarioSorts(t *testing.T) {
	s := fixture()
	for _, key := range []SortKey{RatingDesc, DateAsc, TitleAsc} {
		got := ids(Apply(s, Options{Selector: ForCollection("films"), Sort: key}))
		if diff := cmp.Diff([]string{"A", "B"}, got); diff != "" {
			t.Fatalf("%s order mismatch (-want +got):\n%s", key, diff)
		}
	}
	got := ids(Apply(s, Options{Selector: ForCollection("films"), Sort: TitleDesc}))
	if diff := cmp.Diff([]string{"B", "A"}, got); diff != "" {
		t.Fatalf("title_desc order mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchScenario(t *testing.T) {
	s := fixture()
	got := ids(Apply(s, Options{Selector: ForCollection("films"), Query: "nolan"}))
	if diff := cmp.Diff([]string{"A"}, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
	got = ids(Apply(s, Options{Selector: All, Query: "NOLAN"}))
	if diff := cmp.Diff([]string{"D", "A"}, got); diff != "" {
		t.Fatalf("all-view search mismatch (-want +got):\n%s", diff)
	}
	got = ids(Apply(s, Options{Query: "sci-fi"}))
	if diff := cmp.Diff([]string{"C"}, got); diff != "" {
		t.Fatalf("tag search mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusFilterScenario(t *testing.T) {
	s := fixture()
	got := ids(Apply(s, Options{Filters: []Filter{StatusIn{Values: []string{"Watched"}}}}))
	if diff := cmp.Diff([]string{"A"}, got); diff != "" {
		t.Fatalf("status filter mismatch (-want +got):\n%s", diff)
	}
}

func TestHasRatingFilterUsesOwnSchema(t *testing.T) {
	s := fixture()
	s = save(s, "E", "films", t0.Add(4*time.Hour), map[string]any{"f-title": "Unrated"})
	got := ids(Apply(s, Options{Filters: []Filter{HasRating{}}, Sort: RatingDesc}))
	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Fatalf("rating filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFiltersExcludeUnresolvableItems(t *testing.T) {
	s := fixture()
	got := ids(Apply(s, Options{Filters: []Filter{Tagged{Tag: "sci-fi"}}}))
	if diff := cmp.Diff([]string{"C"}, got); diff != "" {
		t.Fatalf("tag filter mismatch (-want +got):\n%s", diff)
	}
	all := ids(Apply(s, Options{}))
	if diff := cmp.Diff([]string{"D", "C", "B", "A"}, all); diff != "" {
		t.Fatalf("orphan should stay in the all view (-want +got):\n%s", diff)
	}
}

func TestNarrow(t *testing.T) {
	s := fixture()
	if diff := cmp.Diff([]string{"C"}, ids(Apply(s, Options{Selector: Favorites}))); diff != "" {
		t.Fatalf("favorites mismatch (-want +got):\n%s", diff)
	}
	if got := Apply(s, Options{Selector: ForCollection("nope")}); len(got) != 0 {
		t.Fatalf("unknown collection should select nothing, got %v", ids(got))
	}
}

func TestStagesAreMonotonic(t *testing.T) {
	s := fixture()
	lookup := Lookup(s.Lookup())
	queries := []string{"", "o", "nolan", "zzz"}
	selectors := []Selector{All, Favorites, ForCollection("films"), ForCollection("books")}
	filters := [][]Filter{nil, {HasRating{}}, {StatusIn{Values: []string{"To Watch"}}}, {HasRating{}, Tagged{Tag: "classic"}}}

	for _, sel := range selectors {
		narrowed := Narrow(s.ItemList(), sel)
		for _, q := range queries {
			searched := Search(narrowed, q)
			assertSubset(t, searched, narrowed)
			for _, fs := range filters {
				filtered := FilterBy(lookup, searched, fs...)
				assertSubset(t, filtered, searched)
			}
		}
	}
}

func assertSubset(t *testing.T, sub, super []*item.Item) {
	t.Helper()
	in := map[string]struct{}{}
	for _, it := range super {
		in[it.ID] = struct{}{}
	}
	for _, it := range sub {
		if _, ok := in[it.ID]; !ok {
			t.Fatalf("%s is not in the previous stage's output", it.ID)
		}
	}
}

func TestDateSortsAreReverses(t *testing.T) {
	s := fixture()
	asc := ids(Apply(s, Options{Sort: DateAsc}))
	desc := ids(Apply(s, Options{Sort: DateDesc}))
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("date_asc %v is not the reverse of date_desc %v", asc, desc)
		}
	}
}

func TestSortIsStableForTies(t *testing.T) {
	s := state.CreateCollection(state.Default(), filmsCollection())
	for _, id := range []string{"x", "y", "z"} {
		s = save(s, id, "films", t0, map[string]any{"f-rating": 3.0})
	}
	in := s.ItemList()
	lookup := Lookup(s.Lookup())
	for _, key := range []SortKey{RatingAsc, RatingDesc, DateAsc, DateDesc, StatusAsc, TitleAsc, "bogus"} {
		if diff := cmp.Diff(ids(in), ids(Sort(lookup, in, key))); diff != "" {
			t.Fatalf("%s reordered ties (-want +got):\n%s", key, diff)
		}
	}
}

func TestTitleSortIsLocaleAware(t *testing.T) {
	s := state.CreateCollection(state.Default(), filmsCollection())
	s = save(s, "1", "films", t0, map[string]any{"f-title": "zebra"})
	s = save(s, "2", "films", t0.Add(time.Minute), map[string]any{"f-title": "Émile"})
	s = save(s, "3", "films", t0.Add(2*time.Minute), map[string]any{"f-title": "apple"})
	got := ids(Apply(s, Options{Sort: TitleAsc}))
	if diff := cmp.Diff([]string{"3", "2", "1"}, got); diff != "" {
		t.Fatalf("title collation mismatch (-want +got):\n%s", diff)
	}
}

func TestMixedSchemaSortUsesEachCollectionsFields(t *testing.T) {
	s := fixture()
	got := ids(Apply(s, Options{Sort: RatingAsc}))
	// D is an orphan and sorts as rating 0.
	if diff := cmp.Diff([]string{"D", "C", "B", "A"}, got); diff != "" {
		t.Fatalf("mixed rating sort mismatch (-want +got):\n%s", diff)
	}
	got = ids(Apply(s, Options{Sort: TitleAsc}))
	if diff := cmp.Diff([]string{"D", "C", "A", "B"}, got); diff != "" {
		t.Fatalf("mixed title sort mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailableValues(t *testing.T) {
	s := fixture()
	if diff := cmp.Diff([]string{"To Watch", "Watched"}, AvailableStatuses(s, Options{})); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
	narrowed := AvailableStatuses(s, Options{Query: "interstellar", Filters: []Filter{StatusIn{Values: []string{"To Watch"}}}})
	if diff := cmp.Diff([]string{"Watched"}, narrowed); diff != "" {
		t.Fatalf("statuses should follow search, not filters (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"classic", "sci-fi"}, AvailableTags(s, Options{})); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHelpers(t *testing.T) {
	s := fixture()
	if sel, err := ParseSelector(s, "Films"); err != nil || sel != ForCollection("films") {
		t.Fatalf("ParseSelector by name: %v %v", sel, err)
	}
	if sel, err := ParseSelector(s, "favorites"); err != nil || sel != Favorites {
		t.Fatalf("ParseSelector favorites: %v %v", sel, err)
	}
	if _, err := ParseSelector(s, "Stamps"); err == nil {
		t.Fatalf("expected unknown collection error")
	}
	if _, err := ParseSortKey("by_vibes"); err == nil {
		t.Fatalf("expected unknown sort error")
	}
	if c := ActiveCollection(s, ForCollection("books")); c == nil || c.Name != "Books" {
		t.Fatalf("ActiveCollection = %+v", c)
	}
	if c := ActiveCollection(s, All); c != nil {
		t.Fatalf("expected no active collection for all view")
	}
}

func TestAddedSinceFilter(t *testing.T) {
	s := fixture()
	got := ids(Apply(s, Options{Filters: []Filter{AddedSince{Since: t0.Add(time.Hour)}}}))
	if diff := cmp.Diff([]string{"C", "B"}, got); diff != "" {
		t.Fatalf("added since mismatch (-want +got):\n%s", diff)
	}
}

func TestWhitespaceQueryIsMatched(t *testing.T) {
	s := fixture()
	got := ids(Apply(s, Options{Query: " "}))
	if diff := cmp.Diff([]string{"D", "B", "A"}, got); diff != "" {
		t.Fatalf("whitespace search mismatch (-want +got):\n%s", diff)
	}
	if got := Search(s.ItemList(), ""); len(got) != len(s.Items) {
		t.Fatalf("empty query should keep all %d items, got %d", len(s.Items), len(got))
	}
}

func TestTitleSortIgnoresCase(t *testing.T) {
	s := state.CreateCollection(state.Default(), filmsCollection())
	s = save(s, "a", "films", t0, map[string]any{"f-title": "Banana"})
	s = save(s, "b", "films", t0.Add(time.Minute), map[string]any{"f-title": "apple"})
	s = save(s, "c", "films", t0.Add(2*time.Minute), map[string]any{"f-title": "Apple"})
	got := ids(Apply(s, Options{Sort: TitleAsc}))
	if diff := cmp.Diff([]string{"c", "b", "a"}, got); diff != "" {
		t.Fatalf("case-insensitive title sort mismatch (-want +got):\n%s", diff)
	}
}
