package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/state"
	"tableflip.dev/stash/pkg/store"
	"tableflip.dev/stash/pkg/view"
)

type memoryPersistence struct {
	mu       sync.Mutex
	data     []byte
	writes   int
	writeErr error
}

func newMemoryPersistence(data string) *memoryPersistence {
	mp := &memoryPersistence{}
	if data != "" {
		mp.data = []byte(data)
	}
	return mp
}

func (m *memoryPersistence) Read(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memoryPersistence) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) Location() string { return "memory" }

func (m *memoryPersistence) Close() error { return nil }

func (m *memoryPersistence) stored(t *testing.T) *state.State {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := state.Decode(m.data)
	if err != nil {
		t.Fatalf("decode stored state: %v", err)
	}
	return st
}

func newService(t *testing.T, mp *memoryPersistence) *Service {
	t.Helper()
	var (
		n     int
		clock = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	)
	svc := &Service{
		Persistence: mp,
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
	if err := svc.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc
}

func filmsCollection() *collection.Collection {
	return &collection.Collection{
		Name: "Films",
		Fields: []*collection.FieldDefinition{
			{ID: "title", Name: "Title", Type: collection.FieldText},
			{ID: "rating", Name: "Rating", Type: collection.FieldRating},
			{ID: "status", Name: "Status", Type: collection.FieldStatus, Options: []string{"To Watch", "Watched"}},
		},
	}
}

func addFilm(t *testing.T, svc *Service, colID, title string, rating int, status string) *item.Item {
	t.Helper()
	it := item.New("", colID)
	it.Set("title", title)
	if rating > 0 {
		it.Set("rating", rating)
	}
	if status != "" {
		it.Set("status", status)
	}
	saved, err := svc.SaveItem(context.Background(), it)
	if err != nil {
		t.Fatalf("save %s: %v", title, err)
	}
	return saved
}

func TestOpenEmptyStoreYieldsDefault(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)

	st := svc.State()
	if len(st.Collections) != 0 || len(st.Items) != 0 || st.DarkMode {
		t.Fatalf("expected empty default state, got %+v", st)
	}
	if svc.Notice() != nil {
		t.Fatalf("expected no notice for an empty store")
	}
	if mp.writes != 0 {
		t.Fatalf("open must not write, got %d writes", mp.writes)
	}
	if got := svc.View().Selector; got != view.All {
		t.Fatalf("expected all view, got %q", got)
	}
}

func TestOpenCorruptStoreFailsClosed(t *testing.T) {
	mp := newMemoryPersistence(`{"collections": [`)
	svc := newService(t, mp)

	if st := svc.State(); len(st.Collections) != 0 || len(st.Items) != 0 {
		t.Fatalf("expected default state, got %+v", st)
	}
	if svc.Notice() == nil {
		t.Fatal("expected a notice about the unreadable state")
	}
	if svc.Notice() != nil {
		t.Fatal("notice should be reported once")
	}
}

func TestOpenWithoutPersistence(t *testing.T) {
	svc := &Service{}
	if err := svc.Open(context.Background()); err == nil {
		t.Fatal("expected error without persistence")
	}
	if _, err := svc.ToggleDarkMode(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, filmsCollection())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	it := addFilm(t, svc, c.ID, "Arrival", 5, "Watched")
	if _, err := svc.ToggleFavorite(ctx, it.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	dark, err := svc.ToggleDarkMode(ctx)
	if err != nil || !dark {
		t.Fatalf("dark mode: %v %v", dark, err)
	}
	if mp.writes != 4 {
		t.Fatalf("expected 4 writes, got %d", mp.writes)
	}

	stored := mp.stored(t)
	if !stored.DarkMode {
		t.Fatal("dark mode not persisted")
	}
	got := stored.Item(it.ID)
	if got == nil || !got.IsFavorite {
		t.Fatalf("favorite not persisted: %+v", got)
	}
	if ids := stored.Collection(c.ID).ItemIDs; len(ids) != 1 || ids[0] != it.ID {
		t.Fatalf("unexpected persisted item ids %v", ids)
	}

	reopened := newService(t, mp)
	if reopened.State().Item(it.ID) == nil {
		t.Fatal("item missing after reopen")
	}
}

func TestNoOpMutationDoesNotWrite(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	ctx := context.Background()

	if err := svc.DeleteItem(ctx, "missing"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if err := svc.DeleteCollection(ctx, "missing"); err != nil {
		t.Fatalf("delete unknown collection: %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, "missing"); err != nil {
		t.Fatalf("favorite unknown: %v", err)
	}
	if mp.writes != 0 {
		t.Fatalf("expected no writes, got %d", mp.writes)
	}
}

func TestCreateCollectionSelectsIt(t *testing.T) {
	svc := newService(t, newMemoryPersistence(""))
	ctx := context.Background()

	if _, err := svc.CreateCollection(ctx, &collection.Collection{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	c, err := svc.CreateCollection(ctx, &collection.Collection{Name: "Books"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(c.Fields) != 1 || c.Fields[0].Name != collection.TitleFieldName {
		t.Fatalf("expected default title field, got %+v", c.Fields)
	}
	if got := svc.View().Selector; got != view.ForCollection(c.ID) {
		t.Fatalf("expected new collection selected, got %q", got)
	}
	if active := svc.ActiveCollection(); active == nil || active.ID != c.ID {
		t.Fatalf("unexpected active collection %+v", active)
	}
}

func TestDeleteCollectionCascadesAndResetsView(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	ctx := context.Background()

	films, _ := svc.CreateCollection(ctx, filmsCollection())
	books, _ := svc.CreateCollection(ctx, &collection.Collection{Name: "Books"})
	addFilm(t, svc, films.ID, "Arrival", 4, "")
	addFilm(t, svc, films.ID, "Heat", 3, "")
	kept := addFilm(t, svc, books.ID, "Dune", 0, "")

	svc.SetSelector(view.ForCollection(films.ID))
	if err := svc.DeleteCollection(ctx, films.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	st := svc.State()
	if st.Collection(films.ID) != nil {
		t.Fatal("collection still present")
	}
	if len(st.Items) != 1 || st.Item(kept.ID) == nil {
		t.Fatalf("expected only the book to remain, got %d items", len(st.Items))
	}
	if got := svc.View().Selector; got != view.All {
		t.Fatalf("expected view reset to all, got %q", got)
	}
	if errs := state.Check(mp.stored(t)); len(errs) != 0 {
		t.Fatalf("persisted state inconsistent: %v", errs)
	}
}

func TestDeleteOtherCollectionKeepsView(t *testing.T) {
	svc := newService(t, newMemoryPersistence(""))
	ctx := context.Background()

	films, _ := svc.CreateCollection(ctx, filmsCollection())
	books, _ := svc.CreateCollection(ctx, &collection.Collection{Name: "Books"})
	svc.SetSelector(view.ForCollection(films.ID))

	if err := svc.DeleteCollection(ctx, books.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.View().Selector; got != view.ForCollection(films.ID) {
		t.Fatalf("expected films view kept, got %q", got)
	}
}

func TestEditCollectionKeepsItems(t *testing.T) {
	svc := newService(t, newMemoryPersistence(""))
	ctx := context.Background()

	c, _ := svc.CreateCollection(ctx, filmsCollection())
	it := addFilm(t, svc, c.ID, "Arrival", 4, "")

	name := "Movies"
	empty := ""
	if err := svc.EditCollection(ctx, c.ID, state.Patch{Name: &empty}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if err := svc.EditCollection(ctx, c.ID, state.Patch{Name: &name}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got := svc.State().Collection(c.ID)
	if got.Name != "Movies" || len(got.ItemIDs) != 1 || got.ItemIDs[0] != it.ID {
		t.Fatalf("unexpected collection after edit %+v", got)
	}

	edited := got.Clone()
	if err := edited.RemoveField("status"); err != nil {
		t.Fatalf("remove field: %v", err)
	}
	edited.ItemIDs = nil
	if err := svc.UpdateCollection(ctx, edited); err != nil {
		t.Fatalf("update: %v", err)
	}
	got = svc.State().Collection(c.ID)
	if len(got.Fields) != 2 || len(got.ItemIDs) != 1 {
		t.Fatalf("unexpected collection after update %+v", got)
	}
}

func TestSaveItemIsIdempotent(t *testing.T) {
	svc := newService(t, newMemoryPersistence(""))
	ctx := context.Background()

	c, _ := svc.CreateCollection(ctx, filmsCollection())
	it := addFilm(t, svc, c.ID, "Arrival", 4, "")

	edit := it.Clone()
	edit.Set("title", "Arrival (2016)")
	saved, err := svc.SaveItem(ctx, edit)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !saved.Added().Equal(it.Added()) {
		t.Fatalf("date added changed on edit: %v != %v", saved.Added(), it.Added())
	}
	if ids := svc.State().Collection(c.ID).ItemIDs; len(ids) != 1 {
		t.Fatalf("expected single id after re-save, got %v", ids)
	}
}

func TestWriteErrorIsReturned(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	mp.writeErr = errors.New("disk full")

	_, err := svc.ToggleDarkMode(context.Background())
	if err == nil || !errors.Is(err, mp.writeErr) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if !svc.State().DarkMode {
		t.Fatal("in-memory state should keep the change")
	}
}

func TestOnChangeReceivesNewState(t *testing.T) {
	svc := newService(t, newMemoryPersistence(""))
	var seen []*state.State
	svc.OnChange(func(st *state.State) { seen = append(seen, st) })

	if _, err := svc.ToggleDarkMode(context.Background()); err != nil {
		t.Fatalf("dark mode: %v", err)
	}
	if err := svc.DeleteItem(context.Background(), "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(seen) != 1 || !seen[0].DarkMode {
		t.Fatalf("expected one notification with dark mode, got %d", len(seen))
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	other := newService(t, mp)

	if _, err := other.ToggleDarkMode(context.Background()); err != nil {
		t.Fatalf("dark mode: %v", err)
	}
	if svc.State().DarkMode {
		t.Fatal("state changed before reload")
	}
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !svc.State().DarkMode {
		t.Fatal("reload did not pick up the external write")
	}
}

func TestViewPipelineThroughService(t *testing.T) {
	svc := newService(t, newMemoryPersistence(""))
	ctx := context.Background()

	c, _ := svc.CreateCollection(ctx, filmsCollection())
	addFilm(t, svc, c.ID, "Heat", 3, "To Watch")
	addFilm(t, svc, c.ID, "Arrival", 5, "Watched")
	addFilm(t, svc, c.ID, "Memento", 0, "Watched")

	svc.SetSort(view.RatingDesc)
	svc.SetFilters(view.HasRating{})
	items := svc.Items()
	if len(items) != 2 || items[0].FieldValues["title"] != "Arrival" {
		t.Fatalf("unexpected items %v", titles(items))
	}

	svc.SetFilters(view.StatusIn{Values: []string{"Watched"}})
	svc.SetSort(view.TitleAsc)
	items = svc.Items()
	if len(items) != 2 || items[0].FieldValues["title"] != "Arrival" || items[1].FieldValues["title"] != "Memento" {
		t.Fatalf("unexpected items %v", titles(items))
	}

	statuses := svc.AvailableStatuses()
	if len(statuses) != 2 || statuses[0] != "To Watch" || statuses[1] != "Watched" {
		t.Fatalf("unexpected statuses %v", statuses)
	}

	svc.SetQuery("mem")
	if got := svc.Items(); len(got) != 1 {
		t.Fatalf("expected one search hit, got %v", titles(got))
	}
	if got := svc.AvailableStatuses(); len(got) != 1 || got[0] != "Watched" {
		t.Fatalf("unexpected statuses after search %v", got)
	}
}

func titles(items []*item.Item) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.FieldValues["title"])
	}
	return out
}

func TestCreateCollectionPinsTitle(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	ctx := context.Background()

	c, err := svc.CreateCollection(ctx, &collection.Collection{
		Name:   "Films",
		Fields: []*collection.FieldDefinition{{ID: "rating", Name: "Rating", Type: collection.FieldRating}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(c.Fields) != 2 || c.Fields[0].Name != collection.TitleFieldName || c.Fields[0].Type != collection.FieldText {
		t.Fatalf("expected Title first, got %+v", c.Fields)
	}
	if c.Fields[1].ID != "rating" {
		t.Fatalf("expected Rating second, got %+v", c.Fields[1])
	}

	writes := mp.writes
	_, err = svc.CreateCollection(ctx, &collection.Collection{
		Name: "Books",
		Fields: []*collection.FieldDefinition{
			{ID: "dup", Name: "Author", Type: collection.FieldText},
			{ID: "dup", Name: "Year", Type: collection.FieldText},
		},
	})
	if !errors.Is(err, collection.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
	if mp.writes != writes || len(svc.State().Collections) != 1 {
		t.Fatalf("rejected collection was stored")
	}
}

func TestEditCollectionRejectsSchemaWithoutTitle(t *testing.T) {
	mp := newMemoryPersistence("")
	svc := newService(t, mp)
	ctx := context.Background()
	c, _ := svc.CreateCollection(ctx, filmsCollection())
	writes := mp.writes

	author := []*collection.FieldDefinition{{ID: "author", Name: "Author", Type: collection.FieldText}}
	if err := svc.EditCollection(ctx, c.ID, state.Patch{Fields: author}); !errors.Is(err, collection.ErrTitleField) {
		t.Fatalf("expected ErrTitleField from edit, got %v", err)
	}

	edited := svc.State().Collection(c.ID).Clone()
	edited.Fields = edited.Fields[1:]
	if err := svc.UpdateCollection(ctx, edited); !errors.Is(err, collection.ErrTitleField) {
		t.Fatalf("expected ErrTitleField from update, got %v", err)
	}

	dup := svc.State().Collection(c.ID).Clone()
	dup.Fields[2].ID = dup.Fields[1].ID
	if err := svc.UpdateCollection(ctx, dup); !errors.Is(err, collection.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField from update, got %v", err)
	}

	got := svc.State().Collection(c.ID)
	if got.Fields[0].ID != "title" || len(got.Fields) != 3 {
		t.Fatalf("schema changed: %+v", got.Fields)
	}
	if mp.writes != writes {
		t.Fatalf("expected no writes, got %d", mp.writes-writes)
	}
}
