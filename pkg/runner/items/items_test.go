package items

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/store"
)

func init() {
	color.NoColor = true
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(store.NewConfig(t.TempDir(), store.BackendSQLite, ""))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	svc := &app.Service{Persistence: p}
	ctx := context.Background()
	if err := svc.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	films, _ := collection.FromPreset("films", "")
	if _, err := svc.CreateCollection(ctx, films); err != nil {
		t.Fatalf("create films: %v", err)
	}
	books, _ := collection.FromPreset("books", "")
	if _, err := svc.CreateCollection(ctx, books); err != nil {
		t.Fatalf("create books: %v", err)
	}
	return svc
}

func TestAddParsesValuesAgainstSchema(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	added := time.Date(2020, 2, 28, 0, 0, 0, 0, time.UTC)

	a := Add{
		Service:    svc,
		Out:        &bytes.Buffer{},
		Collection: "Films",
		Values:     [][2]string{{"Title", "Arrival"}, {"rating", "5"}, {"Genres", "sci-fi, drama, sci-fi"}},
		Favorite:   true,
		Added:      &added,
	}
	if err := a.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}

	it, err := Find(svc.State(), "arrival")
	if err != nil {
		t.Fatalf("find by title: %v", err)
	}
	c := svc.State().Collection(it.CollectionID)
	if got := it.FieldValues[c.FieldByName("Rating").ID]; got != 5 {
		t.Fatalf("expected rating 5, got %#v", got)
	}
	tags, _ := it.FieldValues[c.FieldByName("Genres").ID].([]string)
	if len(tags) != 2 {
		t.Fatalf("expected deduped tags, got %#v", it.FieldValues)
	}
	if !it.IsFavorite || !it.Added().Equal(added) {
		t.Fatalf("unexpected metadata %+v", it)
	}
	if ids := c.ItemIDs; len(ids) != 1 || ids[0] != it.ID {
		t.Fatalf("item ids not updated: %v", ids)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	cases := []Add{
		{Collection: "Stamps", Values: [][2]string{{"Title", "x"}}},
		{Collection: "Films", Values: [][2]string{{"Budget", "1"}}},
		{Collection: "Films", Values: [][2]string{{"Rating", "7"}}},
		{Collection: "Films", Values: [][2]string{{"Status", "Abandoned"}}},
	}
	for i, a := range cases {
		a.Service = svc
		a.Out = &bytes.Buffer{}
		if err := a.Do(ctx); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
	if n := len(svc.State().Items); n != 0 {
		t.Fatalf("expected no items, got %d", n)
	}

	err := (&Add{Service: svc, Collection: "Films", Values: [][2]string{{"Budget", "1"}}}).Do(ctx)
	if !errors.Is(err, collection.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestEditMovesBetweenCollections(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if err := (&Add{Service: svc, Out: &bytes.Buffer{}, Collection: "Films", Values: [][2]string{{"Title", "Dune"}}}).Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	it, _ := Find(svc.State(), "Dune")

	edit := Edit{Service: svc, Out: &bytes.Buffer{}, Item: it.ID[:8], MoveTo: "Books", Values: [][2]string{{"Author", "Frank Herbert"}}}
	if err := edit.Do(ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	st := svc.State()
	films, books := st.CollectionByName("Films"), st.CollectionByName("Books")
	if len(films.ItemIDs) != 0 || len(books.ItemIDs) != 1 || books.ItemIDs[0] != it.ID {
		t.Fatalf("item ids not moved: films=%v books=%v", films.ItemIDs, books.ItemIDs)
	}
	moved := st.Item(it.ID)
	if moved.CollectionID != books.ID || moved.FieldValues[books.FieldByName("Author").ID] != "Frank Herbert" {
		t.Fatalf("unexpected moved item %+v", moved)
	}
	if !moved.Added().Equal(it.Added()) {
		t.Fatal("date added changed on edit")
	}
}

func TestFavoriteDeleteAndShow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, title := range []string{"Heat", "Ronin"} {
		if err := (&Add{Service: svc, Out: &bytes.Buffer{}, Collection: "Films", Values: [][2]string{{"Title", title}, {"Rating", "4"}}}).Do(ctx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if err := (&Favorite{Service: svc, Out: &bytes.Buffer{}, Item: "heat"}).Do(ctx); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	heat, _ := Find(svc.State(), "Heat")
	if !heat.IsFavorite {
		t.Fatal("favorite not toggled")
	}

	var out bytes.Buffer
	if err := (&Show{Service: svc, Out: &out, Item: "Heat", JSON: true}).Do(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	var doc struct {
		IsFavorite bool                   `json:"isFavorite"`
		Fields     map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode show output: %v\n%s", err, out.String())
	}
	if !doc.IsFavorite || doc.Fields["Rating"] != float64(4) || doc.Fields["Title"] != "Heat" {
		t.Fatalf("unexpected show output %+v", doc)
	}

	out.Reset()
	if err := (&Show{Service: svc, Out: &out, Item: "Ronin"}).Do(ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "★★★★☆") {
		t.Fatalf("expected stars in detail:\n%s", out.String())
	}

	del := Delete{Service: svc, Out: &bytes.Buffer{}, Items: []string{"Heat", "missing"}}
	if err := del.Do(ctx); err == nil {
		t.Fatal("expected error for the unknown reference")
	}
	st := svc.State()
	if len(st.Items) != 1 || len(st.CollectionByName("Films").ItemIDs) != 1 {
		t.Fatalf("expected one item left, got %d", len(st.Items))
	}
}
