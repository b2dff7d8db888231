package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/state"
	"tableflip.dev/stash/pkg/store"
	"tableflip.dev/stash/pkg/view"
)

// Service owns the stash state and is the only way to change it. Every
// mutation swaps in a new aggregate, writes it to Persistence and then
// notifies OnChange subscribers. The view inputs held next to the state
// are not persisted.
type Service struct {
	Persistence store.Persistence
	Logger      *zap.Logger
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string

	mu        sync.RWMutex
	state     *state.State
	view      view.Options
	notice    error
	listeners []func(*state.State)
}

var (
	// ErrNotOpen is returned by mutations before Open succeeded.
	ErrNotOpen = errors.New("app: service not opened")
	// ErrNameRequired is returned when a collection has no name.
	ErrNameRequired = errors.New("app: collection name required")
)

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

// Open loads the state from Persistence. An empty store yields the default
// state. A document that cannot be decoded also yields the default state;
// the decode error is kept as a one-time Notice instead of being returned.
func (s *Service) Open(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	st := state.Default()
	var notice error

	data, err := s.Persistence.Read(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger().Debug("no stored state, starting empty", zap.String("location", s.Persistence.Location()))
	case err != nil:
		return err
	default:
		decoded, decodeErr := state.Decode(data)
		if decodeErr != nil {
			s.logger().Warn("stored state is unreadable, starting empty",
				zap.String("location", s.Persistence.Location()),
				zap.Error(decodeErr))
			notice = fmt.Errorf("app: stored state was unreadable and has been reset: %w", decodeErr)
		} else {
			st = decoded
		}
	}

	s.mu.Lock()
	s.state = st
	s.notice = notice
	if s.view.Selector == "" {
		s.view.Selector = view.All
	}
	s.mu.Unlock()
	return nil
}

// Reload re-reads the state, e.g. after another process wrote it, and
// notifies subscribers.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()
	s.notify(st)
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// Follow reloads the state whenever storage changes until ctx is done.
func (s *Service) Follow(ctx context.Context) error {
	events, err := s.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.Reload(ctx); err != nil {
				s.logger().Warn("reload after change failed", zap.Error(err))
			}
		}
	}
}

// OnChange registers fn to be called with the new state after every
// mutation and reload.
func (s *Service) OnChange(fn func(*state.State)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Service) notify(st *state.State) {
	s.mu.RLock()
	listeners := append([]func(*state.State){}, s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(st)
	}
}

// State returns the current aggregate. Callers must treat it as read-only.
func (s *Service) State() *state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Notice returns the load-time notice, if any, and clears it.
func (s *Service) Notice() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = nil
	return n
}

// apply runs fn against the current state and commits its result. fn
// returning the same pointer means nothing changed and nothing is written.
func (s *Service) apply(ctx context.Context, op string, fn func(*state.State) *state.State) (*state.State, error) {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return nil, ErrNotOpen
	}
	prev := s.state
	next := fn(prev)
	if next == prev {
		s.mu.Unlock()
		return prev, nil
	}
	s.state = next
	err := s.persist(ctx, next)
	s.mu.Unlock()

	s.logger().Debug("state committed",
		zap.String("op", op),
		zap.Int("collections", len(next.Collections)),
		zap.Int("items", len(next.Items)),
		zap.Error(err))
	s.notify(next)
	return next, err
}

func (s *Service) persist(ctx context.Context, st *state.State) error {
	data, err := state.Encode(st)
	if err != nil {
		return fmt.Errorf("app: encode state: %w", err)
	}
	if err := s.Persistence.Write(ctx, data); err != nil {
		return fmt.Errorf("app: save state: %w", err)
	}
	return nil
}

// CreateCollection adds c and selects it as the active view. An empty id
// is filled in and the schema gets the Title field at position 0. Duplicate
// field ids are rejected.
func (s *Service) CreateCollection(ctx context.Context, c *collection.Collection) (*collection.Collection, error) {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return nil, ErrNameRequired
	}
	nc := c.Clone()
	nc.Name = strings.TrimSpace(nc.Name)
	if nc.ID == "" {
		nc.ID = s.newID()
	}
	nc.Fields = collection.PinTitle(nc.Fields...)
	if err := collection.ValidateFields(nc.Fields); err != nil {
		return nil, err
	}
	if _, err := s.apply(ctx, "createCollection", func(st *state.State) *state.State {
		return state.CreateCollection(st, nc)
	}); err != nil {
		return nil, err
	}
	s.SetSelector(view.ForCollection(nc.ID))
	return s.State().Collection(nc.ID), nil
}

// EditCollection applies a patch to the collection's mutable members. A
// replacement schema must keep the Title field first.
func (s *Service) EditCollection(ctx context.Context, id string, p state.Patch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrNameRequired
	}
	if len(p.Fields) > 0 {
		if err := collection.ValidateFields(p.Fields); err != nil {
			return err
		}
	}
	_, err := s.apply(ctx, "editCollection", func(st *state.State) *state.State {
		return state.EditCollection(st, id, p)
	})
	return err
}

// UpdateCollection stores an edited copy of a collection (schema and
// metadata). Item ids always come from the stored collection.
func (s *Service) UpdateCollection(ctx context.Context, c *collection.Collection) error {
	if c == nil {
		return nil
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if err := collection.ValidateFields(c.Fields); err != nil {
		return err
	}
	_, err := s.apply(ctx, "editCollection", func(st *state.State) *state.State {
		return state.ReplaceCollection(st, c)
	})
	return err
}

// DeleteCollection removes the collection and its items. If it was the
// active view the view falls back to all items.
func (s *Service) DeleteCollection(ctx context.Context, id string) error {
	_, err := s.apply(ctx, "deleteCollection", func(st *state.State) *state.State {
		return state.DeleteCollection(st, id)
	})
	s.mu.Lock()
	if cid, ok := s.view.Selector.CollectionID(); ok && cid == id {
		s.view.Selector = view.All
	}
	s.mu.Unlock()
	return err
}

// SaveItem creates the item when its id is new (an empty id is filled in)
// and replaces it otherwise.
func (s *Service) SaveItem(ctx context.Context, it *item.Item) (*item.Item, error) {
	if it == nil {
		return nil, errors.New("app: nil item")
	}
	ni := it.Clone()
	if ni.ID == "" {
		ni.ID = s.newID()
	}
	now := s.now()
	st, err := s.apply(ctx, "saveItem", func(st *state.State) *state.State {
		return state.SaveItem(st, ni, now)
	})
	if st == nil {
		return nil, err
	}
	return st.Item(ni.ID), err
}

// DeleteItem removes an item. Unknown ids are ignored.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	_, err := s.apply(ctx, "deleteItem", func(st *state.State) *state.State {
		return state.DeleteItem(st, id)
	})
	return err
}

// ToggleFavorite flips an item's favorite flag.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*item.Item, error) {
	st, err := s.apply(ctx, "toggleFavorite", func(st *state.State) *state.State {
		return state.ToggleFavorite(st, id)
	})
	if st == nil {
		return nil, err
	}
	return st.Item(id), err
}

// ToggleDarkMode flips the dark mode preference and returns the new value.
func (s *Service) ToggleDarkMode(ctx context.Context) (bool, error) {
	st, err := s.apply(ctx, "toggleDarkMode", state.ToggleDarkMode)
	if st == nil {
		return false, err
	}
	return st.DarkMode, err
}

// Repair rebuilds collection item ids that disagree with the items.
func (s *Service) Repair(ctx context.Context) error {
	_, err := s.apply(ctx, "repair", state.Repair)
	return err
}
