package app

import (
	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/view"
)

// View returns the current view inputs.
func (s *Service) View() view.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o := s.view
	o.Filters = append([]view.Filter(nil), s.view.Filters...)
	return o
}

// SetView replaces all view inputs at once.
func (s *Service) SetView(o view.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.Selector == "" {
		o.Selector = view.All
	}
	o.Filters = append([]view.Filter(nil), o.Filters...)
	s.view = o
}

// SetSelector changes which items are browsed.
func (s *Service) SetSelector(sel view.Selector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel == "" {
		sel = view.All
	}
	s.view.Selector = sel
}

// SetQuery changes the free-text search.
func (s *Service) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Query = q
}

// SetSort changes the ordering.
func (s *Service) SetSort(k view.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Sort = k
}

// SetFilters replaces the attribute filters.
func (s *Service) SetFilters(filters ...view.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Filters = append([]view.Filter(nil), filters...)
}

// Items runs the view pipeline over the current state.
func (s *Service) Items() []*item.Item {
	s.mu.RLock()
	st, o := s.state, s.view
	s.mu.RUnlock()
	return view.Apply(st, o)
}

// AvailableStatuses lists the status values offered as filter choices for
// the current view and search.
func (s *Service) AvailableStatuses() []string {
	s.mu.RLock()
	st, o := s.state, s.view
	s.mu.RUnlock()
	return view.AvailableStatuses(st, o)
}

// AvailableTags lists the tags offered as filter choices for the current
// view and search.
func (s *Service) AvailableTags() []string {
	s.mu.RLock()
	st, o := s.state, s.view
	s.mu.RUnlock()
	return view.AvailableTags(st, o)
}

// ActiveCollection returns the collection being browsed, or nil for the
// all and favorites views.
func (s *Service) ActiveCollection() *collection.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil
	}
	return view.ActiveCollection(s.state, s.view.Selector)
}
