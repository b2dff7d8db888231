// Package list runs the view pipeline for `stash list` and `stash statuses`.
package list

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/printers"
	"tableflip.dev/stash/pkg/state"
	"tableflip.dev/stash/pkg/view"
)

var errNoService = errors.New("list: no service")

// List prints the items the view inputs select.
type List struct {
	Service *app.Service
	Out     io.Writer
	Logger  *zap.Logger
	View    string
	Query   string
	Sort    string
	Filters []view.Filter
	ShowID  bool
	JSON    bool
	// Follow re-renders whenever storage changes until ctx is done.
	Follow bool
}

func (l *List) setView() error {
	st := l.Service.State()
	sel, err := view.ParseSelector(st, l.View)
	if err != nil {
		return err
	}
	key, err := view.ParseSortKey(l.Sort)
	if err != nil {
		return err
	}
	l.Service.SetView(view.Options{Selector: sel, Query: l.Query, Filters: l.Filters, Sort: key})
	return nil
}

// Do renders once, and keeps rendering on change when Follow is set.
func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	if err := l.setView(); err != nil {
		return err
	}
	if err := l.render(); err != nil {
		return err
	}
	if !l.Follow {
		return nil
	}

	l.Service.OnChange(func(*state.State) {
		if err := l.render(); err != nil && l.Logger != nil {
			l.Logger.Warn("render after change failed", zap.Error(err))
		}
	})
	return l.Service.Follow(ctx)
}

func (l *List) render() error {
	items := l.Service.Items()
	if l.JSON {
		return printers.JSON(l.Out, items)
	}
	pp := printers.PrettyPrint{Out: l.Out, ShowID: l.ShowID}
	title := "All items"
	if l.Service.View().Selector == view.Favorites {
		title = "Favorites"
	} else if c := l.Service.ActiveCollection(); c != nil {
		title = c.Name
	}
	pp.TitleWithCount(title, len(items))
	pp.Items(l.Service.State().Lookup(), items...)
	return nil
}

// Statuses prints the status values and tags available as filter choices
// for a view and search.
type Statuses struct {
	Service *app.Service
	Out     io.Writer
	View    string
	Query   string
	JSON    bool
}

// Do renders the available values.
func (s *Statuses) Do(_ context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	sel, err := view.ParseSelector(s.Service.State(), s.View)
	if err != nil {
		return err
	}
	s.Service.SetSelector(sel)
	s.Service.SetQuery(s.Query)

	statuses, tags := s.Service.AvailableStatuses(), s.Service.AvailableTags()
	if s.JSON {
		return printers.JSON(s.Out, map[string][]string{"statuses": statuses, "tags": tags})
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Values("Statuses", statuses...)
	pp.Values("Tags", tags...)
	return nil
}
