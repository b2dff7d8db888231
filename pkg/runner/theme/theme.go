// Package theme toggles the stored dark mode preference.
package theme

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/printers"
)

// Dark flips dark mode, or only reports it when Show is set.
type Dark struct {
	Service *app.Service
	Out     io.Writer
	Show    bool
}

func (d *Dark) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("theme: no service")
	}
	on := d.Service.State().DarkMode
	if !d.Show {
		var err error
		if on, err = d.Service.ToggleDarkMode(ctx); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{Out: d.Out}
	if on {
		pp.Message("Dark mode is on.")
	} else {
		pp.Message("Dark mode is off.")
	}
	return nil
}
