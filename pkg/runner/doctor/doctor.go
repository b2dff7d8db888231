// Package doctor checks the stored state for broken collection/item links.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/printers"
	"tableflip.dev/stash/pkg/state"
)

// Doctor reports invariant violations and orphaned items, and rebuilds
// collection item ids when Repair is set.
type Doctor struct {
	Service *app.Service
	Out     io.Writer
	Repair  bool
}

// Do runs the checks. It fails when problems remain after the run.
func (d *Doctor) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("doctor: no service")
	}
	pp := printers.PrettyPrint{Out: d.Out}
	if notice := d.Service.Notice(); notice != nil {
		pp.Warn("%v", notice)
	}

	problems := state.Check(d.Service.State())
	for _, p := range problems {
		pp.Warn("%v", p)
	}
	if orphans := state.Orphans(d.Service.State()); len(orphans) > 0 {
		pp.Message("%d items belong to no collection and only show in the all and favorites views:", len(orphans))
		for _, id := range orphans {
			pp.Message("  %s", id)
		}
	}
	if len(problems) == 0 {
		pp.Message("No problems found.")
		return nil
	}
	if !d.Repair {
		return fmt.Errorf("doctor: %d problems found, run with --repair to fix", len(problems))
	}
	if err := d.Service.Repair(ctx); err != nil {
		return err
	}
	if left := state.Check(d.Service.State()); len(left) > 0 {
		return fmt.Errorf("doctor: %d problems left after repair", len(left))
	}
	pp.Message("Repaired %d problems.", len(problems))
	return nil
}
