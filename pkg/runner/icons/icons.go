// Package icons prints the icon names collections can use.
package icons

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/stash/pkg/glyph"
	"tableflip.dev/stash/pkg/printers"
)

type Icons struct {
	Out  io.Writer
	JSON bool
}

func (k *Icons) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	if k.JSON {
		return printers.JSON(out, glyph.DefaultGlyphs())
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Icon"), bold.Sprint("Symbol"), bold.Sprint("Meaning"))
	for _, v := range glyph.DefaultGlyphs() {
		tbl.AddRow(v.Key, v.Symbol, v.Meaning)
	}
	tbl.AddRow(color.New(color.Faint).Sprint("(other)"), glyph.Fallback.Symbol, glyph.Fallback.Meaning)

	pp := printers.PrettyPrint{Out: out}
	pp.Title("Icons")
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
