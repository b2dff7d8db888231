// Package printers renders collections and items for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/stash/pkg/collection"
	"tableflip.dev/stash/pkg/glyph"
	"tableflip.dev/stash/pkg/item"
	"tableflip.dev/stash/pkg/timeutil"
	"tableflip.dev/stash/pkg/value"
)

// PrettyPrint writes human readable tables. Out defaults to color.Output.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Width wraps long text in Item; zero means 80.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

// JSON writes v as indented JSON to out, or color.Output when out is nil.
func JSON(out io.Writer, v interface{}) error {
	if out == nil {
		out = color.Output
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewLine writes an empty line.
func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Message writes one plain line.
func (pp *PrettyPrint) Message(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(pp.out(), format+"\n", args...)
}

// Warn writes one yellow line.
func (pp *PrettyPrint) Warn(format string, args ...interface{}) {
	_, _ = color.New(color.FgYellow).Fprintf(pp.out(), format+"\n", args...)
}

// Title writes a bold, underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount writes a heading followed by a faint item count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// None writes the placeholder for an empty list.
func (pp *PrettyPrint) None() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Collections writes one row per collection.
func (pp *PrettyPrint) Collections(cs ...*collection.Collection) {
	if len(cs) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Name"), bold.Sprint("Icon"), bold.Sprint("Fields"), bold.Sprint("Items")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, c := range cs {
		row := []interface{}{
			Theme(c.Color).Sprint(c.Name),
			faint.Sprintf("%s %s", glyph.For(c.Icon), c.Icon),
			len(c.Fields),
			len(c.ItemIDs),
		}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(c.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(tbl.Rows[0].Cells) - 1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Schema writes the fields of a collection in order.
func (pp *PrettyPrint) Schema(c *collection.Collection) {
	pp.Title(c.Name)
	if c.Description != "" {
		_, _ = color.New(color.Italic).Fprintln(pp.out(), wordwrap.String(c.Description, pp.width()))
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Field"), bold.Sprint("Type"), bold.Sprint("Options"), bold.Sprint("ID"))
	for i, f := range c.Fields {
		tbl.AddRow(i, f.Name, f.Type, strings.Join(f.Options, ", "), faint.Sprint(f.ID))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Items writes one row per item, resolving each against its own
// collection in lookup.
func (pp *PrettyPrint) Items(lookup map[string]*collection.Collection, items ...*item.Item) {
	if len(items) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	fav := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{"", bold.Sprint("Title"), bold.Sprint("Collection"), bold.Sprint("Rating"), bold.Sprint("Status"), bold.Sprint("Added")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, it := range items {
		c := lookup[it.CollectionID]
		star := " "
		if it.IsFavorite {
			star = fav.Sprint("♥")
		}
		colName := faint.Sprint("(missing)")
		if c != nil {
			colName = Theme(c.Color).Sprint(c.Name)
		}
		var rating, status string
		if v, ok := value.FirstOfType(c, it, collection.FieldRating); ok {
			rating = Stars(int(v.Number()))
		}
		if v, ok := value.FirstOfType(c, it, collection.FieldStatus); ok {
			status = v.Text()
		}
		row := []interface{}{star, value.Title(c, it), colName, rating, status, faint.Sprint(it.Added().Format("2006-01-02"))}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(it.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Item writes every field of one item. Long text is wrapped.
func (pp *PrettyPrint) Item(c *collection.Collection, it *item.Item) {
	title := value.Title(c, it)
	if title == "" {
		title = it.ID
	}
	if it.IsFavorite {
		title += " " + color.New(color.FgHiYellow).Sprint("♥")
	}
	pp.Title(title)

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	if c == nil {
		_, _ = faint.Fprintf(pp.out(), "collection %q not found\n", it.CollectionID)
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	for _, f := range c.Fields {
		tbl.AddRow(bold.Sprint(f.Name), pp.field(f, value.Resolve(c, it, f.ID)))
	}
	added := it.Added().Format("2006-01-02 15:04")
	if !it.Added().IsZero() {
		added += faint.Sprintf(" (%s ago)", timeutil.FormatAge(time.Since(it.Added())))
	}
	tbl.AddRow(bold.Sprint("Added"), added)
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), faint.Sprint(it.ID))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) field(f *collection.FieldDefinition, v value.Value) string {
	if v.IsZero() {
		return color.New(color.Faint).Sprint("-")
	}
	switch f.Type {
	case collection.FieldRating:
		return Stars(int(v.Number()))
	case collection.FieldToggle:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case collection.FieldTags:
		return strings.Join(v.List(), ", ")
	case collection.FieldURL, collection.FieldImage:
		return color.New(color.FgBlue, color.Underline).Sprint(v.Text())
	case collection.FieldLongText:
		return wordwrap.String(v.Text(), pp.width()-20)
	default:
		return v.Text()
	}
}

// Values writes a titled list of plain values.
func (pp *PrettyPrint) Values(title string, values ...string) {
	pp.Title(title)
	if len(values) == 0 {
		pp.None()
		return
	}
	for _, v := range values {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", v)
	}
	pp.NewLine()
}

// Stars renders a 1-5 rating. Out of range values are clamped.
func Stars(n int) string {
	if n <= 0 {
		return ""
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Theme maps a collection color key to a terminal color.
func Theme(c collection.Color) *color.Color {
	switch c {
	case collection.ColorSlate:
		return color.New(color.FgHiBlack)
	case collection.ColorRed:
		return color.New(color.FgRed)
	case collection.ColorOrange, collection.ColorAmber:
		return color.New(color.FgYellow)
	case collection.ColorGreen:
		return color.New(color.FgGreen)
	case collection.ColorTeal:
		return color.New(color.FgCyan)
	case collection.ColorBlue:
		return color.New(color.FgBlue)
	case collection.ColorPurple:
		return color.New(color.FgMagenta)
	case collection.ColorPink:
		return color.New(color.FgHiMagenta)
	default:
		return color.New(color.FgHiBlue)
	}
}
