// Package glyph maps collection icon names to terminal symbols.
package glyph

import "strings"

// Glyph is the terminal rendering of a collection icon.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

// Fallback is drawn for icon names without a glyph.
var Fallback = Glyph{Key: "", Symbol: "•", Meaning: "other"}

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 12)

	g = append(g, Glyph{
		Key:     "folder",
		Symbol:  "▤",
		Meaning: "general collection",
	}, Glyph{
		Key:     "film",
		Symbol:  "▶",
		Meaning: "films and shows",
	}, Glyph{
		Key:     "book",
		Symbol:  "❏",
		Meaning: "books",
	}, Glyph{
		Key:     "gamepad",
		Symbol:  "◆",
		Meaning: "games",
	}, Glyph{
		Key:     "disc",
		Symbol:  "◉",
		Meaning: "music",
	}, Glyph{
		Key:     "star",
		Symbol:  "★",
		Meaning: "highlights",
	}, Glyph{
		Key:     "heart",
		Symbol:  "♥",
		Meaning: "wishlist",
	}, Glyph{
		Key:     "link",
		Symbol:  "⌁",
		Meaning: "bookmarks",
	}, Glyph{
		Key:     "map",
		Symbol:  "⌖",
		Meaning: "places",
	}, Glyph{
		Key:     "food",
		Symbol:  "◍",
		Meaning: "recipes",
	})

	return g
}

// For returns the glyph for an icon name, matched case-insensitively.
func For(icon string) Glyph {
	icon = strings.ToLower(strings.TrimSpace(icon))
	for _, g := range DefaultGlyphs() {
		if g.Key == icon {
			return g
		}
	}
	return Fallback
}

func (g Glyph) String() string {
	return g.Symbol
}
