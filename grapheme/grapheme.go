/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package grapheme splits finl source text into classified user-perceived
// characters.
//
// Input is expected to be NFD-normalized already; see package load.
package grapheme

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Class is the lexical class of a grapheme.
type Class int

const (
	// Other covers control and format characters that are not white space.
	Other Class = iota

	// Letter is a grapheme whose first code point is in a Unicode L* category.
	Letter

	// Mark is a grapheme that begins with a combining mark (Mn or Mc).
	// Marks count as letters when forming command names.
	Mark

	// Symbol is any grapheme that is neither a letter nor white space.
	Symbol

	// Space is white space, including line breaks.
	Space
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case Letter:
		return "letter"
	case Mark:
		return "mark"
	case Symbol:
		return "symbol"
	case Space:
		return "space"
	default:
		return "other"
	}
}

// Position locates a grapheme in the source text.
type Position struct {
	// Offset is the 0-based byte offset.
	Offset int `json:"offset"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Column is the 1-based column, counted in graphemes.
	Column int `json:"column"`
}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Grapheme is one user-perceived character with its class and position.
type Grapheme struct {
	Text  string
	Class Class
	Pos   Position
}

// IsLetter reports whether the grapheme may be part of a command name.
func (g Grapheme) IsLetter() bool {
	return g.Class == Letter || g.Class == Mark
}

// IsLineBreak reports whether the grapheme ends a line.
func (g Grapheme) IsLineBreak() bool {
	switch g.Text {
	case "\n", "\r\n", "\r", "\u2028", "\u2029", "\u0085", "\v", "\f":
		return true
	}
	return false
}

// IsBlank reports whether the grapheme is white space that does not end a line.
func (g Grapheme) IsBlank() bool {
	return g.Class == Space && !g.IsLineBreak()
}

// Is reports whether the grapheme is exactly s.
func (g Grapheme) Is(s string) bool {
	return g.Text == s
}

// End returns the position immediately after the grapheme.
func (g Grapheme) End() Position {
	return advance(g.Pos, g)
}

// EndOf returns the position after the last grapheme of gs, or the start of
// input when gs is empty.
func EndOf(gs []Grapheme) Position {
	if len(gs) == 0 {
		return Position{Line: 1, Column: 1}
	}
	return gs[len(gs)-1].End()
}

const zeroWidthJoiner = '\u200d'

// structural holds the ASCII characters the scanner and argument parser
// match on their own. A combining mark after one of them is split off
// into its own grapheme.
const structural = `\{}[]%`

// Classify returns the graphemes of text in order.
//
// Segmentation follows UAX #29 extended grapheme clusters, widened so that
// a cluster ending in a zero width joiner absorbs the cluster after it,
// and narrowed so that a structural character always stands alone.
func Classify(text string) iter.Seq[Grapheme] {
	return func(yield func(Grapheme) bool) {
		pos := Position{Line: 1, Column: 1}
		emit := func(s string) bool {
			if len(s) > 1 && isStructural(s) {
				return yieldAt(s[:1], &pos, yield) && yieldAt(s[1:], &pos, yield)
			}
			return yieldAt(s, &pos, yield)
		}

		gr := uniseg.NewGraphemes(text)
		start, end := -1, -1
		for gr.Next() {
			from, to := gr.Positions()
			if start >= 0 && endsWithJoiner(text[start:end]) && !isStructural(text[start:end]) {
				end = to
				continue
			}
			if start >= 0 && !emit(text[start:end]) {
				return
			}
			start, end = from, to
		}
		if start >= 0 {
			emit(text[start:end])
		}
	}
}

func yieldAt(s string, pos *Position, yield func(Grapheme) bool) bool {
	g := classified(s, *pos)
	*pos = advance(*pos, g)
	return yield(g)
}

func isStructural(s string) bool {
	return strings.IndexByte(structural, s[0]) >= 0
}

// All returns every grapheme of text.
func All(text string) []Grapheme {
	result := make([]Grapheme, 0, len(text))
	for g := range Classify(text) {
		result = append(result, g)
	}
	return result
}

// Join concatenates the text of the given graphemes.
func Join(gs []Grapheme) string {
	var b strings.Builder
	for _, g := range gs {
		b.WriteString(g.Text)
	}
	return b.String()
}

func endsWithJoiner(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r == zeroWidthJoiner
}

func classified(s string, pos Position) Grapheme {
	return Grapheme{Text: s, Class: classOf(s), Pos: pos}
}

func advance(pos Position, g Grapheme) Position {
	pos.Offset += len(g.Text)
	if g.IsLineBreak() {
		pos.Line++
		pos.Column = 1
	} else {
		pos.Column++
	}
	return pos
}

func classOf(s string) Class {
	r, _ := utf8.DecodeRuneInString(s)
	switch {
	case unicode.IsLetter(r):
		return Letter
	case unicode.In(r, unicode.Mn, unicode.Mc):
		return Mark
	case unicode.IsSpace(r):
		return Space
	case unicode.IsControl(r) || unicode.Is(unicode.Cf, r) && r != zeroWidthJoiner:
		return Other
	default:
		return Symbol
	}
}
