/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/token"
)

// segment is a run of graphemes cut out of an argument. pos is where it
// starts, or where it would start when empty.
type segment struct {
	gs  []grapheme.Grapheme
	pos grapheme.Position
}

func (s segment) end() grapheme.Position {
	if len(s.gs) == 0 {
		return s.pos
	}
	return grapheme.EndOf(s.gs)
}

func (s segment) blank() bool {
	for _, g := range s.gs {
		if g.Class != grapheme.Space {
			return false
		}
	}
	return true
}

// trim drops white space, line breaks included, from both ends.
func (s segment) trim() segment {
	gs := s.gs
	for len(gs) > 0 && gs[0].Class == grapheme.Space {
		gs = gs[1:]
	}
	for len(gs) > 0 && gs[len(gs)-1].Class == grapheme.Space {
		gs = gs[:len(gs)-1]
	}
	if len(gs) == 0 {
		return segment{pos: s.pos}
	}
	return segment{gs: gs, pos: gs[0].Pos}
}

// unbrace strips one pair of braces enclosing the whole segment.
func (s segment) unbrace() segment {
	n := len(s.gs)
	if n < 2 || !s.gs[0].Is("{") || !s.gs[n-1].Is("}") {
		return s
	}
	depth := 0
	for i := 0; i < n; i++ {
		switch g := s.gs[i]; {
		case g.Is(`\`):
			i++
		case g.Is("{"):
			depth++
		case g.Is("}"):
			depth--
			if depth == 0 && i < n-1 {
				return s
			}
		}
	}
	inner := segment{gs: s.gs[1 : n-1], pos: s.gs[n-1].Pos}
	if len(inner.gs) > 0 {
		inner.pos = inner.gs[0].Pos
	}
	return inner
}

// uncomment drops comments the way the scanner does: from `%` to the end
// of the line, with the line break and the next line's leading blanks.
func (s segment) uncomment() segment {
	var gs []grapheme.Grapheme
	for i := 0; i < len(s.gs); i++ {
		g := s.gs[i]
		switch {
		case g.Is(`\`):
			gs = append(gs, g)
			if i+1 < len(s.gs) {
				i++
				gs = append(gs, s.gs[i])
			}
		case g.Is("%"):
			for i+1 < len(s.gs) && !s.gs[i].IsLineBreak() {
				i++
			}
			for i+1 < len(s.gs) && s.gs[i+1].IsBlank() {
				i++
			}
		default:
			gs = append(gs, g)
		}
	}
	if len(gs) == len(s.gs) {
		return s
	}
	out := segment{gs: gs, pos: s.pos}
	if len(gs) > 0 {
		out.pos = gs[0].Pos
	}
	return out
}

// split cuts s at top-level occurrences of sep, making at most limit
// pieces when limit is positive.
func (s segment) split(sep string, limit int) []segment {
	var pieces []segment
	depth, start := 0, 0
	posAt := func(i int) grapheme.Position {
		if i < len(s.gs) {
			return s.gs[i].Pos
		}
		return s.end()
	}
	for i := 0; i < len(s.gs); i++ {
		g := s.gs[i]
		switch {
		case g.Is(`\`):
			i++
		case g.Is("{"):
			depth++
		case g.Is("}"):
			if depth > 0 {
				depth--
			}
		case depth == 0 && g.Is(sep) && (limit <= 0 || len(pieces) < limit-1):
			pieces = append(pieces, segment{gs: s.gs[start:i], pos: posAt(start)})
			start = i + 1
		}
	}
	if start == 0 {
		return append(pieces, s)
	}
	return append(pieces, segment{gs: s.gs[start:], pos: posAt(start)})
}

// keyValues parses `key = value` pairs separated by commas. A single
// trailing comma is allowed. A repeated key keeps its first place in the
// order and takes the last value.
func (p *Parser) keyValues(gs []grapheme.Grapheme, end grapheme.Position) (*token.KeyValues, error) {
	kv := token.NewKeyValues()
	whole := segment{gs: gs, pos: end}
	if len(gs) > 0 {
		whole.pos = gs[0].Pos
	}
	whole = whole.uncomment()

	entries := whole.split(",", 0)
	if n := len(entries); entries[n-1].blank() {
		entries = entries[:n-1]
	}

	for _, entry := range entries {
		if entry.blank() {
			return nil, diag.New(diag.ErrInvalidKey, entry.pos, "empty entry in key-value list")
		}
		parts := entry.split("=", 2)
		if len(parts) < 2 {
			e := entry.trim()
			return nil, diag.New(diag.ErrInvalidKey, e.pos, "%q has no value", grapheme.Join(e.gs))
		}

		key := parts[0].trim()
		name := grapheme.Join(key.gs)
		if !grapheme.IsIdentifier(name) {
			return nil, diag.New(diag.ErrInvalidKey, key.pos, "%q is not a valid key", name)
		}

		value := parts[1].trim()
		if err := p.checkMacroValue(value); err != nil {
			return nil, err
		}
		value = value.unbrace()
		toks, err := p.parseSpan(value.gs, value.end())
		if err != nil {
			return nil, err
		}
		kv.Set(name, toks)
	}
	return kv, nil
}

// checkMacroValue requires a value written as a single command word to be
// a macro whose expansion is itself a key-value list.
func (p *Parser) checkMacroValue(value segment) error {
	name, ok := commandWord(value.gs)
	if !ok {
		return nil
	}

	expansion, ok := p.defs.Expand(name)
	if !ok {
		return diag.New(diag.ErrUndefinedOrInvalidMacroValue, value.pos, `\%s is not a defined macro`, name)
	}
	if p.expanding[name] {
		return diag.New(diag.ErrUndefinedOrInvalidMacroValue, value.pos, `\%s expands to itself`, name)
	}
	p.expanding[name] = true
	defer delete(p.expanding, name)

	gs := grapheme.All(expansion)
	sub, err := p.sub(gs, grapheme.EndOf(gs))
	if err != nil {
		return err
	}
	if _, err := sub.keyValues(gs, grapheme.EndOf(gs)); err != nil {
		return diag.Wrap(diag.ErrUndefinedOrInvalidMacroValue, value.pos, err, `\%s does not expand to a key-value list`, name)
	}
	return nil
}

// commandWord reports whether gs is exactly one command name.
func commandWord(gs []grapheme.Grapheme) (string, bool) {
	if len(gs) < 2 || !gs[0].Is(`\`) {
		return "", false
	}
	for _, g := range gs[1:] {
		if !g.IsLetter() {
			return "", false
		}
	}
	return grapheme.Join(gs[1:]), true
}
