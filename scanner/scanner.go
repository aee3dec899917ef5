/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scanner turns classified graphemes into finl tokens.
//
// Besides the token stream, the scanner exposes its grapheme cursor so the
// parser can read arguments and raw environment bodies directly from the
// source. Peeking and marking are bounded to the text after the last token
// that was handed out; the scanner never backs up past an emitted token.
package scanner

import (
	"strings"

	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/token"
)

// Resolver looks up definitions by name.
type Resolver interface {
	Resolve(name string, isEnvironment bool) (*registry.Definition, bool)
}

// Scanner produces tokens from a grapheme sequence.
type Scanner struct {
	gs        []grapheme.Grapheme
	i         int
	end       grapheme.Position
	defs      Resolver
	macroMode bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// MacroDefinitionMode makes `_` a letter inside command names, turns `~`
// into a space token and drops all other white space.
func MacroDefinitionMode() Option {
	return func(s *Scanner) {
		s.macroMode = true
	}
}

// New creates a scanner over text. When defs is nil, \begin and \end are
// ordinary command names.
func New(text string, defs Resolver, opts ...Option) *Scanner {
	gs := grapheme.All(text)
	return FromGraphemes(gs, grapheme.EndOf(gs), defs, opts...)
}

// FromGraphemes creates a scanner over a span of already classified
// graphemes. Positions stay those of the enclosing text; end is the
// position reported for EndOfInput.
func FromGraphemes(gs []grapheme.Grapheme, end grapheme.Position, defs Resolver, opts ...Option) *Scanner {
	s := &Scanner{gs: gs, end: end, defs: defs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next token. At the end of input it keeps returning
// EndOfInput.
func (s *Scanner) Next() (*token.Token, error) {
	for {
		g, ok := s.Peek()
		if !ok {
			return &token.Token{Kind: token.EndOfInput, Pos: s.end}, nil
		}
		switch {
		case g.Is(`\`):
			return s.command()
		case g.Is("{"):
			s.i++
			return &token.Token{Kind: token.GroupOpen, Text: g.Text, Pos: g.Pos}, nil
		case g.Is("}"):
			s.i++
			return &token.Token{Kind: token.GroupClose, Text: g.Text, Pos: g.Pos}, nil
		case g.Is("%"):
			s.skipComment()
		case g.Class == grapheme.Space:
			if !s.macroMode {
				return s.space(), nil
			}
			for s.peekIs(func(g grapheme.Grapheme) bool { return g.Class == grapheme.Space }) {
				s.i++
			}
		case s.macroMode && g.Is("~"):
			s.i++
			return &token.Token{Kind: token.Space, Text: " ", Pos: g.Pos}, nil
		default:
			return s.text(), nil
		}
	}
}

// All returns the remaining tokens, without the final EndOfInput.
func (s *Scanner) All() (token.List, error) {
	var toks token.List
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EndOfInput {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (s *Scanner) command() (*token.Token, error) {
	start := s.i
	pos := s.gs[start].Pos

	if s.defs != nil && !s.macroMode {
		tag, ok, err := s.tagAt(start)
		if err != nil {
			return nil, err
		}
		if ok {
			return s.environment(tag)
		}
	}

	s.i++
	g, ok := s.Peek()
	if !ok || g.IsLineBreak() {
		if ok {
			s.i++
		}
		return &token.Token{Kind: token.CommandSymbol, Text: " ", Pos: pos}, nil
	}
	if !s.isNameGrapheme(g) {
		s.i++
		return &token.Token{Kind: token.CommandSymbol, Text: g.Text, Pos: pos}, nil
	}

	from := s.i
	for s.peekIs(s.isNameGrapheme) {
		s.i++
	}
	return &token.Token{Kind: token.CommandName, Text: s.Text(from, s.i), Pos: pos}, nil
}

func (s *Scanner) environment(tag Tag) (*token.Token, error) {
	def, ok := s.defs.Resolve(tag.Name, true)
	if !ok {
		return nil, diag.New(diag.ErrUnknownEnvironment, tag.Pos, "environment %q is not defined", tag.Name)
	}
	if tag.Starred && !def.AllowsStar {
		return nil, diag.New(diag.ErrMismatchedStarForm, tag.Pos, "environment %q has no star form", tag.Name)
	}
	s.i += tag.Len

	kind := token.EnvironmentEnd
	if tag.Begin {
		kind = token.EnvironmentBegin
	}
	return &token.Token{Kind: kind, Text: tag.Name, Starred: tag.Starred, Pos: tag.Pos}, nil
}

func (s *Scanner) isNameGrapheme(g grapheme.Grapheme) bool {
	return g.IsLetter() || (s.macroMode && g.Is("_"))
}

func (s *Scanner) isSpecial(g grapheme.Grapheme) bool {
	switch g.Text {
	case `\`, "{", "}", "%":
		return true
	case "~":
		return s.macroMode
	}
	return g.Class == grapheme.Space
}

func (s *Scanner) text() *token.Token {
	from := s.i
	for s.peekIs(func(g grapheme.Grapheme) bool { return !s.isSpecial(g) }) {
		s.i++
	}
	return &token.Token{Kind: token.Text, Text: s.Text(from, s.i), Pos: s.gs[from].Pos}
}

func (s *Scanner) space() *token.Token {
	from := s.i
	breaks := 0
	for s.peekIs(func(g grapheme.Grapheme) bool { return g.Class == grapheme.Space }) {
		if s.gs[s.i].IsLineBreak() {
			breaks++
		}
		s.i++
	}
	kind := token.Space
	if breaks > 1 {
		kind = token.ParagraphBreak
	}
	return &token.Token{Kind: kind, Text: s.Text(from, s.i), Pos: s.gs[from].Pos}
}

// skipComment drops a comment, its line break and the blanks that start
// the next line.
func (s *Scanner) skipComment() {
	for s.peekIs(func(g grapheme.Grapheme) bool { return !g.IsLineBreak() }) {
		s.i++
	}
	if !s.AtEnd() {
		s.i++
		s.SkipBlanks()
	}
}

func (s *Scanner) peekIs(pred func(grapheme.Grapheme) bool) bool {
	g, ok := s.Peek()
	return ok && pred(g)
}

// Peek returns the grapheme at the cursor.
func (s *Scanner) Peek() (grapheme.Grapheme, bool) {
	return s.PeekAt(0)
}

// PeekAt returns the grapheme n places after the cursor.
func (s *Scanner) PeekAt(n int) (grapheme.Grapheme, bool) {
	if s.i+n < 0 || s.i+n >= len(s.gs) {
		return grapheme.Grapheme{}, false
	}
	return s.gs[s.i+n], true
}

// Advance moves the cursor forward by n graphemes.
func (s *Scanner) Advance(n int) {
	s.i = min(s.i+n, len(s.gs))
}

// AtEnd reports whether the cursor is past the last grapheme.
func (s *Scanner) AtEnd() bool {
	return s.i >= len(s.gs)
}

// Mark returns the cursor index, for use with Reset, Slice and Text.
func (s *Scanner) Mark() int {
	return s.i
}

// Reset moves the cursor back to a mark taken since the last token.
func (s *Scanner) Reset(mark int) {
	s.i = mark
}

// Pos returns the position of the grapheme at the cursor.
func (s *Scanner) Pos() grapheme.Position {
	return s.PosAt(s.i)
}

// PosAt returns the position of the grapheme at index i.
func (s *Scanner) PosAt(i int) grapheme.Position {
	if i >= len(s.gs) {
		return s.end
	}
	return s.gs[i].Pos
}

// End returns the position after the last grapheme.
func (s *Scanner) End() grapheme.Position {
	return s.end
}

// SkipBlanks moves past white space on the current line and returns the
// number of graphemes skipped.
func (s *Scanner) SkipBlanks() int {
	n := 0
	for s.peekIs(grapheme.Grapheme.IsBlank) {
		s.i++
		n++
	}
	return n
}

// Slice returns the graphemes between two marks.
func (s *Scanner) Slice(from, to int) []grapheme.Grapheme {
	return s.gs[from:to]
}

// Text returns the source text between two marks.
func (s *Scanner) Text(from, to int) string {
	var b strings.Builder
	for _, g := range s.gs[from:to] {
		b.WriteString(g.Text)
	}
	return b.String()
}

// Resolver returns the definitions the scanner resolves environments in.
func (s *Scanner) Resolver() Resolver {
	return s.defs
}
