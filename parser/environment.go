/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"strings"

	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/token"
)

// body reads an environment body up to and including its end tag.
func (p *Parser) body(def *registry.Definition, begin *token.Token) (*token.Body, error) {
	switch def.Body {
	case registry.BodyMath:
		return p.mathBody(begin)
	case registry.BodyVerbatim:
		return p.lineBody(begin, registry.BodyVerbatim)
	case registry.BodyYAML:
		body, err := p.lineBody(begin, registry.BodyYAML)
		if err != nil || p.opts.yaml == nil {
			return body, err
		}
		data, err := p.opts.yaml(body.Text)
		if err != nil {
			return nil, diag.Wrap(diag.ErrPayloadDecode, body.Pos, err, "body of %s", begin.Text)
		}
		body.Data = data
		return body, nil
	default:
		return p.tokenBody(begin)
	}
}

func (p *Parser) tokenBody(begin *token.Token) (*token.Body, error) {
	pos := p.sc.Pos()
	floor := p.floor
	p.floor = len(p.groups)
	p.envs++
	defer func() {
		p.floor = floor
		p.envs--
	}()

	var toks token.List
	for {
		tok, err := p.item()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.EndOfInput:
			return nil, unterminated(begin)
		case token.EnvironmentEnd:
			if len(p.groups) > p.floor {
				return nil, diag.New(diag.ErrUnmatchedDelimiter, p.groups[len(p.groups)-1], `unclosed { before \end{%s}`, tok.Text)
			}
			if tok.Text != begin.Text {
				return nil, diag.New(diag.ErrUnmatchedDelimiter, tok.Pos, `\end{%s} does not match \begin{%s}`, tok.Text, begin.Text)
			}
			if err := checkStar(begin, tok.Starred, tok.Pos); err != nil {
				return nil, err
			}
			return &token.Body{Type: registry.BodyTokenList, Tokens: toks, Pos: pos}, nil
		}
		toks = append(toks, tok)
	}
}

// mathBody captures raw text up to the end tag, counting nested
// environments of the same name and braces.
func (p *Parser) mathBody(begin *token.Token) (*token.Body, error) {
	pos := p.sc.Pos()
	from := p.sc.Mark()
	nesting, depth := 0, 0
	for {
		g, ok := p.sc.Peek()
		if !ok {
			return nil, unterminated(begin)
		}
		if !g.Is(`\`) {
			switch {
			case g.Is("{"):
				depth++
			case g.Is("}") && depth > 0:
				depth--
			}
			p.sc.Advance(1)
			continue
		}

		tag, ok := p.sc.TagAt(0)
		if !ok || tag.Name != begin.Text {
			p.sc.Advance(2)
			continue
		}
		switch {
		case tag.Begin:
			nesting++
		case nesting > 0:
			nesting--
		default:
			if depth > 0 {
				return nil, diag.New(diag.ErrUnmatchedDelimiter, tag.Pos, `unclosed { before \end{%s}`, tag.Name)
			}
			if err := checkStar(begin, tag.Starred, tag.Pos); err != nil {
				return nil, err
			}
			text := p.sc.Text(from, p.sc.Mark())
			p.sc.Advance(tag.Len)
			return &token.Body{Type: registry.BodyMath, Text: text, Pos: pos}, nil
		}
		p.sc.Advance(tag.Len)
	}
}

// lineBody captures raw lines up to a line starting with the end tag.
// Verbatim lines lose as many leading blanks as precede the end tag.
//
// The rest of the begin line is dropped when blank and is the first line
// otherwise.
func (p *Parser) lineBody(begin *token.Token, bodyType registry.BodyType) (*token.Body, error) {
	pos := p.sc.Pos()
	var lines [][]grapheme.Grapheme

	first := p.restOfLine()
	if !(segment{gs: first}).blank() {
		lines = append(lines, first)
	}

	for {
		if _, ok := p.sc.Peek(); !ok {
			return nil, unterminated(begin)
		}
		p.sc.Advance(1)
		lineStart := p.sc.Mark()
		indent := p.sc.SkipBlanks()

		if tag, ok := p.sc.TagAt(0); ok && tag.Matches(begin.Text) {
			if err := checkStar(begin, tag.Starred, tag.Pos); err != nil {
				return nil, err
			}
			p.sc.Advance(tag.Len)
			if bodyType != registry.BodyVerbatim {
				indent = 0
			}
			return newLineBody(bodyType, lines, indent, pos), nil
		}

		p.sc.Reset(lineStart)
		lines = append(lines, p.restOfLine())
	}
}

// restOfLine consumes graphemes up to, not including, the next line break.
func (p *Parser) restOfLine() []grapheme.Grapheme {
	from := p.sc.Mark()
	for {
		g, ok := p.sc.Peek()
		if !ok || g.IsLineBreak() {
			return p.sc.Slice(from, p.sc.Mark())
		}
		p.sc.Advance(1)
	}
}

func newLineBody(bodyType registry.BodyType, lines [][]grapheme.Grapheme, strip int, pos grapheme.Position) *token.Body {
	body := &token.Body{Type: bodyType, Lines: make([]string, len(lines)), Pos: pos}
	var b strings.Builder
	for i, line := range lines {
		n := 0
		for n < strip && n < len(line) && line[n].IsBlank() {
			n++
		}
		body.Lines[i] = grapheme.Join(line[n:])
		b.WriteString(body.Lines[i])
		b.WriteByte('\n')
	}
	body.Text = b.String()
	return body
}

func checkStar(begin *token.Token, starred bool, pos grapheme.Position) error {
	if starred == begin.Starred {
		return nil
	}
	if begin.Starred {
		return diag.New(diag.ErrMismatchedStarForm, pos, `\begin{%s*} closed by \end{%s}`, begin.Text, begin.Text)
	}
	return diag.New(diag.ErrMismatchedStarForm, pos, `\begin{%s} closed by \end{%s*}`, begin.Text, begin.Text)
}

func unterminated(begin *token.Token) error {
	return diag.New(diag.ErrUnterminatedEnvironment, begin.Pos, `\begin{%s} is never closed`, begin.Text)
}
