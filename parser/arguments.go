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
	"bennypowers.dev/finl/scanner"
	"bennypowers.dev/finl/token"
)

// arguments reads the parameters of def, in order, from the source
// following the command name or begin tag.
func (p *Parser) arguments(def *registry.Definition) ([]*token.Argument, error) {
	if len(def.Params) == 0 {
		return nil, nil
	}
	args := make([]*token.Argument, 0, len(def.Params))
	for _, spec := range def.Params {
		arg, err := p.argument(spec)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Parser) argument(spec registry.ParameterSpec) (*token.Argument, error) {
	switch spec.Format {
	case registry.Star:
		return p.star(spec), nil
	case registry.Optional:
		return p.optional(spec)
	case registry.Required:
		return p.required(spec)
	case registry.RequiredBraced:
		if err := p.skipToArgument(); err != nil {
			return nil, err
		}
		if g, _ := p.sc.Peek(); !g.Is("{") {
			return nil, diag.New(diag.ErrMissingRequiredArgument, g.Pos, "expected { but found %q", g.Text)
		}
		return p.braced(spec)
	default:
		return p.arbitrary(spec)
	}
}

// star consumes a `*` written directly after the name.
func (p *Parser) star(spec registry.ParameterSpec) *token.Argument {
	arg := &token.Argument{Format: spec.Format, Type: spec.Type, Pos: p.sc.Pos()}
	if g, ok := p.sc.Peek(); ok && g.Is("*") {
		p.sc.Advance(1)
		arg.Present = true
		arg.Bool = true
		arg.Raw = g.Text
	}
	return arg
}

// optional reads a bracketed argument on the current line, or records it
// as absent and leaves the cursor where it was.
func (p *Parser) optional(spec registry.ParameterSpec) (*token.Argument, error) {
	mark := p.sc.Mark()
	p.sc.SkipBlanks()
	open, ok := p.sc.Peek()
	if !ok || !open.Is("[") {
		p.sc.Reset(mark)
		return token.Absent(spec, p.sc.Pos()), nil
	}
	p.sc.Advance(1)
	from := p.sc.Mark()

	if spec.Type == registry.Verbatim {
		// There is no escape for `]` in verbatim optional arguments.
		for {
			g, ok := p.sc.Peek()
			if !ok {
				return nil, diag.New(diag.ErrUnmatchedDelimiter, open.Pos, "unclosed [")
			}
			if g.Is("]") {
				break
			}
			p.sc.Advance(1)
		}
	} else if err := p.seekClose(open, "]", false); err != nil {
		return nil, err
	}

	to := p.sc.Mark()
	p.sc.Advance(1)
	return p.decode(spec, open.Text, from, to)
}

// required reads a braced group or a single ungrouped token.
func (p *Parser) required(spec registry.ParameterSpec) (*token.Argument, error) {
	if err := p.skipToArgument(); err != nil {
		return nil, err
	}
	g, _ := p.sc.Peek()
	switch {
	case g.Is("{"):
		return p.braced(spec)
	case g.Is("}"):
		return nil, diag.New(diag.ErrMissingRequiredArgument, g.Pos, "found } where an argument was expected")
	case g.Is(`\`) && spec.Type == registry.TokenList:
		return p.ungroupedCommand(spec)
	}

	from := p.sc.Mark()
	if g.Is(`\`) {
		p.skipControlSequence(spec.Type == registry.MacroDefList)
	} else {
		p.sc.Advance(1)
	}
	return p.decode(spec, "", from, p.sc.Mark())
}

// ungroupedCommand reads a command, with its own arguments, as the whole
// of a token list argument. It counts as one level of nesting.
func (p *Parser) ungroupedCommand(spec registry.ParameterSpec) (*token.Argument, error) {
	from := p.sc.Mark()
	pos := p.sc.Pos()
	if p.level() >= p.opts.maxDepth {
		return nil, diag.New(diag.ErrNestingTooDeep, pos, "arguments nested deeper than %d", p.opts.maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()

	tok, err := p.item()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.EnvironmentEnd {
		return nil, diag.New(diag.ErrMissingRequiredArgument, tok.Pos, `found \end{%s} where an argument was expected`, tok.Text)
	}
	return &token.Argument{
		Format:  spec.Format,
		Type:    spec.Type,
		Present: true,
		Raw:     p.sc.Text(from, p.sc.Mark()),
		Tokens:  token.List{tok},
		Pos:     pos,
	}, nil
}

// skipControlSequence moves past a backslash and the name after it. In
// macro definitions `_` is part of the name.
func (p *Parser) skipControlSequence(underscore bool) {
	isName := func(g grapheme.Grapheme) bool {
		return g.IsLetter() || (underscore && g.Is("_"))
	}
	p.sc.Advance(1)
	g, ok := p.sc.Peek()
	if !ok {
		return
	}
	if !isName(g) {
		p.sc.Advance(1)
		return
	}
	for ok && isName(g) {
		p.sc.Advance(1)
		g, ok = p.sc.Peek()
	}
}

// braced reads a group whose `{` is at the cursor.
func (p *Parser) braced(spec registry.ParameterSpec) (*token.Argument, error) {
	open, _ := p.sc.Peek()
	p.sc.Advance(1)
	from := p.sc.Mark()
	if err := p.seekClose(open, "}", spec.Type == registry.Verbatim); err != nil {
		return nil, err
	}
	to := p.sc.Mark()
	p.sc.Advance(1)
	return p.decode(spec, open.Text, from, to)
}

// arbitrary reads an argument delimited by two copies of its first
// grapheme, or a braced group.
func (p *Parser) arbitrary(spec registry.ParameterSpec) (*token.Argument, error) {
	if err := p.skipToArgument(); err != nil {
		return nil, err
	}
	delim, _ := p.sc.Peek()
	switch {
	case delim.Is("{"):
		return p.braced(spec)
	case delim.Is("}"):
		return nil, diag.New(diag.ErrMissingRequiredArgument, delim.Pos, "found } where an argument was expected")
	}

	p.sc.Advance(1)
	from := p.sc.Mark()
	for {
		g, ok := p.sc.Peek()
		if !ok || g.IsLineBreak() {
			return nil, diag.New(diag.ErrUnterminatedArbitraryArgument, delim.Pos, "no closing %s on the same line", delim.Text)
		}
		if g.Text == delim.Text {
			break
		}
		p.sc.Advance(1)
	}
	to := p.sc.Mark()
	p.sc.Advance(1)
	return p.decode(spec, delim.Text, from, to)
}

// skipToArgument moves past blanks and at most one line break. A blank
// line or the end of input means the argument is missing.
func (p *Parser) skipToArgument() error {
	p.sc.SkipBlanks()
	g, ok := p.sc.Peek()
	if ok && g.IsLineBreak() {
		p.sc.Advance(1)
		p.sc.SkipBlanks()
		g, ok = p.sc.Peek()
		if ok && g.IsLineBreak() {
			return diag.New(diag.ErrMissingRequiredArgument, g.Pos, "blank line where an argument was expected")
		}
	}
	if !ok {
		return diag.New(diag.ErrMissingRequiredArgument, p.sc.End(), "end of input where an argument was expected")
	}
	return nil
}

// seekClose moves the cursor to the delimiter closing open, which has
// already been consumed. Braces nest, and brackets outside braces nest
// inside optional arguments. Unless verbatim, a backslash protects the
// grapheme after it and `%` hides the rest of the line.
func (p *Parser) seekClose(open grapheme.Grapheme, closer string, verbatim bool) error {
	optional := closer == "]"
	braces, brackets := 0, 0
	for {
		g, ok := p.sc.Peek()
		if !ok {
			return diag.New(diag.ErrUnmatchedDelimiter, open.Pos, "unclosed %s", open.Text)
		}
		switch {
		case !verbatim && g.Is(`\`):
			p.sc.Advance(2)
			continue
		case !verbatim && g.Is("%"):
			p.skipToLineEnd()
			continue
		case g.Is("{"):
			braces++
		case g.Is("}"):
			if braces == 0 {
				if !optional {
					return nil
				}
				return diag.New(diag.ErrUnmatchedDelimiter, g.Pos, "unexpected } before closing ]")
			}
			braces--
		case optional && braces == 0 && g.Is("["):
			brackets++
		case optional && braces == 0 && g.Is("]"):
			if brackets == 0 {
				return nil
			}
			brackets--
		}
		p.sc.Advance(1)
	}
}

// skipToLineEnd leaves the cursor on the line break ending a comment.
func (p *Parser) skipToLineEnd() {
	for {
		g, ok := p.sc.Peek()
		if !ok || g.IsLineBreak() {
			return
		}
		p.sc.Advance(1)
	}
}

// decode converts the graphemes between two marks into an argument value.
func (p *Parser) decode(spec registry.ParameterSpec, delim string, from, to int) (*token.Argument, error) {
	gs := p.sc.Slice(from, to)
	end := p.sc.PosAt(to)
	arg := &token.Argument{
		Format:  spec.Format,
		Type:    spec.Type,
		Present: true,
		Delim:   delim,
		Raw:     grapheme.Join(gs),
		Pos:     p.sc.PosAt(from),
	}

	var err error
	switch spec.Type {
	case registry.TokenList:
		arg.Tokens, err = p.parseSpan(gs, end)
	case registry.MacroDefList:
		arg.Tokens, err = scanner.FromGraphemes(gs, end, nil, scanner.MacroDefinitionMode()).All()
	case registry.Boolean:
		word := strings.TrimSpace(arg.Raw)
		value, ok := p.defs.Booleans().Lookup(word)
		if !ok {
			return nil, diag.New(diag.ErrInvalidBoolean, arg.Pos, "%q is not a boolean", word)
		}
		arg.Bool = value
	case registry.KeyValue:
		arg.KeyValues, err = p.keyValues(gs, end)
	}
	if err != nil {
		return nil, err
	}
	return arg, nil
}
