/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser drives the finl scanner, resolving each command and
// environment in a registry and parsing its arguments and body.
package parser

import (
	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/scanner"
	"bennypowers.dev/finl/token"
)

// DefaultMaxDepth bounds nested argument parsing and environment nesting.
const DefaultMaxDepth = 64

// Definitions is the registry view the parser reads.
type Definitions interface {
	scanner.Resolver
	Expand(name string) (string, bool)
	Booleans() registry.Vocabulary
}

// Hook is called with every command and environment token once its
// arguments and body are parsed. Hooks run in registration order; the
// first error stops the parse.
type Hook func(tok *token.Token) error

// YAMLDecoder decodes the raw text of a YAML environment body.
type YAMLDecoder func(text string) (any, error)

type options struct {
	maxDepth int
	yaml     YAMLDecoder
	hooks    []Hook
}

// Option configures a Parser.
type Option func(*options)

// WithMaxDepth sets the nesting limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithYAMLDecoder sets the decoder for YAML environment bodies. Without
// one, YAML bodies carry only their raw text.
func WithYAMLDecoder(d YAMLDecoder) Option {
	return func(o *options) {
		o.yaml = d
	}
}

// WithHook adds a hook.
func WithHook(h Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, h)
	}
}

// Parser produces fully parsed tokens on demand.
type Parser struct {
	sc    *scanner.Scanner
	defs  Definitions
	opts  *options
	depth int

	// groups holds the positions of open braces; floor is the number of
	// them opened outside the environment body being read.
	groups []grapheme.Position
	floor  int
	envs   int

	// expanding holds the macros whose expansion is being checked as
	// key-value data, shared with nested parsers.
	expanding map[string]bool
}

// New creates a parser over NFD-normalized text.
func New(text string, defs Definitions, opts ...Option) *Parser {
	o := &options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return &Parser{
		sc:        scanner.New(text, defs),
		defs:      defs,
		opts:      o,
		expanding: make(map[string]bool),
	}
}

// Parse parses text completely.
func Parse(text string, defs Definitions, opts ...Option) (token.List, error) {
	return New(text, defs, opts...).All()
}

// Tokenize returns the lexical tokens of text without parsing arguments.
// Environment tags are still resolved in defs.
func Tokenize(text string, defs scanner.Resolver) (token.List, error) {
	return scanner.New(text, defs).All()
}

// Next returns the next token with its arguments and, for environments,
// its body. The end tag of an environment is consumed with its body.
func (p *Parser) Next() (*token.Token, error) {
	tok, err := p.item()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.EnvironmentEnd:
		return nil, diag.New(diag.ErrUnmatchedDelimiter, tok.Pos, `\end{%s} without a matching \begin`, tok.Text)
	case token.EndOfInput:
		if n := len(p.groups); n > 0 {
			return nil, diag.New(diag.ErrUnmatchedDelimiter, p.groups[n-1], "unclosed {")
		}
	}
	return tok, nil
}

// All returns the remaining tokens, without the final EndOfInput.
func (p *Parser) All() (token.List, error) {
	var toks token.List
	for {
		tok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EndOfInput {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (p *Parser) item() (*token.Token, error) {
	tok, err := p.sc.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.CommandName, token.CommandSymbol:
		return p.command(tok)
	case token.EnvironmentBegin:
		return p.environment(tok)
	case token.GroupOpen:
		p.groups = append(p.groups, tok.Pos)
	case token.GroupClose:
		if len(p.groups) <= p.floor {
			return nil, diag.New(diag.ErrUnmatchedDelimiter, tok.Pos, "unexpected }")
		}
		p.groups = p.groups[:len(p.groups)-1]
	}
	return tok, nil
}

func (p *Parser) command(tok *token.Token) (*token.Token, error) {
	def, ok := p.defs.Resolve(tok.Text, false)
	if !ok {
		return nil, diag.New(diag.ErrUnknownCommand, tok.Pos, `\%s is not defined`, tok.Text)
	}

	after := p.sc.Mark()
	args, err := p.arguments(def)
	if err != nil {
		return nil, err
	}
	tok.Args = args
	if tok.Kind == token.CommandName && p.sc.Mark() == after {
		p.skipSpaceAfterName()
	}

	if err := p.runHooks(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (p *Parser) environment(tok *token.Token) (*token.Token, error) {
	def, ok := p.defs.Resolve(tok.Text, true)
	if !ok {
		return nil, diag.New(diag.ErrUnknownEnvironment, tok.Pos, "environment %q is not defined", tok.Text)
	}
	if p.level() >= p.opts.maxDepth {
		return nil, diag.New(diag.ErrNestingTooDeep, tok.Pos, "environments nested deeper than %d", p.opts.maxDepth)
	}

	args, err := p.arguments(def)
	if err != nil {
		return nil, err
	}
	tok.Args = args

	body, err := p.body(def, tok)
	if err != nil {
		return nil, err
	}
	tok.Body = body

	if err := p.runHooks(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (p *Parser) runHooks(tok *token.Token) error {
	for _, hook := range p.opts.hooks {
		if err := hook(tok); err != nil {
			return err
		}
	}
	return nil
}

// skipSpaceAfterName drops the blanks after a command word and a single
// line break with the next line's indentation, leaving paragraph breaks.
func (p *Parser) skipSpaceAfterName() {
	p.sc.SkipBlanks()
	g, ok := p.sc.Peek()
	if !ok || !g.IsLineBreak() {
		return
	}
	mark := p.sc.Mark()
	p.sc.Advance(1)
	p.sc.SkipBlanks()
	if g, ok := p.sc.Peek(); ok && g.IsLineBreak() {
		p.sc.Reset(mark)
	}
}

func (p *Parser) level() int {
	return p.depth + p.envs
}

// sub creates a parser over a captured span, one level deeper.
func (p *Parser) sub(gs []grapheme.Grapheme, end grapheme.Position) (*Parser, error) {
	if p.level() >= p.opts.maxDepth {
		pos := end
		if len(gs) > 0 {
			pos = gs[0].Pos
		}
		return nil, diag.New(diag.ErrNestingTooDeep, pos, "arguments nested deeper than %d", p.opts.maxDepth)
	}
	return &Parser{
		sc:        scanner.FromGraphemes(gs, end, p.defs),
		defs:      p.defs,
		opts:      p.opts,
		depth:     p.level() + 1,
		expanding: p.expanding,
	}, nil
}

// parseSpan parses a captured span as a token list.
func (p *Parser) parseSpan(gs []grapheme.Grapheme, end grapheme.Position) (token.List, error) {
	sub, err := p.sub(gs, end)
	if err != nil {
		return nil, err
	}
	return sub.All()
}
