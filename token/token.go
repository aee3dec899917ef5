/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the token, argument and body types produced by
// the finl scanner and parser.
package token

import (
	"fmt"
	"strings"

	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/registry"
)

// Kind enumerates the kinds of token.
type Kind int

const (
	// CommandName is a backslash followed by a run of letters.
	CommandName Kind = iota

	// CommandSymbol is a backslash followed by exactly one other grapheme.
	CommandSymbol

	// GroupOpen is `{`.
	GroupOpen

	// GroupClose is `}`.
	GroupClose

	// Text is a run of ordinary graphemes.
	Text

	// Space is a run of white space holding at most one line break.
	Space

	// ParagraphBreak is a run of white space holding a blank line.
	ParagraphBreak

	// EnvironmentBegin is `\begin{name}`. The parser attaches the
	// environment's arguments and body to it.
	EnvironmentBegin

	// EnvironmentEnd is `\end{name}`.
	EnvironmentEnd

	// EndOfInput marks the end of the token stream.
	EndOfInput
)

var kindNames = []string{
	"CommandName",
	"CommandSymbol",
	"GroupOpen",
	"GroupClose",
	"Text",
	"Space",
	"ParagraphBreak",
	"EnvironmentBegin",
	"EnvironmentEnd",
	"EndOfInput",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is one syntactic unit of finl source.
type Token struct {
	// Kind describes which kind of token this is.
	Kind Kind `json:"kind"`

	// Text is the command name without the backslash, the environment
	// name, or the literal source text of the token.
	Text string `json:"text"`

	// Pos is the position of the token's first grapheme.
	Pos grapheme.Position `json:"pos"`

	// Starred is set on environment tokens written in star form.
	Starred bool `json:"starred,omitempty"`

	// Args holds the parsed arguments of commands and environments.
	Args []*Argument `json:"args,omitempty"`

	// Body holds the body of an environment.
	Body *Body `json:"body,omitempty"`
}

// IsCommand reports whether the token is a command name or symbol.
func (t *Token) IsCommand() bool {
	return t.Kind == CommandName || t.Kind == CommandSymbol
}

// Is reports whether the token is a command with the given name.
func (t *Token) Is(name string) bool {
	return t.IsCommand() && t.Text == name
}

func (t *Token) String() string {
	switch t.Kind {
	case CommandName, CommandSymbol:
		return `\` + t.Text
	case EnvironmentBegin:
		return `\begin{` + t.envName() + `}`
	case EnvironmentEnd:
		return `\end{` + t.envName() + `}`
	case EndOfInput:
		return "<end of input>"
	default:
		return t.Text
	}
}

func (t *Token) envName() string {
	if t.Starred {
		return t.Text + "*"
	}
	return t.Text
}

// Body is the content of an environment between its begin and end tags.
type Body struct {
	// Type is how the body was acquired.
	Type registry.BodyType `json:"type"`

	// Tokens is the parsed content of a token list body.
	Tokens List `json:"tokens,omitempty"`

	// Text is the raw content of math, verbatim and YAML bodies. Verbatim
	// and YAML text is Lines joined, each line ending in a newline.
	Text string `json:"text,omitempty"`

	// Lines are the lines of a verbatim or YAML body, indentation stripped
	// for verbatim.
	Lines []string `json:"lines,omitempty"`

	// Data is the decoded payload of a YAML body, when a decoder is set.
	Data any `json:"data,omitempty"`

	// Pos is where the body starts.
	Pos grapheme.Position `json:"pos"`
}

// List is a sequence of tokens.
type List []*Token

// FormatText renders the tokens back to finl source.
func (toks List) FormatText() string {
	var b strings.Builder
	for _, tok := range toks {
		tok.format(&b)
	}
	return b.String()
}

func (t *Token) format(b *strings.Builder) {
	switch t.Kind {
	case CommandName, CommandSymbol:
		b.WriteString(`\` + t.Text)
		for _, arg := range t.Args {
			b.WriteString(arg.FormatText())
		}
	case EnvironmentBegin:
		b.WriteString(`\begin{` + t.envName() + `}`)
		for _, arg := range t.Args {
			b.WriteString(arg.FormatText())
		}
		if t.Body != nil {
			switch t.Body.Type {
			case registry.BodyVerbatim, registry.BodyYAML:
				b.WriteString("\n" + t.Body.Text)
			case registry.BodyMath:
				b.WriteString(t.Body.Text)
			default:
				b.WriteString(t.Body.Tokens.FormatText())
			}
			b.WriteString(`\end{` + t.envName() + `}`)
		}
	case EnvironmentEnd:
		b.WriteString(`\end{` + t.envName() + `}`)
	case EndOfInput:
	default:
		b.WriteString(t.Text)
	}
}

// Kinds returns the kind of each token, for comparing token streams
// without positions.
func (toks List) Kinds() []Kind {
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}
