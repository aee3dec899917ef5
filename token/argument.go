/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"encoding/json"

	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/registry"
)

// Argument is one parsed argument of a command or environment.
type Argument struct {
	// Format and Type are copied from the parameter the argument fills.
	Format registry.Format
	Type   registry.Type

	// Present is false for an absent optional argument and for a star
	// that was not written.
	Present bool

	// Delim is the opening delimiter: "[", "{", an arbitrary delimiter
	// grapheme, or empty for an ungrouped argument.
	Delim string

	// Raw is the exact source between the delimiters.
	Raw string

	// Tokens is the value of TokenList and MacroDefList arguments.
	Tokens List

	// Bool is the value of Boolean arguments.
	Bool bool

	// KeyValues is the value of KeyValue arguments.
	KeyValues *KeyValues

	// Pos is where the argument's content starts.
	Pos grapheme.Position
}

// Absent returns the value recorded for a missing optional argument.
func Absent(spec registry.ParameterSpec, pos grapheme.Position) *Argument {
	return &Argument{Format: spec.Format, Type: spec.Type, Pos: pos}
}

// Value returns the decoded payload: a List, a string, a bool or
// *KeyValues. It returns nil for absent optional arguments.
func (a *Argument) Value() any {
	if a.Format == registry.Star {
		return a.Bool
	}
	if !a.Present {
		return nil
	}
	switch a.Type {
	case registry.TokenList, registry.MacroDefList:
		return a.Tokens
	case registry.Boolean:
		return a.Bool
	case registry.KeyValue:
		return a.KeyValues
	default:
		return a.Raw
	}
}

// FormatText renders the argument with its delimiters.
func (a *Argument) FormatText() string {
	if a.Format == registry.Star {
		if a.Bool {
			return "*"
		}
		return ""
	}
	if !a.Present {
		return ""
	}
	return a.Delim + a.Raw + closing(a.Delim)
}

func closing(open string) string {
	switch open {
	case "[":
		return "]"
	case "{":
		return "}"
	default:
		return open
	}
}

// MarshalJSON renders the argument as {format, type, present, value, pos}.
func (a *Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Format  registry.Format   `json:"format"`
		Type    registry.Type     `json:"type"`
		Present bool              `json:"present"`
		Value   any               `json:"value,omitempty"`
		Pos     grapheme.Position `json:"pos"`
	}{
		Format:  a.Format,
		Type:    a.Type,
		Present: a.Present,
		Value:   a.Value(),
		Pos:     a.Pos,
	})
}
