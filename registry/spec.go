/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package registry

import (
	"fmt"
	"strings"
)

// Format is the delimiter shape of a parameter.
type Format int

const (
	// Star is an optional `*` directly after the command name.
	Star Format = iota

	// Optional is a bracketed `[...]` argument that may be absent.
	Optional

	// Required is a braced group or a single ungrouped token.
	Required

	// RequiredBraced is a mandatory braced group.
	RequiredBraced

	// Arbitrary is delimited by its first non-blank grapheme, or braced.
	Arbitrary
)

var formatNames = []string{"star", "optional", "required", "braced", "arbitrary"}

// String returns the name used in definition files.
func (f Format) String() string {
	if int(f) < len(formatNames) && f >= 0 {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	i, err := lookupName(formatNames, string(text), "format")
	if err != nil {
		return err
	}
	*f = Format(i)
	return nil
}

// Type describes how a captured argument is decoded.
type Type int

const (
	// TokenList arguments are re-tokenized as ordinary input.
	TokenList Type = iota

	// Verbatim arguments keep the exact source text.
	Verbatim

	// Boolean arguments are a star or a word from the boolean vocabulary.
	Boolean

	// KeyValue arguments are comma separated key = value pairs.
	KeyValue

	// MacroDefList arguments are tokenized in macro-definition mode.
	MacroDefList

	// Math arguments are captured raw for an external math processor.
	Math
)

var typeNames = []string{"tokens", "verbatim", "boolean", "keyvalue", "macrodef", "math"}

// String returns the name used in definition files.
func (t Type) String() string {
	if int(t) < len(typeNames) && t >= 0 {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	i, err := lookupName(typeNames, string(text), "type")
	if err != nil {
		return err
	}
	*t = Type(i)
	return nil
}

// BodyType describes how an environment body is acquired.
type BodyType int

const (
	// BodyNone is used for commands. Environments registered with it get
	// a token list body.
	BodyNone BodyType = iota

	// BodyTokenList bodies are tokenized and parsed like the surrounding text.
	BodyTokenList

	// BodyMath bodies are captured raw up to the matching end tag.
	BodyMath

	// BodyVerbatim bodies are captured line by line with indentation stripped.
	BodyVerbatim

	// BodyYAML bodies are captured raw and handed to a YAML decoder.
	BodyYAML
)

var bodyNames = []string{"none", "tokens", "math", "verbatim", "yaml"}

// String returns the name used in definition files.
func (b BodyType) String() string {
	if int(b) < len(bodyNames) && b >= 0 {
		return bodyNames[b]
	}
	return fmt.Sprintf("BodyType(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b BodyType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BodyType) UnmarshalText(text []byte) error {
	i, err := lookupName(bodyNames, string(text), "body type")
	if err != nil {
		return err
	}
	*b = BodyType(i)
	return nil
}

func lookupName(names []string, s, what string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownName, what, s)
}

// ParameterSpec declares one parameter of a command or environment.
type ParameterSpec struct {
	Format Format `yaml:"format" json:"format"`
	Type   Type   `yaml:"type" json:"type"`
}

// String renders the spec in shorthand notation, see ParseShape.
func (p ParameterSpec) String() string {
	if p.Format == Star {
		return "*"
	}
	return string(formatCodes[p.Format]) + string(typeCodes[p.Type])
}

var (
	formatCodes = map[Format]byte{Star: '*', Optional: 'o', Required: 'r', RequiredBraced: 'b', Arbitrary: 'a'}
	typeCodes   = map[Type]byte{TokenList: 'T', Verbatim: 'V', Boolean: 'B', KeyValue: 'K', MacroDefList: 'M', Math: '$'}
)

// ParseShape parses a compact parameter list.
//
// Each parameter is a format code followed by an optional type code:
//
//	*  star         o  optional      r  required
//	b  braced       a  arbitrary
//
//	T  tokens       V  verbatim      B  boolean
//	K  keyvalue     M  macrodef      $  math
//
// The type defaults to T, or B for a star. White space is ignored, so
// "*oT rT" declares a star, an optional token list and a required token list.
func ParseShape(shape string) ([]ParameterSpec, error) {
	var params []ParameterSpec
	for i := 0; i < len(shape); i++ {
		c := shape[i]
		if c == ' ' || c == '\t' || c == ',' {
			continue
		}

		var spec ParameterSpec
		found := false
		for f, code := range formatCodes {
			if code == c {
				spec.Format = f
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q at offset %d in %q", ErrInvalidShape, c, i, shape)
		}

		if spec.Format == Star {
			spec.Type = Boolean
		}
		if i+1 < len(shape) {
			for t, code := range typeCodes {
				if code == shape[i+1] {
					spec.Type = t
					i++
					break
				}
			}
		}
		params = append(params, spec)
	}
	return params, nil
}

// FormatShape renders params in the notation accepted by ParseShape.
func FormatShape(params []ParameterSpec) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(p.String())
	}
	return b.String()
}
