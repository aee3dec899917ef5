/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package macro_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/macro"
	"bennypowers.dev/finl/parser"
	"bennypowers.dev/finl/registry"
)

func parse(input string) (*registry.Registry, error) {
	reg := registry.NewWithBuiltins()
	_, err := parser.Parse(input, reg, parser.WithHook(macro.Hook(reg)))
	return reg, err
}

func TestNewCommandMacro(t *testing.T) {
	reg, err := parse(`\newcommand{\greet}{Hello~there} \greet`)
	require.NoError(t, err)

	expansion, ok := reg.Expand("greet")
	require.True(t, ok)
	assert.Equal(t, "Hello~there", expansion)
}

func TestNewCommandUnderscoreName(t *testing.T) {
	reg, err := parse(`\newcommand\my_macro{x}`)
	require.NoError(t, err)
	_, ok := reg.Expand("my_macro")
	assert.True(t, ok)
}

func TestNewCommandWithArguments(t *testing.T) {
	reg, err := parse(`\newcommand*{\pair}[2]{(#1, #2)}\pair*{a}{b}`)
	require.NoError(t, err)

	def, ok := reg.Resolve("pair", false)
	require.True(t, ok)
	assert.Equal(t, "*rTrT", def.Shape())
	assert.False(t, def.IsMacro)
}

func TestUndefinedBeforeDeclaration(t *testing.T) {
	_, err := parse(`\greet \newcommand{\greet}{hi}`)
	assert.ErrorIs(t, err, diag.ErrUnknownCommand)
}

func TestMacroAsKeyValueList(t *testing.T) {
	_, err := parse(`\newcommand{\opts}{width = 3in}\includegraphics[size = \opts]{a.png}`)
	require.NoError(t, err)
}

func TestNewEnvironment(t *testing.T) {
	reg, err := parse(`\newenvironment{note}[1]{[}{]}\begin{note}{Tip}body\end{note}`)
	require.NoError(t, err)

	def, ok := reg.Resolve("note", true)
	require.True(t, ok)
	assert.Equal(t, "rT", def.Shape())
	assert.Equal(t, registry.BodyTokenList, def.Body)
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"name is text", `\newcommand{greet}{x}`, macro.ErrInvalidName},
		{"two names", `\newcommand{\a\b}{x}`, macro.ErrInvalidName},
		{"bad count", `\newcommand{\a}[x]{y}`, macro.ErrInvalidArgumentCount},
		{"count too large", `\newcommand{\a}[10]{y}`, macro.ErrInvalidArgumentCount},
		{"environment name", `\newenvironment{my-env}{}{}`, registry.ErrInvalidDefinition},
		{"empty environment name", `\newenvironment{ }{}{}`, macro.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.input)
			if !errors.Is(err, tt.kind) {
				t.Errorf("parse() error = %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestDeclarationErrorPosition(t *testing.T) {
	_, err := parse("x \\newcommand{greet}{x}")
	require.Error(t, err)

	e, ok := diag.As(err)
	require.True(t, ok)
	assert.Equal(t, diag.ErrInvalidDeclaration, e.Kind)
	assert.Equal(t, 2, e.Pos.Offset)
	assert.Equal(t, 3, e.Pos.Column)
	assert.ErrorIs(t, err, macro.ErrInvalidName)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"InvalidDeclaration"`)
}
