/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package macro records the commands and environments a document declares
// with \newcommand and \newenvironment, so later text can use them.
//
// Only the declared argument shape is recorded. Zero-argument commands
// keep their replacement text as a macro expansion; what a macro does
// when invoked is up to the caller.
package macro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/internal/logger"
	"bennypowers.dev/finl/parser"
	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/token"
)

// MaxArguments is the largest argument count a declaration may give.
const MaxArguments = 9

var (
	// ErrInvalidName indicates a declaration whose name is not a command
	// or environment name.
	ErrInvalidName = errors.New("invalid macro name")

	// ErrInvalidArgumentCount indicates an argument count outside 0 to 9.
	ErrInvalidArgumentCount = errors.New("invalid argument count")
)

// Hook returns a parser hook that adds declarations to reg.
func Hook(reg *registry.Registry) parser.Hook {
	return func(tok *token.Token) error {
		var err error
		switch {
		case tok.Is("newcommand"), tok.Is("renewcommand"):
			err = defineCommand(reg, tok)
		case tok.Is("newenvironment"), tok.Is("renewenvironment"):
			err = defineEnvironment(reg, tok)
		default:
			return nil
		}
		if err != nil {
			return diag.Wrap(diag.ErrInvalidDeclaration, tok.Pos, err, `\%s`, tok.Text)
		}
		return nil
	}
}

// defineCommand handles \newcommand*{\name}[count]{replacement}.
func defineCommand(reg *registry.Registry, tok *token.Token) error {
	if len(tok.Args) != 4 {
		return fmt.Errorf("%w: expected 4 arguments, got %d", registry.ErrInvalidDefinition, len(tok.Args))
	}
	names := tok.Args[1].Tokens
	if len(names) != 1 || !names[0].IsCommand() {
		return fmt.Errorf("%w: %q", ErrInvalidName, tok.Args[1].Raw)
	}
	name := names[0].Text

	count, err := argumentCount(tok.Args[2])
	if err != nil {
		return err
	}
	if count == 0 {
		logger.Debug(`defining macro \%s`, name)
		return reg.DefineMacro(name, tok.Args[3].Raw)
	}

	logger.Debug(`defining command \%s with %d arguments`, name, count)
	return reg.RegisterCommand(name, tok.Args[0].Bool, requiredTokenLists(count)...)
}

// defineEnvironment handles \newenvironment*{name}[count]{begin}{end}.
func defineEnvironment(reg *registry.Registry, tok *token.Token) error {
	if len(tok.Args) != 5 {
		return fmt.Errorf("%w: expected 5 arguments, got %d", registry.ErrInvalidDefinition, len(tok.Args))
	}
	name := strings.TrimSpace(tok.Args[1].Raw)
	if name == "" {
		return fmt.Errorf("%w: empty environment name", ErrInvalidName)
	}

	count, err := argumentCount(tok.Args[2])
	if err != nil {
		return err
	}

	logger.Debug("defining environment %s with %d arguments", name, count)
	return reg.RegisterEnvironment(name, tok.Args[0].Bool, registry.BodyTokenList, requiredTokenLists(count)...)
}

func argumentCount(arg *token.Argument) (int, error) {
	if !arg.Present {
		return 0, nil
	}
	raw := strings.TrimSpace(arg.Raw)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > MaxArguments {
		return 0, fmt.Errorf("%w: %q", ErrInvalidArgumentCount, raw)
	}
	return n, nil
}

func requiredTokenLists(n int) []registry.ParameterSpec {
	params := make([]registry.ParameterSpec, n)
	for i := range params {
		params[i] = registry.ParameterSpec{Format: registry.Required, Type: registry.TokenList}
	}
	return params
}
