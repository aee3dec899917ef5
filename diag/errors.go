/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package diag provides the positioned errors reported by the finl parser.
package diag

import "errors"

// Sentinel error kinds. Every *Error unwraps to exactly one of these.
var (
	// ErrUnknownCommand indicates a command name that is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownEnvironment indicates an environment name that is not registered.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrMissingRequiredArgument indicates a required argument was not found.
	ErrMissingRequiredArgument = errors.New("missing required argument")

	// ErrUnmatchedDelimiter indicates an unclosed or unexpected delimiter.
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")

	// ErrUnterminatedArbitraryArgument indicates an arbitrary-delimited
	// argument hit a line break or the end of input before its closing delimiter.
	ErrUnterminatedArbitraryArgument = errors.New("unterminated arbitrary argument")

	// ErrInvalidBoolean indicates a boolean argument outside the vocabulary.
	ErrInvalidBoolean = errors.New("invalid boolean")

	// ErrInvalidKey indicates a malformed key in a key-value list.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUndefinedOrInvalidMacroValue indicates a key-value value naming a
	// macro that is undefined or does not expand to key-value data.
	ErrUndefinedOrInvalidMacroValue = errors.New("undefined or invalid macro value")

	// ErrUnterminatedEnvironment indicates input ended inside an environment.
	ErrUnterminatedEnvironment = errors.New("unterminated environment")

	// ErrMismatchedStarForm indicates begin and end tags disagree on the star.
	ErrMismatchedStarForm = errors.New("mismatched star form")

	// ErrNestingTooDeep indicates the nesting limit was exceeded.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// ErrPayloadDecode indicates an external payload decoder rejected a body.
	ErrPayloadDecode = errors.New("payload decode failed")

	// ErrInvalidDeclaration indicates a \newcommand or \newenvironment that
	// could not be registered.
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

var kindNames = map[error]string{
	ErrUnknownCommand:                "UnknownCommand",
	ErrUnknownEnvironment:            "UnknownEnvironment",
	ErrMissingRequiredArgument:       "MissingRequiredArgument",
	ErrUnmatchedDelimiter:            "UnmatchedDelimiter",
	ErrUnterminatedArbitraryArgument: "UnterminatedArbitraryArgument",
	ErrInvalidBoolean:                "InvalidBoolean",
	ErrInvalidKey:                    "InvalidKey",
	ErrUndefinedOrInvalidMacroValue:  "UndefinedOrInvalidMacroValue",
	ErrUnterminatedEnvironment:       "UnterminatedEnvironment",
	ErrMismatchedStarForm:            "MismatchedStarForm",
	ErrNestingTooDeep:                "NestingTooDeep",
	ErrPayloadDecode:                 "PayloadDecode",
	ErrInvalidDeclaration:            "InvalidDeclaration",
}

// KindName returns the taxonomy name of a sentinel kind, e.g. "InvalidKey".
func KindName(kind error) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "Unknown"
}
