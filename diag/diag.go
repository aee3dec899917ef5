/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diag

import (
	"encoding/json"
	"errors"
	"fmt"

	"bennypowers.dev/finl/grapheme"
)

// Error is a parse failure at a source position.
type Error struct {
	// Kind is one of the package's sentinel errors.
	Kind error

	// Message describes the failure.
	Message string

	// Pos is where the failure was detected.
	Pos grapheme.Position

	// Cause is an optional underlying error, e.g. from a nested parse.
	Cause error
}

// New creates an error of the given kind at pos.
func New(kind error, pos grapheme.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// Wrap creates an error of the given kind at pos caused by err.
func Wrap(kind error, pos grapheme.Position, err error, format string, args ...any) *Error {
	e := New(kind, pos, format, args...)
	e.Cause = err
	return e
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the kind and the cause, so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// MarshalJSON renders the error as {kind, message, offset, line, column}.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
		Offset  int    `json:"offset"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
	}{
		Kind:    KindName(e.Kind),
		Message: e.Message,
		Offset:  e.Pos.Offset,
		Line:    e.Pos.Line,
		Column:  e.Pos.Column,
	})
}

// As returns err as an *Error when it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
