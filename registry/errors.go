/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package registry

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrInvalidDefinition indicates a definition that cannot be registered.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrInvalidShape indicates a malformed parameter shorthand string.
	ErrInvalidShape = errors.New("invalid parameter shape")

	// ErrUnknownName indicates an unrecognized format, type or body type name.
	ErrUnknownName = errors.New("unknown name")
)
