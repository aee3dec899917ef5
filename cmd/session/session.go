/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package session builds the load session shared by the finl subcommands
// from the persistent flags.
package session

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"

	"bennypowers.dev/finl/load"
)

// FromFlags resolves the persistent flags, bound to viper by the root
// command, into a load session.
func FromFlags() (*load.Session, error) {
	s, err := load.NewSession(Options())
	if err != nil {
		return nil, fmt.Errorf("error loading definitions: %w", err)
	}
	return s, nil
}

// Options returns the load options the persistent flags describe.
func Options() load.Options {
	return load.Options{
		Root:        viper.GetString("root"),
		Definitions: viper.GetStringSlice("definitions"),
		NoBuiltins:  viper.GetBool("no-builtins"),
		MaxDepth:    viper.GetInt("max-depth"),
	}
}

// Format validates an output format flag.
func Format(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unknown format %q (expected one of %v)", format, allowed)
}
