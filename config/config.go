/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides project configuration loading for finl tooling.
package config

import (
	"bennypowers.dev/finl/parser"
	"bennypowers.dev/finl/registry"
)

// Config represents the finl project configuration.
//
//	definitions:
//	  - ./defs/*.yaml
//	builtins: false
//	maxDepth: 32
//	booleans:
//	  "true": [true, yes]
//	  "false": [false, no]
type Config struct {
	// Definitions lists definition files to load (paths or globs).
	Definitions []string `yaml:"definitions" json:"definitions"`

	// Builtins controls whether the built-in definitions are registered.
	// Nil means true.
	Builtins *bool `yaml:"builtins" json:"builtins"`

	// MaxDepth bounds argument and environment nesting. Zero means the
	// parser default.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`

	// Booleans replaces the words accepted as boolean argument values.
	Booleans *registry.Vocabulary `yaml:"booleans" json:"booleans"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// UseBuiltins reports whether the built-in definitions should be loaded.
func (c *Config) UseBuiltins() bool {
	return c.Builtins == nil || *c.Builtins
}

// ParserOptions returns parser options with configuration applied.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.MaxDepth))
	}
	return opts
}
