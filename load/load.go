/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for loading and parsing finl
// documents.
package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"bennypowers.dev/finl/config"
	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/fs"
	"bennypowers.dev/finl/internal/logger"
	"bennypowers.dev/finl/macro"
	"bennypowers.dev/finl/parser"
	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/token"
	"bennypowers.dev/finl/yamlbody"
)

var (
	// ErrInvalidEncoding indicates a document that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8")

	// ErrDefinitions indicates a definitions file that could not be loaded.
	ErrDefinitions = errors.New("failed to load definitions")
)

const bom = "\uFEFF"

// Options configures how documents are loaded.
type Options struct {
	// Root is the project directory searched for .config/finl.*.
	// Defaults to the current directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Config overrides the config file. When nil it is loaded from Root.
	Config *config.Config

	// Definitions are extra definition files, loaded after the configured ones.
	Definitions []string

	// NoBuiltins skips the built-in definitions.
	// Takes precedence over config file if set.
	NoBuiltins bool

	// MaxDepth bounds nesting. Takes precedence over config file if set.
	MaxDepth int
}

// Document reads a source file, rejects invalid UTF-8, strips a leading
// byte order mark and normalizes the text to NFD.
func Document(filesystem fs.FileSystem, path string) (string, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return "", err
	}
	if off := invalidOffset(data); off >= 0 {
		return "", fmt.Errorf("%s: byte %d: %w", path, off, ErrInvalidEncoding)
	}
	text := strings.TrimPrefix(string(data), bom)
	return norm.NFD.String(text), nil
}

// invalidOffset returns the offset of the first byte that is not part of
// a valid UTF-8 sequence, or -1.
func invalidOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size == 1 {
			return off
		}
		off += size
	}
	return -1
}

// Registry builds a registry from the built-ins, when enabled, and the
// definition files named by cfg. The config's booleans apply last.
func Registry(filesystem fs.FileSystem, rootDir string, cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()
	if cfg.UseBuiltins() {
		reg.AddBuiltins()
	}

	paths, err := cfg.ExpandDefinitions(filesystem, rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDefinitions, err)
	}
	for _, path := range paths {
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDefinitions, err)
		}
		if err := reg.LoadDefinitions(data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDefinitions, path, err)
		}
		logger.Debug("loaded definitions from %s", path)
	}

	if cfg.Booleans != nil {
		reg.SetBooleans(*cfg.Booleans)
	}
	return reg, nil
}

// Session holds the effective configuration and registry shared by the
// documents of one project.
type Session struct {
	FS       fs.FileSystem
	Root     string
	Config   *config.Config
	Registry *registry.Registry
}

// NewSession resolves opts into a configuration and registry.
//
// The loading process:
//  1. Loads config from .config/finl.{yaml,yml,json} unless opts.Config is set
//  2. Applies Options values (they take precedence over config)
//  3. Builds the registry from built-ins and definition files
func NewSession(opts Options) (*Session, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(filesystem, root)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cfg == nil {
			cfg = config.Default()
		}
	}

	effective := *cfg
	effective.Definitions = append(append([]string(nil), cfg.Definitions...), opts.Definitions...)
	if opts.NoBuiltins {
		off := false
		effective.Builtins = &off
	}
	if opts.MaxDepth > 0 {
		effective.MaxDepth = opts.MaxDepth
	}

	reg, err := Registry(filesystem, root, &effective)
	if err != nil {
		return nil, err
	}
	return &Session{FS: filesystem, Root: root, Config: &effective, Registry: reg}, nil
}

// ParserOptions returns the options documents of the session are parsed
// with: configured depth, YAML body decoding and macro declarations.
func (s *Session) ParserOptions() []parser.Option {
	opts := s.Config.ParserOptions()
	return append(opts,
		parser.WithYAMLDecoder(yamlbody.Decode),
		parser.WithHook(macro.Hook(s.Registry)),
	)
}

// Parse reads and parses the document at path. Declarations in the
// document are added to the session registry.
func (s *Session) Parse(ctx context.Context, path string) (token.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := s.Document(path)
	if err != nil {
		return nil, err
	}
	opts := append(s.ParserOptions(), parser.WithHook(func(*token.Token) error {
		return ctx.Err()
	}))
	toks, err := parser.Parse(text, s.Registry, opts...)
	if err != nil {
		return nil, located(path, err)
	}
	return toks, nil
}

// located prefixes err with path, as path:line:col for positioned errors.
func located(path string, err error) error {
	if _, ok := diag.As(err); ok {
		return fmt.Errorf("%s:%w", path, err)
	}
	return fmt.Errorf("%s: %w", path, err)
}

// Tokenize reads the document at path and returns its raw lexical tokens.
func (s *Session) Tokenize(path string) (token.List, error) {
	text, err := s.Document(path)
	if err != nil {
		return nil, err
	}
	toks, err := parser.Tokenize(text, s.Registry)
	if err != nil {
		return nil, located(path, err)
	}
	return toks, nil
}

// Document reads the document at path, relative to the session root.
func (s *Session) Document(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, path)
	}
	return Document(s.FS, path)
}

// Load parses a single document with a fresh session.
func Load(ctx context.Context, path string, opts Options) (token.List, error) {
	s, err := NewSession(opts)
	if err != nil {
		return nil, err
	}
	return s.Parse(ctx, path)
}
