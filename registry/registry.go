/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package registry holds the command and environment definitions that
// determine how finl arguments are parsed.
//
// The registry is append-only for the life of a document. Lookups never
// cache misses, since a macro defined later in the document may introduce a
// name that was unknown earlier.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"bennypowers.dev/finl/grapheme"
	"bennypowers.dev/finl/internal/logger"
)

// Definition is the declared shape of a command or environment.
type Definition struct {
	// Name is the command name without the backslash, or the environment name.
	Name string `json:"name"`

	// IsEnvironment distinguishes environments from commands.
	IsEnvironment bool `json:"environment,omitempty"`

	// AllowsStar is true when a command's first parameter is a Star, or
	// when an environment accepts the starred begin and end tags.
	AllowsStar bool `json:"star,omitempty"`

	// Params are the declared parameters, in order.
	Params []ParameterSpec `json:"params,omitempty"`

	// Body is the body type of an environment. BodyNone for commands.
	Body BodyType `json:"body,omitempty"`

	// Expansion is the replacement text of a user-defined macro.
	Expansion string `json:"expansion,omitempty"`

	// IsMacro is true for definitions created by DefineMacro.
	IsMacro bool `json:"macro,omitempty"`
}

// Shape returns the parameter list in shorthand notation.
func (d *Definition) Shape() string {
	return FormatShape(d.Params)
}

// Vocabulary is the set of words accepted as boolean argument values.
type Vocabulary struct {
	True  []string `yaml:"true" json:"true"`
	False []string `yaml:"false" json:"false"`
}

// DefaultVocabulary accepts exactly "true" and "false".
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		True:  []string{"true"},
		False: []string{"false"},
	}
}

// Lookup returns the boolean value of word.
func (v Vocabulary) Lookup(word string) (value bool, ok bool) {
	if slices.Contains(v.True, word) {
		return true, true
	}
	if slices.Contains(v.False, word) {
		return false, true
	}
	return false, false
}

// Registry maps names to definitions. It is safe for one writer and
// concurrent readers.
type Registry struct {
	mu           sync.RWMutex
	commands     map[string]*Definition
	environments map[string]*Definition
	booleans     Vocabulary
}

// New creates an empty registry with the default boolean vocabulary.
func New() *Registry {
	return &Registry{
		commands:     make(map[string]*Definition),
		environments: make(map[string]*Definition),
		booleans:     DefaultVocabulary(),
	}
}

// NewWithBuiltins creates a registry holding the built-in definitions.
func NewWithBuiltins() *Registry {
	r := New()
	r.AddBuiltins()
	return r
}

// RegisterCommand declares a command. A command that allows a star gets a
// leading Star parameter if params does not already start with one.
func (r *Registry) RegisterCommand(name string, allowsStar bool, params ...ParameterSpec) error {
	if !isCommandName(name) {
		return fmt.Errorf("%w: command name %q", ErrInvalidDefinition, name)
	}
	def, err := newDefinition(name, false, allowsStar, params, BodyNone)
	if err != nil {
		return err
	}
	r.store(r.commands, def)
	return nil
}

// RegisterEnvironment declares an environment. The star of an environment
// belongs to its begin and end tags, so params must not contain a Star.
// BodyNone is treated as BodyTokenList.
func (r *Registry) RegisterEnvironment(name string, allowsStar bool, body BodyType, params ...ParameterSpec) error {
	if !grapheme.IsIdentifier(name) {
		return fmt.Errorf("%w: environment name %q is not an identifier", ErrInvalidDefinition, name)
	}
	if body == BodyNone {
		body = BodyTokenList
	}
	def, err := newDefinition(name, true, allowsStar, params, body)
	if err != nil {
		return err
	}
	r.store(r.environments, def)
	return nil
}

// DefineMacro declares a zero-argument user macro with the given expansion.
func (r *Registry) DefineMacro(name, expansion string) error {
	if !isCommandName(name) {
		return fmt.Errorf("%w: macro name %q", ErrInvalidDefinition, name)
	}
	r.store(r.commands, &Definition{
		Name:      name,
		Expansion: expansion,
		IsMacro:   true,
	})
	return nil
}

// Resolve looks up a command or environment by exact name.
func (r *Registry) Resolve(name string, isEnvironment bool) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if isEnvironment {
		def, ok := r.environments[name]
		return def, ok
	}
	def, ok := r.commands[name]
	return def, ok
}

// Expand returns the expansion of a user-defined macro.
func (r *Registry) Expand(name string) (string, bool) {
	def, ok := r.Resolve(name, false)
	if !ok || !def.IsMacro {
		return "", false
	}
	return def.Expansion, true
}

// Booleans returns the boolean vocabulary.
func (r *Registry) Booleans() Vocabulary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.booleans
}

// SetBooleans replaces the boolean vocabulary.
func (r *Registry) SetBooleans(v Vocabulary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.booleans = v
}

// Commands returns all command definitions sorted by name.
func (r *Registry) Commands() []*Definition {
	return r.sorted(r.commands)
}

// Environments returns all environment definitions sorted by name.
func (r *Registry) Environments() []*Definition {
	return r.sorted(r.environments)
}

func (r *Registry) sorted(m map[string]*Definition) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(m))
	for _, def := range m {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

func (r *Registry) store(m map[string]*Definition, def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := m[def.Name]; exists {
		logger.Debug("redefining %s", def.Name)
	}
	m[def.Name] = def
}

func newDefinition(name string, isEnv, allowsStar bool, params []ParameterSpec, body BodyType) (*Definition, error) {
	params = slices.Clone(params)
	for i, p := range params {
		if p.Format < Star || p.Format > Arbitrary {
			return nil, fmt.Errorf("%w: %s: parameter %d has unknown format", ErrInvalidDefinition, name, i+1)
		}
		if p.Type < TokenList || p.Type > Math {
			return nil, fmt.Errorf("%w: %s: parameter %d has unknown type", ErrInvalidDefinition, name, i+1)
		}
		if p.Format == Star && p.Type != Boolean {
			return nil, fmt.Errorf("%w: %s: star parameter %d must be boolean", ErrInvalidDefinition, name, i+1)
		}
		if p.Format == Star && (i > 0 || isEnv) {
			return nil, fmt.Errorf("%w: %s: star must be the first parameter of a command", ErrInvalidDefinition, name)
		}
	}

	hasStar := len(params) > 0 && params[0].Format == Star
	if allowsStar && !hasStar && !isEnv {
		params = append([]ParameterSpec{{Format: Star, Type: Boolean}}, params...)
	}

	return &Definition{
		Name:          name,
		IsEnvironment: isEnv,
		AllowsStar:    allowsStar || hasStar,
		Params:        params,
		Body:          body,
	}, nil
}

// isCommandName accepts a single grapheme or a run of letters and
// underscores.
func isCommandName(name string) bool {
	gs := grapheme.All(name)
	if len(gs) == 0 {
		return false
	}
	if len(gs) == 1 {
		return true
	}
	for _, g := range gs {
		if !g.IsLetter() && g.Text != "_" {
			return false
		}
	}
	return !strings.HasPrefix(name, "_")
}
