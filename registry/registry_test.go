/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package registry_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/finl/registry"
)

func TestRegisterCommand(t *testing.T) {
	r := registry.New()
	err := r.RegisterCommand("foo", false,
		registry.ParameterSpec{Format: registry.Optional, Type: registry.TokenList},
		registry.ParameterSpec{Format: registry.Required, Type: registry.TokenList},
	)
	require.NoError(t, err)

	def, ok := r.Resolve("foo", false)
	require.True(t, ok)
	assert.Equal(t, "foo", def.Name)
	assert.False(t, def.AllowsStar)
	assert.Len(t, def.Params, 2)
	assert.Equal(t, "oTrT", def.Shape())

	_, ok = r.Resolve("foo", true)
	assert.False(t, ok, "commands and environments are separate namespaces")
}

func TestRegisterCommandStar(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterCommand("foo", true,
		registry.ParameterSpec{Format: registry.Required, Type: registry.TokenList}))

	def, _ := r.Resolve("foo", false)
	assert.True(t, def.AllowsStar)
	assert.Equal(t, "*rT", def.Shape())

	require.NoError(t, r.RegisterCommand("bar", false,
		registry.ParameterSpec{Format: registry.Star, Type: registry.Boolean}))
	def, _ = r.Resolve("bar", false)
	assert.True(t, def.AllowsStar, "a leading star parameter implies AllowsStar")
	assert.Equal(t, "*", def.Shape())
}

func TestRegisterInvalid(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *registry.Registry) error
	}{
		{"empty command name", func(r *registry.Registry) error {
			return r.RegisterCommand("", false)
		}},
		{"command name with digits", func(r *registry.Registry) error {
			return r.RegisterCommand("foo2", false)
		}},
		{"star with non-boolean type", func(r *registry.Registry) error {
			return r.RegisterCommand("foo", false, registry.ParameterSpec{Format: registry.Star, Type: registry.TokenList})
		}},
		{"star after another parameter", func(r *registry.Registry) error {
			return r.RegisterCommand("foo", false,
				registry.ParameterSpec{Format: registry.Required},
				registry.ParameterSpec{Format: registry.Star, Type: registry.Boolean})
		}},
		{"environment name not an identifier", func(r *registry.Registry) error {
			return r.RegisterEnvironment("my-env", false, registry.BodyTokenList)
		}},
		{"environment with star parameter", func(r *registry.Registry) error {
			return r.RegisterEnvironment("env", false, registry.BodyTokenList,
				registry.ParameterSpec{Format: registry.Star, Type: registry.Boolean})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(registry.New())
			if !errors.Is(err, registry.ErrInvalidDefinition) {
				t.Errorf("expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestRegisterEnvironment(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterEnvironment("listing", true, registry.BodyNone))

	def, ok := r.Resolve("listing", true)
	require.True(t, ok)
	assert.True(t, def.IsEnvironment)
	assert.True(t, def.AllowsStar)
	assert.Empty(t, def.Params, "environment stars are not parameters")
	assert.Equal(t, registry.BodyTokenList, def.Body)
}

func TestDefineMacro(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterCommand("plain", false))
	require.NoError(t, r.DefineMacro("opts", "a = 1"))
	require.NoError(t, r.DefineMacro("snake_case", "b = 2"))

	exp, ok := r.Expand("opts")
	assert.True(t, ok)
	assert.Equal(t, "a = 1", exp)

	_, ok = r.Expand("plain")
	assert.False(t, ok, "registered commands are not macros")

	_, ok = r.Expand("missing")
	assert.False(t, ok)

	def, ok := r.Resolve("snake_case", false)
	require.True(t, ok)
	assert.True(t, def.IsMacro)
}

func TestResolveSeesLaterDefinitions(t *testing.T) {
	r := registry.New()
	_, ok := r.Resolve("late", false)
	require.False(t, ok)

	require.NoError(t, r.RegisterCommand("late", false))
	_, ok = r.Resolve("late", false)
	assert.True(t, ok, "a miss must not be cached")
}

func TestConcurrentReadWhileAppend(t *testing.T) {
	r := registry.NewWithBuiltins()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			_ = r.DefineMacro("m", "x = 1")
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			r.Resolve("section", false)
			r.Expand("m")
		}
	}()
	wg.Wait()
}

func TestVocabulary(t *testing.T) {
	r := registry.New()
	v, ok := r.Booleans().Lookup("true")
	assert.True(t, ok)
	assert.True(t, v)
	_, ok = r.Booleans().Lookup("yes")
	assert.False(t, ok)

	r.SetBooleans(registry.Vocabulary{True: []string{"yes"}, False: []string{"no"}})
	v, ok = r.Booleans().Lookup("no")
	assert.True(t, ok)
	assert.False(t, v)
}

func TestBuiltins(t *testing.T) {
	r := registry.NewWithBuiltins()

	verb, ok := r.Resolve("verb", false)
	require.True(t, ok)
	assert.Equal(t, "*aV", verb.Shape())

	env, ok := r.Resolve("verbatim", true)
	require.True(t, ok)
	assert.Equal(t, registry.BodyVerbatim, env.Body)

	_, ok = r.Resolve(`\`, false)
	assert.True(t, ok)

	names := make([]string, 0)
	for _, def := range r.Environments() {
		names = append(names, def.Name)
	}
	assert.IsIncreasing(t, names)
}
