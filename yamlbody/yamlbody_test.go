/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package yamlbody_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/finl/parser"
	"bennypowers.dev/finl/registry"
	"bennypowers.dev/finl/yamlbody"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{"empty", "", nil},
		{"scalar", "hello\n", "hello"},
		{"mapping", "title: Test\ncount: 3\n", map[string]any{"title": "Test", "count": 3}},
		{"numeric keys", "10: ten\n", map[string]any{"10": "ten"}},
		{"nested", "a:\n  - b: true\n", map[string]any{"a": []any{map[string]any{"b": true}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := yamlbody.Decode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeError(t *testing.T) {
	_, err := yamlbody.Decode("a: [1, 2\n")
	assert.Error(t, err)
}

func TestWithParser(t *testing.T) {
	src := "\\begin{metadata}\n  author: Ada\n  year: 1843\n\\end{metadata}\n"
	toks, err := parser.Parse(src, registry.NewWithBuiltins(), parser.WithYAMLDecoder(yamlbody.Decode))
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, map[string]any{"author": "Ada", "year": 1843}, toks[0].Body.Data)
}
