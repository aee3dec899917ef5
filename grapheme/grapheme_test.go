/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package grapheme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/finl/grapheme"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		texts   []string
		classes []grapheme.Class
	}{
		{
			name:    "ascii",
			input:   `a\1 `,
			texts:   []string{"a", `\`, "1", " "},
			classes: []grapheme.Class{grapheme.Letter, grapheme.Symbol, grapheme.Symbol, grapheme.Space},
		},
		{
			name:    "decomposed letter stays one grapheme",
			input:   "e\u0301x",
			texts:   []string{"e\u0301", "x"},
			classes: []grapheme.Class{grapheme.Letter, grapheme.Letter},
		},
		{
			name:    "flag is one symbol",
			input:   "\U0001F1E8\U0001F1E6!",
			texts:   []string{"\U0001F1E8\U0001F1E6", "!"},
			classes: []grapheme.Class{grapheme.Symbol, grapheme.Symbol},
		},
		{
			name:    "zwj emoji sequence is one symbol",
			input:   "\U0001F43B\u200d\u2744\ufe0f",
			texts:   []string{"\U0001F43B\u200d\u2744\ufe0f"},
			classes: []grapheme.Class{grapheme.Symbol},
		},
		{
			name:    "orphan combining mark",
			input:   "\u0301a",
			texts:   []string{"\u0301", "a"},
			classes: []grapheme.Class{grapheme.Mark, grapheme.Letter},
		},
		{
			name:    "mark after backslash stands alone",
			input:   "\\\u0301x",
			texts:   []string{`\`, "\u0301", "x"},
			classes: []grapheme.Class{grapheme.Symbol, grapheme.Mark, grapheme.Letter},
		},
		{
			name:    "mark after brace stands alone",
			input:   "{\u0301}",
			texts:   []string{"{", "\u0301", "}"},
			classes: []grapheme.Class{grapheme.Symbol, grapheme.Mark, grapheme.Symbol},
		},
		{
			name:    "joiner after backslash does not absorb",
			input:   "\\\u200dx",
			texts:   []string{`\`, "\u200d", "x"},
			classes: []grapheme.Class{grapheme.Symbol, grapheme.Symbol, grapheme.Letter},
		},
		{
			name:    "crlf is one space",
			input:   "a\r\nb",
			texts:   []string{"a", "\r\n", "b"},
			classes: []grapheme.Class{grapheme.Letter, grapheme.Space, grapheme.Letter},
		},
		{
			name:    "control character",
			input:   "\x00",
			texts:   []string{"\x00"},
			classes: []grapheme.Class{grapheme.Other},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := grapheme.All(tt.input)
			require.Len(t, gs, len(tt.texts))
			for i, g := range gs {
				assert.Equal(t, tt.texts[i], g.Text, "grapheme %d", i)
				assert.Equal(t, tt.classes[i], g.Class, "class of grapheme %d", i)
			}
		})
	}
}

func TestClassifyPositions(t *testing.T) {
	gs := grapheme.All("ab\n\U0001F1E8\U0001F1E6c")
	require.Len(t, gs, 5)

	assert.Equal(t, grapheme.Position{Offset: 0, Line: 1, Column: 1}, gs[0].Pos)
	assert.Equal(t, grapheme.Position{Offset: 2, Line: 1, Column: 3}, gs[2].Pos)
	assert.Equal(t, grapheme.Position{Offset: 3, Line: 2, Column: 1}, gs[3].Pos)
	assert.Equal(t, grapheme.Position{Offset: 11, Line: 2, Column: 2}, gs[4].Pos)
}

func TestClassifyStopsEarly(t *testing.T) {
	count := 0
	for range grapheme.Classify("abcdef") {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected iteration to stop after 2, got %d", count)
	}
}

func TestGraphemePredicates(t *testing.T) {
	gs := grapheme.All("a\u0301 \t\n")
	require.Len(t, gs, 4)

	assert.True(t, gs[0].IsLetter())
	assert.True(t, gs[1].IsBlank())
	assert.True(t, gs[2].IsBlank())
	assert.True(t, gs[3].IsLineBreak())
	assert.False(t, gs[3].IsBlank())
	assert.Equal(t, "a\u0301 \t\n", grapheme.Join(gs))
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"foo", true},
		{"foo_bar", true},
		{"x1", true},
		{"\u00fcn\u00efcode", true},
		{"e\u0301t\u00e9", true},
		{"", false},
		{"1abc", false},
		{"_foo", false},
		{"foo-bar", false},
		{"foo bar", false},
		{"a.b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := grapheme.IsIdentifier(tt.input); got != tt.expected {
				t.Errorf("IsIdentifier(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEnd(t *testing.T) {
	gs := grapheme.All("ab\nc")
	assert.Equal(t, grapheme.Position{Offset: 1, Line: 1, Column: 2}, gs[0].End())
	assert.Equal(t, grapheme.Position{Offset: 3, Line: 2, Column: 1}, gs[2].End())
	assert.Equal(t, grapheme.Position{Offset: 4, Line: 2, Column: 2}, grapheme.EndOf(gs))
	assert.Equal(t, grapheme.Position{Line: 1, Column: 1}, grapheme.EndOf(nil))
}
