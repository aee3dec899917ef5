/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package scanner

import (
	"strings"

	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/grapheme"
)

// Tag is a \begin{name} or \end{name} tag. Both \begin*{name} and
// \begin{name*} set Starred.
type Tag struct {
	Begin   bool
	Name    string
	Starred bool
	Pos     grapheme.Position

	// Len is the number of graphemes the tag spans.
	Len int
}

// TagAt reads an environment tag starting n graphemes after the cursor.
// Malformed tags are reported as not found.
func (s *Scanner) TagAt(n int) (Tag, bool) {
	tag, ok, err := s.tagAt(s.i + n)
	if err != nil {
		return Tag{}, false
	}
	return tag, ok
}

// tagAt reads an environment tag at index i. It reports ok=false when the
// text at i is not \begin or \end, and an error when it is but the name
// group is malformed.
func (s *Scanner) tagAt(i int) (Tag, bool, error) {
	if i >= len(s.gs) || !s.gs[i].Is(`\`) {
		return Tag{}, false, nil
	}
	tag := Tag{Pos: s.gs[i].Pos}

	j := i + 1
	for j < len(s.gs) && s.gs[j].IsLetter() {
		j++
	}
	switch grapheme.Join(s.gs[i+1 : j]) {
	case "begin":
		tag.Begin = true
	case "end":
	default:
		return Tag{}, false, nil
	}

	if j < len(s.gs) && s.gs[j].Is("*") {
		tag.Starred = true
		j++
	}
	for j < len(s.gs) && s.gs[j].IsBlank() {
		j++
	}
	if j >= len(s.gs) || !s.gs[j].Is("{") {
		return Tag{}, false, diag.New(diag.ErrMissingRequiredArgument, s.PosAt(j), "expected { after %s", tag.keyword())
	}

	open := j
	j++
	for j < len(s.gs) && !s.gs[j].Is("}") {
		if s.gs[j].IsLineBreak() {
			break
		}
		j++
	}
	if j >= len(s.gs) || !s.gs[j].Is("}") {
		return Tag{}, false, diag.New(diag.ErrUnmatchedDelimiter, s.gs[open].Pos, "unclosed environment name after %s", tag.keyword())
	}

	name := strings.TrimSpace(grapheme.Join(s.gs[open+1 : j]))
	if trimmed, ok := strings.CutSuffix(name, "*"); ok {
		name = strings.TrimSpace(trimmed)
		tag.Starred = true
	}
	tag.Name = name
	tag.Len = j + 1 - i
	return tag, true, nil
}

func (t Tag) keyword() string {
	if t.Begin {
		return `\begin`
	}
	return `\end`
}

// Matches reports whether t is the end tag for an environment named name.
func (t Tag) Matches(name string) bool {
	return !t.Begin && t.Name == name
}
