/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package check

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/internal/mapfs"
	"bennypowers.dev/finl/load"
)

func newSession(t *testing.T) *load.Session {
	t.Helper()
	mfs := mapfs.New()
	mfs.AddFile("/project/good.finl", `\emph{fine}`, 0644)
	mfs.AddFile("/project/unknown.finl", "ok\n  \\nosuch", 0644)
	mfs.AddFile("/project/binary.finl", "\xff", 0644)

	s, err := load.NewSession(load.Options{Root: "/project", FS: mfs})
	require.NoError(t, err)
	return s
}

func TestFiles(t *testing.T) {
	s := newSession(t)

	results := Files(t.Context(), s, []string{"good.finl", "unknown.finl", "binary.finl"})
	require.Len(t, results, 3)

	assert.True(t, results[0].OK)
	assert.Equal(t, "good.finl: ok", results[0].String())

	require.NotNil(t, results[1].Error)
	assert.ErrorIs(t, results[1].Error, diag.ErrUnknownCommand)
	assert.Regexp(t, `^unknown\.finl:2:3: UnknownCommand: `, results[1].String())

	assert.False(t, results[2].OK)
	assert.Nil(t, results[2].Error)
	assert.Contains(t, results[2].String(), "invalid UTF-8")
}

func TestWrite(t *testing.T) {
	results := []Result{
		{File: "a.finl", OK: true},
		{File: "b.finl", Message: "boom"},
	}

	t.Run("verbose", func(t *testing.T) {
		var out, errOut bytes.Buffer
		Write(&out, &errOut, results, false)
		assert.Equal(t, "a.finl: ok\n", out.String())
		assert.Equal(t, "b.finl: boom\n", errOut.String())
	})

	t.Run("quiet", func(t *testing.T) {
		var out, errOut bytes.Buffer
		Write(&out, &errOut, results, true)
		assert.Empty(t, out.String())
		assert.Equal(t, "b.finl: boom\n", errOut.String())
	})
}
