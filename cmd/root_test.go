/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/finl/cmd/check"
)

const project = "../testdata/fixtures/config/yaml"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommands(t *testing.T) {
	t.Run("check", func(t *testing.T) {
		out, _, err := execute(t, "--root", project, "check", "doc.finl")
		require.NoError(t, err)
		assert.Equal(t, "doc.finl: ok\n", out)
	})

	t.Run("check failure", func(t *testing.T) {
		_, errOut, err := execute(t, "--root", "../testdata/fixtures/documents", "check", "invalid.finl")
		assert.ErrorIs(t, err, check.ErrCheckFailed)
		assert.Contains(t, errOut, "invalid UTF-8")
	})

	t.Run("parse", func(t *testing.T) {
		out, _, err := execute(t, "--root", project, "parse", "doc.finl")
		require.NoError(t, err)
		assert.Contains(t, out, `1:1 CommandName "\\section"`)
		assert.Contains(t, out, `    size = "\\defaults"`)
		assert.Contains(t, out, "  body verbatim\n    |   x := 1\n")
	})

	t.Run("tokens", func(t *testing.T) {
		out, _, err := execute(t, "--root", project, "tokens", "doc.finl")
		require.NoError(t, err)
		assert.Contains(t, out, "EnvironmentBegin")
	})

	t.Run("defs", func(t *testing.T) {
		out, _, err := execute(t, "--root", project, "defs", "--kind", "macros")
		require.NoError(t, err)
		assert.Contains(t, out, "Macros (1)\n")
		assert.Contains(t, out, `\defaults`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, "version", "--format", "xml")
		assert.Error(t, err)
	})
}
