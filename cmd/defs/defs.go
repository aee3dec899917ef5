/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package defs provides the defs command for finl.
package defs

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/finl/cmd/session"
	"bennypowers.dev/finl/registry"
)

// Cmd is the defs cobra command.
var Cmd = &cobra.Command{
	Use:   "defs",
	Short: "List the registered commands, environments and macros",
	Long: `List the definitions a document would be parsed against: the built-ins,
unless --no-builtins is set, and every definitions file.

Parameters are shown in shorthand: a format code (* o r b a) followed by
a type code (T V B K M $).`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	Cmd.Flags().String("kind", "all", "Which definitions: all, commands, environments, macros")
}

// Listing groups definitions by kind.
type Listing struct {
	Commands     []*registry.Definition `json:"commands,omitempty"`
	Environments []*registry.Definition `json:"environments,omitempty"`
	Macros       []*registry.Definition `json:"macros,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	kind, _ := cmd.Flags().GetString("kind")
	if err := session.Format(format, "text", "json"); err != nil {
		return err
	}
	if err := session.Format(kind, "all", "commands", "environments", "macros"); err != nil {
		return err
	}

	s, err := session.FromFlags()
	if err != nil {
		return err
	}

	listing := List(s.Registry, kind)
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	default:
		WriteTable(out, listing)
		return nil
	}
}

// List collects the definitions of reg, filtered by kind.
func List(reg *registry.Registry, kind string) Listing {
	var l Listing
	if kind == "all" || kind == "commands" || kind == "macros" {
		for _, def := range reg.Commands() {
			switch {
			case def.IsMacro && kind != "commands":
				l.Macros = append(l.Macros, def)
			case !def.IsMacro && kind != "macros":
				l.Commands = append(l.Commands, def)
			}
		}
	}
	if kind == "all" || kind == "environments" {
		l.Environments = reg.Environments()
	}
	return l
}

// WriteTable writes each non-empty group under a title-cased heading.
func WriteTable(w io.Writer, l Listing) {
	caser := cases.Title(language.English)
	groups := []struct {
		name string
		defs []*registry.Definition
	}{
		{"commands", l.Commands},
		{"environments", l.Environments},
		{"macros", l.Macros},
	}

	first := true
	for _, g := range groups {
		if len(g.defs) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s (%d)\n", caser.String(g.name), len(g.defs))
		for _, def := range g.defs {
			fmt.Fprintln(w, row(def))
		}
	}
}

func row(def *registry.Definition) string {
	switch {
	case def.IsMacro:
		return fmt.Sprintf("  \\%-22s %s", def.Name, strconv.Quote(def.Expansion))
	case def.IsEnvironment:
		name := def.Name
		if def.AllowsStar {
			name += "[*]"
		}
		return fmt.Sprintf("  %-23s %-12s %s", name, shapeOrDash(def), def.Body)
	default:
		return fmt.Sprintf("  \\%-22s %s", def.Name, shapeOrDash(def))
	}
}

func shapeOrDash(def *registry.Definition) string {
	if shape := def.Shape(); shape != "" {
		return shape
	}
	return "-"
}
