/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parse provides the parse command for finl.
package parse

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/finl/cmd/session"
)

// Cmd is the parse cobra command.
var Cmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse finl documents and print their structure",
	Long: `Parse finl documents and print every command and environment with
its arguments and body.

Declarations made with \newcommand or \newenvironment in one file are
visible to the files after it.

Examples:
  # Print a tree of the parsed document
  finl parse chapter.finl

  # Emit JSON for further processing
  finl parse --format json chapter.finl`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := session.Format(format, "text", "json"); err != nil {
		return err
	}

	s, err := session.FromFlags()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, file := range args {
		toks, err := s.Parse(cmd.Context(), file)
		if err != nil {
			return err
		}
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(toks); err != nil {
				return err
			}
		default:
			if len(args) > 1 {
				fmt.Fprintf(out, "%s:\n", file)
			}
			WriteTree(out, toks)
		}
	}
	return nil
}
