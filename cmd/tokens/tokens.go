/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tokens provides the tokens command for finl.
package tokens

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"bennypowers.dev/finl/cmd/session"
	"bennypowers.dev/finl/token"
)

// Cmd is the tokens cobra command.
var Cmd = &cobra.Command{
	Use:   "tokens FILE...",
	Short: "Print the lexical tokens of finl documents",
	Long: `Print the raw tokens the scanner produces, with their positions.

Arguments are not parsed: a command's braces appear as group tokens.`,
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
		toks, err := s.Tokenize(file)
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
			WriteTable(out, toks)
		}
	}
	return nil
}

// WriteTable writes one line per token: position, kind and source text.
func WriteTable(w io.Writer, toks token.List) {
	for _, tok := range toks {
		fmt.Fprintf(w, "%-8s %-16s %s\n", tok.Pos, tok.Kind, strconv.Quote(tok.String()))
	}
}
