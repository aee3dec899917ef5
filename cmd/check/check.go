/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for finl.
package check

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/finl/cmd/session"
	"bennypowers.dev/finl/diag"
	"bennypowers.dev/finl/load"
)

// ErrCheckFailed is returned when any document fails to parse.
var ErrCheckFailed = errors.New("check failed")

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check that finl documents parse",
	Long: `Parse each document and report the first error in it as
file:line:column: kind: message. Exits non-zero if any document fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

// Result is the outcome of checking one document.
type Result struct {
	File  string      `json:"file"`
	OK    bool        `json:"ok"`
	Error *diag.Error `json:"error,omitempty"`

	// Message describes failures that have no source position.
	Message string `json:"message,omitempty"`
}

func (r Result) String() string {
	switch {
	case r.OK:
		return r.File + ": ok"
	case r.Error != nil:
		return fmt.Sprintf("%s:%s: %s: %s", r.File, r.Error.Pos, diag.KindName(r.Error.Kind), r.Error.Message)
	default:
		return fmt.Sprintf("%s: %s", r.File, r.Message)
	}
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	format, _ := cmd.Flags().GetString("format")
	if err := session.Format(format, "text", "json"); err != nil {
		return err
	}

	s, err := session.FromFlags()
	if err != nil {
		return err
	}

	results := Files(cmd.Context(), s, args)

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	default:
		Write(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, quiet)
	}

	for _, r := range results {
		if !r.OK {
			return ErrCheckFailed
		}
	}
	return nil
}

// Files parses each file with s and collects the results in order.
func Files(ctx context.Context, s *load.Session, files []string) []Result {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, File(ctx, s, file))
	}
	return results
}

// File parses one file with s.
func File(ctx context.Context, s *load.Session, file string) Result {
	_, err := s.Parse(ctx, file)
	if err == nil {
		return Result{File: file, OK: true}
	}
	if e, ok := diag.As(err); ok {
		return Result{File: file, Error: e}
	}
	return Result{File: file, Message: err.Error()}
}

// Write prints failures to errOut and, unless quiet, successes to out.
func Write(out, errOut io.Writer, results []Result, quiet bool) {
	for _, r := range results {
		switch {
		case !r.OK:
			fmt.Fprintln(errOut, r)
		case !quiet:
			fmt.Fprintln(out, r)
		}
	}
}
