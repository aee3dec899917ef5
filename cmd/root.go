/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for finl.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/finl/cmd/check"
	"bennypowers.dev/finl/cmd/defs"
	"bennypowers.dev/finl/cmd/parse"
	"bennypowers.dev/finl/cmd/tokens"
	"bennypowers.dev/finl/cmd/version"
	"bennypowers.dev/finl/internal/logger"
	"bennypowers.dev/finl/parser"
)

var rootCmd = &cobra.Command{
	Use:   "finl",
	Short: "Parse and check finl documents",
	Long: `finl parses documents written in finl, a LaTeX-like markup, against a
registry of command and environment definitions.

Definitions come from the built-ins, from files listed in
.config/finl.{yaml,yml,json} and from --definitions. Every flag may also
be set in the environment as FINL_<FLAG>, e.g. FINL_MAX_DEPTH=16.`,
	SilenceUsage:      true,
	PersistentPreRunE: bindFlags,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", ".", "Project directory; config, definitions and relative document paths resolve against it")
	flags.StringSliceP("definitions", "d", nil, "Additional definition files (YAML or JSON)")
	flags.Bool("no-builtins", false, "Do not register the built-in definitions")
	flags.Int("max-depth", 0, fmt.Sprintf("Nesting limit (default %d)", parser.DefaultMaxDepth))
	flags.BoolP("verbose", "v", false, "Log debug messages to stderr")

	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(defs.Cmd)
	rootCmd.AddCommand(parse.Cmd)
	rootCmd.AddCommand(tokens.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

// bindFlags makes the persistent flags, and their FINL_ environment
// variables, visible through viper.
func bindFlags(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("finl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	logger.SetDebug(viper.GetBool("verbose"))
	return nil
}
