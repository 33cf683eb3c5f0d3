/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for factor-overrides.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"factor.dev/overrides/internal/cli"
	"factor.dev/overrides/internal/version"
)

// Cmd is the version cobra command that prints version and build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}
	if err := cli.Format(format); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return cli.WriteJSON(out, version.Info())
	}
	info := version.Info()
	fmt.Fprintf(out, "factor-overrides %s\n", info.Version)
	if info.Esbuild != "" {
		fmt.Fprintf(out, "esbuild %s\n", info.Esbuild)
	}
	return nil
}
