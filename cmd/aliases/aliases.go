/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package aliases provides the aliases command for factor-overrides.
package aliases

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/internal/cli"
)

// Cmd is the aliases cobra command.
var Cmd = &cobra.Command{
	Use:   "aliases",
	Short: "Print the aliases contributed to the bundler",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := cli.Format(format); err != nil {
		return err
	}

	h, err := cli.Engine(viper.GetViper(), fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	return write(cmd.OutOrStdout(), h.Aliases(nil), format)
}

// write prints aliases sorted by name, or as a JSON object.
func write(w io.Writer, aliases map[string]string, format string) error {
	if format == "json" {
		return cli.WriteJSON(w, aliases)
	}
	for _, name := range slices.Sorted(maps.Keys(aliases)) {
		fmt.Fprintf(w, "%s -> %s\n", name, aliases[name])
	}
	return nil
}
