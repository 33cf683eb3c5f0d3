/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for factor-overrides.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factor.dev/overrides/cmd/aliases"
	"factor.dev/overrides/cmd/browser"
	"factor.dev/overrides/cmd/resolve"
	"factor.dev/overrides/cmd/scan"
	"factor.dev/overrides/cmd/themes"
	"factor.dev/overrides/cmd/version"
	"factor.dev/overrides/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "factor-overrides",
	Short: "Inspect build-time module overrides",
	Long: `factor-overrides resolves marker imports against the application source,
registered themes, the importing directory and the core library, and swaps
namespaced modules for their browser variants, the same way the bundler
plugin does at build time.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := cli.BindFlags(viper.GetViper(), rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(aliases.Cmd)
	rootCmd.AddCommand(browser.Cmd)
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(scan.Cmd)
	rootCmd.AddCommand(themes.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
