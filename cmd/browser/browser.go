/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package browser provides the browser command for factor-overrides.
package browser

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/cli"
	"factor.dev/overrides/paths"
)

// Cmd is the browser cobra command.
var Cmd = &cobra.Command{
	Use:   "browser <specifier>",
	Short: "Locate a module and print its browser variant",
	Long: `Locate a module the way the bundler would and print the sibling file
carrying the browser suffix, if one exists. Unlike the bundler plugin, this
works for any specifier, not only the library namespace.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("importer", "i", "", "Directory to resolve from (default: the project root)")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

type result struct {
	Specifier string `json:"specifier"`
	Located   string `json:"located"`
	Variant   string `json:"variant,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	importer, _ := cmd.Flags().GetString("importer")
	format, _ := cmd.Flags().GetString("format")
	if err := cli.Format(format); err != nil {
		return err
	}

	h, err := cli.Engine(viper.GetViper(), fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	res, err := variant(h, args[0], importer)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return cli.WriteJSON(out, res)
	}
	if res.Variant == "" {
		fmt.Fprintf(out, "%s has no browser variant\n", res.Located)
		return nil
	}
	fmt.Fprintln(out, res.Variant)
	return nil
}

func variant(h *hooks.Hooks, specifier, importer string) (result, error) {
	root := h.Roots().MustGet(paths.Project)
	switch {
	case importer == "":
		importer = root
	case !filepath.IsAbs(importer):
		importer = filepath.Join(root, importer)
	}

	b := h.Browser()
	located, err := b.Locate(specifier, importer)
	if err != nil {
		return result{}, err
	}
	res := result{Specifier: specifier, Located: located}
	if v, ok := b.Variant(located); ok {
		res.Variant = v
	}
	return res, nil
}
