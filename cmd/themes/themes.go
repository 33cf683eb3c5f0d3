/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package themes provides the themes command for factor-overrides.
package themes

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"factor.dev/overrides/extension"
	"factor.dev/overrides/fs"
	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/cli"
)

// Cmd is the themes cobra command.
var Cmd = &cobra.Command{
	Use:   "themes",
	Short: "List theme directories in override precedence order",
	Long: `List the registered themes and the directories override lookups probe,
in the order they are consulted. With --all, every registered extension is
listed with its role.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("all", false, "List every registered extension, not only themes")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

type entry struct {
	Position int    `json:"position,omitempty"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Dir      string `json:"dir,omitempty"`
}

var title = cases.Title(language.English)

func run(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	format, _ := cmd.Flags().GetString("format")
	if err := cli.Format(format); err != nil {
		return err
	}

	h, err := cli.Engine(viper.GetViper(), fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	entries := list(h, all)
	out := cmd.OutOrStdout()
	if format == "json" {
		return cli.WriteJSON(out, entries)
	}
	printText(out, entries)
	return nil
}

// list returns the themes with their directories, then, with all, the
// remaining extensions in registration order.
func list(h *hooks.Hooks, all bool) []entry {
	var entries []entry
	for i, d := range h.Themes() {
		entries = append(entries, entry{
			Position: i + 1,
			Name:     d.Name,
			Role:     string(extension.RoleTheme),
			Dir:      d.Path,
		})
	}
	if !all {
		return entries
	}
	for _, ext := range h.Registry().All() {
		if ext.Extend == extension.RoleTheme {
			continue
		}
		entries = append(entries, entry{Name: ext.Name, Role: string(ext.Extend)})
	}
	return entries
}

func printText(w io.Writer, entries []entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No themes registered")
		return
	}
	for _, e := range entries {
		label := title.String(e.Role)
		if e.Position > 0 {
			label = fmt.Sprintf("%s %d", label, e.Position)
		}
		fmt.Fprintf(w, "%-10s %-32s %s\n", label, e.Name, e.Dir)
	}
}
