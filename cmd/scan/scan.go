/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scan provides the scan command for factor-overrides.
package scan

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/internal/cli"
	"factor.dev/overrides/paths"
	scanlib "factor.dev/overrides/scan"
)

// ErrUnresolved is returned when a marker import resolves nowhere.
var ErrUnresolved = errors.New("unresolved override imports")

// Cmd is the scan cobra command.
var Cmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Audit the override imports of a source tree",
	Long: `Parse every script, component and stylesheet under dir (default: the
source root), resolve each marker, namespace and redirected import, and
report where it lands. Exits non-zero if any marker import resolves nowhere,
since the bundler would fail on it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringSlice("include", nil, "Glob patterns of files to scan (default: all supported sources)")
	Cmd.Flags().StringSlice("exclude", nil, "Glob patterns of files and directories to skip")
	Cmd.Flags().Bool("all", false, "Report plain imports too")
	Cmd.Flags().Bool("allow-unresolved", false, "Do not fail on unresolved marker imports")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	all, _ := cmd.Flags().GetBool("all")
	allowUnresolved, _ := cmd.Flags().GetBool("allow-unresolved")
	format, _ := cmd.Flags().GetString("format")
	if err := cli.Format(format); err != nil {
		return err
	}

	filesystem := fs.NewOSFileSystem()
	h, err := cli.Engine(viper.GetViper(), filesystem)
	if err != nil {
		return err
	}

	dir := h.Roots().MustGet(paths.Source)
	if len(args) == 1 {
		dir, err = filepath.Abs(args[0])
		if err != nil {
			return err
		}
	}

	s := scanlib.New(filesystem, h, scanlib.Options{Include: include, Exclude: exclude, All: all})
	report, err := s.Scan(cmd.Context(), dir)
	if err != nil {
		return err
	}
	if report.Files == 0 {
		return fmt.Errorf("%w under %s", scanlib.ErrNoFiles, dir)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = cli.WriteJSON(out, report)
	} else {
		printText(out, report)
	}
	if err != nil {
		return err
	}

	if n := len(report.Unresolved()); n > 0 && !allowUnresolved {
		return fmt.Errorf("%w: %d", ErrUnresolved, n)
	}
	return nil
}

func printText(w io.Writer, report *scanlib.Report) {
	for _, f := range report.Findings {
		rel, err := filepath.Rel(report.Root, f.File)
		if err != nil {
			rel = f.File
		}
		loc := fmt.Sprintf("%s:%d", rel, f.Line)
		switch f.Status() {
		case "rewritten":
			fmt.Fprintf(w, "%-40s %s -> %s\n", loc, f.Specifier, f.Resolved)
		default:
			fmt.Fprintf(w, "%-40s %s (%s)\n", loc, f.Specifier, f.Status())
		}
	}
	fmt.Fprintf(w, "%d files, %d imports, %d unresolved\n",
		report.Files, len(report.Findings), len(report.Unresolved()))
}
