/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for factor-overrides.
package resolve

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/cli"
	"factor.dev/overrides/paths"
	"factor.dev/overrides/request"
	"factor.dev/overrides/rewrite"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve <specifier>",
	Short: "Show what a module specifier is rewritten to",
	Long: `Run a specifier through the replacement rules exactly as the bundler
plugin would, and print the result. With --explain, every override root is
probed and reported, not just the winner.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("importer", "i", "", "Directory of the importing module (default: the source root)")
	Cmd.Flags().Bool("explain", false, "Probe every override root and show each outcome")
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

type result struct {
	Specifier   string       `json:"specifier"`
	Kind        string       `json:"kind"`
	ImporterDir string       `json:"importerDir"`
	Resolved    string       `json:"resolved"`
	Changed     bool         `json:"changed"`
	By          string       `json:"by,omitempty"`
	Steps       []stepOutput `json:"steps,omitempty"`
}

type stepOutput struct {
	Label   string   `json:"label"`
	Name    string   `json:"name,omitempty"`
	Path    string   `json:"path"`
	Outcome string   `json:"outcome"`
	Matches []string `json:"matches,omitempty"`
	Winner  bool     `json:"winner,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	importer, _ := cmd.Flags().GetString("importer")
	explain, _ := cmd.Flags().GetBool("explain")
	format, _ := cmd.Flags().GetString("format")
	if err := cli.Format(format); err != nil {
		return err
	}

	h, err := cli.Engine(viper.GetViper(), fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	res := resolveSpecifier(h, args[0], importer, explain)
	out := cmd.OutOrStdout()
	if format == "json" {
		return cli.WriteJSON(out, res)
	}
	printText(out, res)
	return nil
}

// resolveSpecifier builds the command output for one specifier. A
// relative importer is taken from the project root.
func resolveSpecifier(h *hooks.Hooks, specifier, importer string, explain bool) result {
	root := h.Roots().MustGet(paths.Project)
	switch {
	case importer == "":
		importer = h.Roots().MustGet(paths.Source)
	case !filepath.IsAbs(importer):
		importer = filepath.Join(root, importer)
	}

	req := h.Resolve(specifier, importer)
	res := result{
		Specifier:   specifier,
		Kind:        h.Classify(specifier, importer).Kind.String(),
		ImporterDir: importer,
		Resolved:    req.Specifier,
		Changed:     req.Changed(),
		By:          req.RewrittenBy,
	}

	if explain && res.Kind == request.KindOverride.String() {
		trace := h.Explain(specifier, importer)
		res.Steps = steps(trace)
	}
	return res
}

func steps(trace rewrite.Trace) []stepOutput {
	out := make([]stepOutput, 0, len(trace.Steps))
	for i, s := range trace.Steps {
		out = append(out, stepOutput{
			Label:   s.Candidate.Label,
			Name:    s.Candidate.Name,
			Path:    s.Path,
			Outcome: s.Result.Outcome.String(),
			Matches: s.Result.Candidates,
			Winner:  i == trace.Winner,
		})
	}
	return out
}

func printText(w io.Writer, res result) {
	if res.Changed {
		fmt.Fprintf(w, "%s -> %s (%s)\n", res.Specifier, res.Resolved, res.By)
	} else {
		fmt.Fprintf(w, "%s (unchanged, %s)\n", res.Specifier, res.Kind)
	}

	for _, s := range res.Steps {
		mark := " "
		if s.Winner {
			mark = "*"
		}
		label := s.Label
		if s.Name != "" {
			label += " " + s.Name
		}
		fmt.Fprintf(w, "%s %-40s %-9s %s\n", mark, label, s.Outcome, s.Path)
		if s.Outcome == "ambiguous" {
			for _, m := range s.Matches {
				fmt.Fprintf(w, "    %s\n", m)
			}
		}
	}
}
