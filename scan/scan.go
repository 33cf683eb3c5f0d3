/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scan audits a source tree for the imports the override engine
// rewrites. It parses each source file, runs every marker, namespace and
// redirected specifier through the engine, and reports where each one
// lands.
package scan

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/request"
)

// ErrNoFiles reports a scan that matched no source files.
var ErrNoFiles = errors.New("no source files matched")

// DefaultInclude matches every file the scanner can parse.
var DefaultInclude = []string{"**/*.{js,mjs,cjs,jsx,ts,tsx,vue,css}"}

// DefaultExclude skips installed packages and build output.
var DefaultExclude = []string{"**/node_modules/**", "**/dist/**", "**/.*/**"}

// Options selects which files are scanned. Patterns are doublestar globs
// relative to the scanned directory.
type Options struct {
	Include []string
	Exclude []string

	// All reports plain specifiers the engine left alone as well.
	All bool
}

// Finding is one import and what the engine made of it.
type Finding struct {
	File      string       `json:"file"`
	Line      int          `json:"line"`
	Specifier string       `json:"specifier"`
	Import    ImportKind   `json:"import"`
	Request   request.Kind `json:"-"`
	Resolved  string       `json:"resolved"`
	By        string       `json:"by,omitempty"`
}

// Unresolved reports a marker import no root could satisfy. The bundler
// will fail on it.
func (f Finding) Unresolved() bool {
	return f.Request == request.KindOverride && f.Resolved == f.Specifier
}

// Status is a short label for the finding's outcome.
func (f Finding) Status() string {
	switch {
	case f.Unresolved():
		return "unresolved"
	case f.Resolved != f.Specifier:
		return "rewritten"
	default:
		return "unchanged"
	}
}

// Report is the result of a scan.
type Report struct {
	Root     string    `json:"root"`
	Files    int       `json:"files"`
	Findings []Finding `json:"findings"`
}

// Unresolved returns the findings the bundler would fail on.
func (r *Report) Unresolved() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Unresolved() {
			out = append(out, f)
		}
	}
	return out
}

// Scanner walks source trees and resolves their imports.
type Scanner struct {
	fs    fs.FileSystem
	hooks *hooks.Hooks
	opts  Options
}

// New returns a scanner. Empty Include or Exclude lists take the defaults.
func New(filesystem fs.FileSystem, h *hooks.Hooks, opts Options) *Scanner {
	if len(opts.Include) == 0 {
		opts.Include = DefaultInclude
	}
	if opts.Exclude == nil {
		opts.Exclude = DefaultExclude
	}
	return &Scanner{fs: filesystem, hooks: h, opts: opts}
}

// Scan walks dir and reports the imports found in matching files, sorted
// by file then line. Files that fail to read or parse are logged and
// skipped. Cancelling ctx stops the walk.
func (s *Scanner) Scan(ctx context.Context, dir string) (*Report, error) {
	report := &Report{Root: dir}

	err := iofs.WalkDir(s.fs, dir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if p != dir && matchAny(s.opts.Exclude, rel+"/_") {
				return iofs.SkipDir
			}
			return nil
		}
		if !Supported(p) || !matchAny(s.opts.Include, rel) || matchAny(s.opts.Exclude, rel) {
			return nil
		}

		findings, fileErr := s.File(p)
		if fileErr != nil {
			logger.Warn("skipping file", "path", p, "error", fileErr)
			return nil
		}
		report.Files++
		report.Findings = append(report.Findings, findings...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(report.Findings, func(a, b Finding) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return a.Line - b.Line
	})
	return report, nil
}

// File parses one file and resolves its imports from the file's directory.
func (s *Scanner) File(path string) ([]Finding, error) {
	src, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	imports, err := Imports(path, src)
	if err != nil {
		return nil, err
	}

	importerDir := filepath.Dir(path)
	var out []Finding
	for _, imp := range imports {
		kind := s.hooks.Classify(imp.Specifier, importerDir).Kind
		req := s.hooks.Resolve(imp.Specifier, importerDir)
		if !s.opts.All && kind == request.KindPlain && !req.Changed() {
			continue
		}
		out = append(out, Finding{
			File:      path,
			Line:      imp.Line,
			Specifier: imp.Specifier,
			Import:    imp.Kind,
			Request:   kind,
			Resolved:  req.Specifier,
			By:        req.RewrittenBy,
		})
	}
	return out, nil
}

// matchAny reports whether rel matches any pattern. Directories are
// tested with a placeholder child so "**/node_modules/**" prunes the
// directory itself.
func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
