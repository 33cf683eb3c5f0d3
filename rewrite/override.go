/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package rewrite

import (
	"path/filepath"
	"slices"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/probe"
	"factor.dev/overrides/request"
	"factor.dev/overrides/theme"
)

// Candidate labels.
const (
	LabelSource   = "source"
	LabelTheme    = "theme"
	LabelRelative = "relative"
	LabelLibrary  = "library"
)

// Candidate is one root consulted for an override request.
type Candidate struct {
	// Label is one of the Label constants.
	Label string

	// Name is the theme package name for theme candidates.
	Name string

	// Dir is the root directory substituted for the marker.
	Dir string
}

// Step records the probe of one candidate.
type Step struct {
	Candidate Candidate
	Path      string
	Result    probe.Result
}

// Trace explains how an override request was resolved.
type Trace struct {
	Request request.Request
	Steps   []Step

	// Winner indexes the winning step, or -1 when nothing matched.
	Winner int
}

// Resolved returns the winning path.
func (t Trace) Resolved() (string, bool) {
	if t.Winner < 0 {
		return "", false
	}
	return t.Steps[t.Winner].Result.Path, true
}

// OverrideResolver resolves marker specifiers against an ordered list of
// roots: the application source, each theme in registration order, the
// importer's own directory, and the core library. The first root holding
// a match wins.
type OverrideResolver struct {
	fs      fs.FileSystem
	source  string
	themes  []theme.Dir
	library string
}

// NewOverrideResolver creates an override resolver. themes must already
// be in precedence order.
func NewOverrideResolver(filesystem fs.FileSystem, sourceRoot string, themes []theme.Dir, libraryRoot string) *OverrideResolver {
	return &OverrideResolver{
		fs:      filesystem,
		source:  sourceRoot,
		themes:  slices.Clone(themes),
		library: libraryRoot,
	}
}

// Name implements Rewriter.
func (o *OverrideResolver) Name() string {
	return "override"
}

// Candidates returns the roots consulted for req, highest precedence first.
func (o *OverrideResolver) Candidates(req request.Request) []Candidate {
	out := make([]Candidate, 0, len(o.themes)+3)
	out = append(out, Candidate{Label: LabelSource, Dir: o.source})
	for _, t := range o.themes {
		out = append(out, Candidate{Label: LabelTheme, Name: t.Name, Dir: t.Path})
	}
	if req.ImporterDir != "" {
		out = append(out, Candidate{Label: LabelRelative, Dir: req.ImporterDir})
	}
	out = append(out, Candidate{Label: LabelLibrary, Dir: o.library})
	return out
}

// Rewrite implements Rewriter. Requests that are not override requests,
// and override requests no root can satisfy, are returned unchanged; an
// unresolved marker then fails loudly in the bundler's own resolution.
func (o *OverrideResolver) Rewrite(req request.Request) request.Request {
	if req.Kind != request.KindOverride {
		return req
	}
	trace := o.trace(req, true)
	if path, ok := trace.Resolved(); ok {
		return req.Rewritten(o.Name(), path)
	}
	return req
}

// Explain probes every candidate root, including those after the winner,
// and reports each outcome.
func (o *OverrideResolver) Explain(req request.Request) Trace {
	if req.Kind != request.KindOverride {
		return Trace{Request: req, Winner: -1}
	}
	return o.trace(req, false)
}

func (o *OverrideResolver) trace(req request.Request, stopAtWinner bool) Trace {
	t := Trace{Request: req, Winner: -1}
	for _, c := range o.Candidates(req) {
		if c.Dir == "" {
			continue
		}
		p := filepath.Join(c.Dir, req.Token)
		result := probe.Probe(o.fs, p)
		t.Steps = append(t.Steps, Step{Candidate: c, Path: p, Result: result})

		if result.Outcome == probe.Found && t.Winner < 0 {
			t.Winner = len(t.Steps) - 1
			if stopAtWinner {
				break
			}
		}
	}
	return t
}
