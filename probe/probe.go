/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package probe decides whether an extensionless candidate path names
// exactly one file on disk.
//
// A path is found when it exists literally, or when its directory holds
// exactly one entry named "<base>.<anything>". Two or more such entries
// are ambiguous and count as absent: the prober never guesses.
package probe

import (
	"path/filepath"
	"strings"

	"factor.dev/overrides/fs"
)

// Outcome classifies the result of a probe.
type Outcome int

const (
	// Missing means neither the literal path nor any extension variant exists.
	Missing Outcome = iota
	// Found means the probe resolved to exactly one path.
	Found
	// Ambiguous means several extension variants matched.
	Ambiguous
)

// String returns the outcome name used in diagnostics.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "missing"
	}
}

// Result is a detailed probe result.
type Result struct {
	// Path is the resolved path when Outcome is Found.
	Path string

	// Outcome classifies the probe.
	Outcome Outcome

	// Candidates lists every extension variant seen, in directory order.
	Candidates []string
}

// Find returns the single path that p resolves to, or false.
func Find(filesystem fs.FileSystem, p string) (string, bool) {
	r := Probe(filesystem, p)
	return r.Path, r.Outcome == Found
}

// Probe resolves p against live filesystem state. Nothing is cached.
func Probe(filesystem fs.FileSystem, p string) Result {
	if p == "" {
		return Result{Outcome: Missing}
	}

	if filesystem.Exists(p) {
		return Result{Path: p, Outcome: Found, Candidates: []string{p}}
	}

	candidates := Candidates(filesystem, p)
	switch len(candidates) {
	case 0:
		return Result{Outcome: Missing}
	case 1:
		return Result{Path: candidates[0], Outcome: Found, Candidates: candidates}
	default:
		return Result{Outcome: Ambiguous, Candidates: candidates}
	}
}

// Candidates lists the entries of p's directory named "<base>." plus any
// suffix. A missing directory yields no candidates.
func Candidates(filesystem fs.FileSystem, p string) []string {
	dir, base := filepath.Split(p)
	if base == "" {
		return nil
	}
	if dir == "" {
		dir = "."
	}

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		return nil
	}

	prefix := base + "."
	var matches []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	return matches
}
