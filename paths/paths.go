/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package paths maps symbolic root names to absolute directories.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

var (
	// ErrUnknownRoot indicates a lookup of a root name that was never configured.
	ErrUnknownRoot = errors.New("unknown root")

	// ErrRelativeRoot indicates the project root is not absolute.
	ErrRelativeRoot = errors.New("project root must be absolute")
)

// Root names.
const (
	// Project is the project (application package) directory.
	Project = "root"
	// Source is the application source root, the highest-precedence override layer.
	Source = "source"
	// CoreApp is the core library root, the lowest-precedence fallback.
	CoreApp = "coreApp"
)

// Resolver is a read-only table of named roots.
type Resolver struct {
	roots map[string]string
}

// New creates a resolver. Every value in named that is not absolute is
// joined onto projectRoot. projectRoot itself is registered as Project.
func New(projectRoot string, named map[string]string) (*Resolver, error) {
	if !filepath.IsAbs(projectRoot) {
		return nil, fmt.Errorf("%w: %s", ErrRelativeRoot, projectRoot)
	}

	roots := map[string]string{Project: filepath.Clean(projectRoot)}
	for name, dir := range named {
		if name == "" || dir == "" {
			return nil, fmt.Errorf("invalid root %q=%q", name, dir)
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(projectRoot, dir)
		}
		roots[name] = filepath.Clean(dir)
	}
	return &Resolver{roots: roots}, nil
}

// Get returns the directory registered under name.
func (r *Resolver) Get(name string) (string, error) {
	dir, ok := r.roots[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoot, name)
	}
	return dir, nil
}

// MustGet is like Get but panics for an unknown root.
func (r *Resolver) MustGet(name string) string {
	dir, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return dir
}

// Names returns the registered root names, sorted.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.roots))
	for name := range r.roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
