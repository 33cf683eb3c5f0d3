/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme resolves registered theme extensions to their installed
// directories.
package theme

import (
	"errors"
	"fmt"
	"path/filepath"

	"factor.dev/overrides/extension"
	"factor.dev/overrides/locate"
)

// ErrThemeNotFound indicates a registered theme whose package is not installed.
var ErrThemeNotFound = errors.New("theme package not found")

// Dir is a theme and the directory its overrides are looked up in.
type Dir struct {
	// Name is the theme package name.
	Name string

	// Path is the directory containing the theme's entry file.
	Path string
}

// Directories returns the directory of every registered theme, in
// registration order. Each theme is resolved from contextDir, the
// application being built, rather than from this process's location,
// because workspace layouts may install a theme somewhere the tool itself
// cannot see.
//
// A theme that cannot be resolved is an error: it means the extension
// installation is broken.
func Directories(registry *extension.Registry, locator *locate.Locator, contextDir string) ([]Dir, error) {
	themes := registry.Themes()
	dirs := make([]Dir, 0, len(themes))
	for _, ext := range themes {
		entry, err := locator.Resolve(ext.Name, contextDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrThemeNotFound, ext.Name, err)
		}
		dirs = append(dirs, Dir{Name: ext.Name, Path: filepath.Dir(entry)})
	}
	return dirs, nil
}

// AliasTarget returns the directory the theme alias points at: the first
// registered theme, or the application source root when there is none.
func AliasTarget(dirs []Dir, sourceRoot string) string {
	if len(dirs) > 0 {
		return dirs[0].Path
	}
	return sourceRoot
}
