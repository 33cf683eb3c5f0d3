/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package locate implements Node-style module location: the lookup a
// bundler performs for `require.resolve(spec, {paths: [dir]})`.
//
// Bare specifiers are found by walking up node_modules directories from
// the starting directory. When a workspace root is configured, packages
// declared by its "workspaces" globs are also considered, so themes
// living inside a monorepo resolve even when they are not linked.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ofs "factor.dev/overrides/fs"
)

var (
	// ErrModuleNotFound indicates a specifier could not be located.
	ErrModuleNotFound = errors.New("module not found")

	// ErrInvalidSpecifier indicates a malformed specifier.
	ErrInvalidSpecifier = errors.New("invalid module specifier")
)

// DefaultExtensions are tried in order when a path has no exact match.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".ts", ".tsx", ".jsx", ".vue", ".json"}

// Locator resolves module specifiers to real file paths.
type Locator struct {
	fs            ofs.FileSystem
	extensions    []string
	workspaceRoot string
}

// Option configures a Locator.
type Option func(*Locator)

// WithExtensions overrides the extension search list.
func WithExtensions(exts ...string) Option {
	return func(l *Locator) {
		l.extensions = exts
	}
}

// WithWorkspaceRoot enables workspace package lookup from the package.json
// in root.
func WithWorkspaceRoot(root string) Option {
	return func(l *Locator) {
		l.workspaceRoot = root
	}
}

// New creates a Locator over the given filesystem.
func New(filesystem ofs.FileSystem, opts ...Option) *Locator {
	l := &Locator{
		fs:         filesystem,
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns the real absolute path of the file spec refers to when
// imported from fromDir.
func (l *Locator) Resolve(spec, fromDir string) (string, error) {
	if spec == "" {
		return "", fmt.Errorf("%w: empty specifier", ErrInvalidSpecifier)
	}
	if !filepath.IsAbs(fromDir) {
		return "", fmt.Errorf("%w: fromDir must be absolute, got %s", ErrInvalidSpecifier, fromDir)
	}

	var target string
	switch {
	case filepath.IsAbs(spec):
		target = filepath.Clean(spec)
	case isRelative(spec):
		target = filepath.Join(fromDir, spec)
	default:
		name, sub, err := SplitPackage(spec)
		if err != nil {
			return "", err
		}
		dir, err := l.PackageDir(name, fromDir)
		if err != nil {
			return "", err
		}
		if sub == "" {
			if file, ok := l.loadDirectory(dir); ok {
				return l.real(file)
			}
			return "", fmt.Errorf("%w: %s has no entry point in %s", ErrModuleNotFound, name, dir)
		}
		target = filepath.Join(dir, sub)
	}

	if file, ok := l.loadFile(target); ok {
		return l.real(file)
	}
	if file, ok := l.loadDirectory(target); ok {
		return l.real(file)
	}
	return "", fmt.Errorf("%w: %s (from %s)", ErrModuleNotFound, spec, fromDir)
}

// PackageDir returns the real install directory of the named package,
// searched from fromDir.
func (l *Locator) PackageDir(name, fromDir string) (string, error) {
	dir := filepath.Clean(fromDir)
	for {
		if filepath.Base(dir) != "node_modules" {
			candidate := filepath.Join(dir, "node_modules", name)
			if l.isDir(candidate) {
				return l.real(candidate)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if l.workspaceRoot != "" {
		if found, ok := l.workspacePackage(name); ok {
			return l.real(found)
		}
	}

	return "", fmt.Errorf("%w: package %s (looked in node_modules starting from %s)", ErrModuleNotFound, name, fromDir)
}

// workspacePackage scans the workspace globs for a package named name.
func (l *Locator) workspacePackage(name string) (string, bool) {
	root, err := ReadManifest(l.fs, l.workspaceRoot)
	if err != nil || len(root.Workspaces) == 0 {
		return "", false
	}

	var found string
	walkErr := fs.WalkDir(l.fs, l.workspaceRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() || p == l.workspaceRoot {
			return nil
		}
		if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}

		rel, err := filepath.Rel(l.workspaceRoot, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(root.Workspaces, rel) {
			return nil
		}

		m, err := ReadManifest(l.fs, p)
		if err == nil && m.Name == name {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return "", false
	}
	return found, found != ""
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(pattern, "./")
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// loadFile tries p itself, then p plus each extension.
func (l *Locator) loadFile(p string) (string, bool) {
	if l.isFile(p) {
		return p, true
	}
	for _, ext := range l.extensions {
		if l.isFile(p + ext) {
			return p + ext, true
		}
	}
	return "", false
}

// loadDirectory tries the manifest "main" entry, then index files.
func (l *Locator) loadDirectory(dir string) (string, bool) {
	if !l.isDir(dir) {
		return "", false
	}

	if m, err := ReadManifest(l.fs, dir); err == nil && m.Main != "" {
		main := filepath.Join(dir, m.Main)
		if file, ok := l.loadFile(main); ok {
			return file, true
		}
		if file, ok := l.loadIndex(main); ok {
			return file, true
		}
	}

	return l.loadIndex(dir)
}

func (l *Locator) loadIndex(dir string) (string, bool) {
	for _, ext := range l.extensions {
		index := filepath.Join(dir, "index"+ext)
		if l.isFile(index) {
			return index, true
		}
	}
	return "", false
}

func (l *Locator) real(p string) (string, error) {
	resolved, err := l.fs.RealPath(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve real path of %s: %w", p, err)
	}
	return resolved, nil
}

func (l *Locator) isFile(p string) bool {
	info, err := l.fs.Stat(p)
	return err == nil && !info.IsDir()
}

func (l *Locator) isDir(p string) bool {
	info, err := l.fs.Stat(p)
	return err == nil && info.IsDir()
}

func isRelative(spec string) bool {
	return spec == "." || spec == ".." ||
		strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

// SplitPackage splits a bare specifier into package name and subpath.
// "@scope/pkg/a/b" yields ("@scope/pkg", "a/b").
func SplitPackage(spec string) (name, subpath string, err error) {
	parts := strings.Split(spec, "/")
	n := 1
	if strings.HasPrefix(spec, "@") {
		n = 2
	}
	if len(parts) < n || parts[0] == "" || (n == 2 && parts[1] == "") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/"), nil
}
