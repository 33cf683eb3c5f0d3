/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs provides the read-only filesystem abstraction used by the
// override engine. Every probe and module lookup goes through it so the
// engine can run against an in-memory tree in tests.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem provides the filesystem queries the resolver needs.
// Nothing in the engine writes, so the interface is read-only.
type FileSystem interface {
	// File operations
	ReadFile(name string) ([]byte, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)

	// File system queries
	Stat(name string) (fs.FileInfo, error)
	Exists(path string) bool

	// RealPath returns the path with all symbolic links evaluated.
	RealPath(path string) (string, error)

	// fs.FS compatibility - allows use with fs.WalkDir
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem using the standard os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a new filesystem that uses the standard os package.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads the entire contents of a file.
func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Stat returns file information for the named file.
func (f *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Exists returns true if the path exists.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RealPath resolves symlinks, so packages linked into node_modules by a
// workspace manager report their true install location.
func (f *OSFileSystem) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// ReadDir reads the named directory and returns its entries.
func (f *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Open opens the named file for reading.
func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}
