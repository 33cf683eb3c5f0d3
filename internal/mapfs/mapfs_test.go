/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapfs

import (
	"errors"
	"io/fs"
	"testing"
)

func TestRealPath(t *testing.T) {
	mfs := New()
	mfs.AddFile("/repo/packages/theme/index.js", "", 0644)
	mfs.AddFile("/repo/packages/theme-extra/index.js", "", 0644)
	mfs.AddSymlink("/repo/app/node_modules/theme", "/repo/packages/theme")

	tests := []struct {
		in   string
		want string
	}{
		{"/repo/app/node_modules/theme/index.js", "/repo/packages/theme/index.js"},
		{"/repo/app/node_modules/theme", "/repo/packages/theme"},
		{"/repo/packages/theme-extra/index.js", "/repo/packages/theme-extra/index.js"},
		{"/", "/"},
	}
	for _, tt := range tests {
		got, err := mfs.RealPath(tt.in)
		if err != nil {
			t.Errorf("RealPath(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RealPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := mfs.RealPath("/repo/app/node_modules/theme/missing.js"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestExists(t *testing.T) {
	mfs := New()
	mfs.AddFile("/a/b/c.txt", "x", 0644)
	mfs.AddDir("/empty", 0755)

	for _, p := range []string{"/a", "/a/b", "/a/b/c.txt", "/empty"} {
		if !mfs.Exists(p) {
			t.Errorf("expected %s to exist", p)
		}
	}
	if mfs.Exists("/a/b/c") {
		t.Error("prefix of a file name must not exist")
	}
}
