/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package locate

import (
	"errors"
	"testing"

	"factor.dev/overrides/internal/mapfs"
)

func TestResolve_PackageMain(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/node_modules/@factor/theme-alpha/package.json", `{"name":"@factor/theme-alpha","main":"src/index"}`, 0644)
	mfs.AddFile("/project/node_modules/@factor/theme-alpha/src/index.ts", "", 0644)

	got, err := New(mfs).Resolve("@factor/theme-alpha", "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "/project/node_modules/@factor/theme-alpha/src/index.ts"
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_IndexFallback(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/node_modules/plain/index.js", "", 0644)

	got, err := New(mfs).Resolve("plain", "/project/src/deep")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/project/node_modules/plain/index.js" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolve_Subpath(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/node_modules/@factor/tools/package.json", `{"name":"@factor/tools"}`, 0644)
	mfs.AddFile("/project/node_modules/@factor/tools/utils.ts", "", 0644)
	mfs.AddFile("/project/node_modules/@factor/tools/paths/index.ts", "", 0644)

	tests := []struct {
		name string
		spec string
		want string
	}{
		{"file with extension search", "@factor/tools/utils", "/project/node_modules/@factor/tools/utils.ts"},
		{"explicit extension", "@factor/tools/utils.ts", "/project/node_modules/@factor/tools/utils.ts"},
		{"directory index", "@factor/tools/paths", "/project/node_modules/@factor/tools/paths/index.ts"},
	}

	l := New(mfs)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Resolve(tt.spec, "/project/src")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestResolve_RelativeAndAbsolute(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/src/util.js", "", 0644)

	l := New(mfs)

	got, err := l.Resolve("./util", "/project/src")
	if err != nil || got != "/project/src/util.js" {
		t.Errorf("relative: got %q, %v", got, err)
	}

	got, err = l.Resolve("../src/util.js", "/project/lib")
	if err != nil || got != "/project/src/util.js" {
		t.Errorf("parent relative: got %q, %v", got, err)
	}

	got, err = l.Resolve("/project/src/util", "/elsewhere")
	if err != nil || got != "/project/src/util.js" {
		t.Errorf("absolute: got %q, %v", got, err)
	}
}

func TestResolve_FollowsSymlinks(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/packages/theme/index.js", "", 0644)
	mfs.AddFile("/repo/app/node_modules/theme/index.js", "", 0644)
	mfs.AddSymlink("/repo/app/node_modules/theme", "/repo/packages/theme")

	got, err := New(mfs).Resolve("theme", "/repo/app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/repo/packages/theme/index.js" {
		t.Errorf("Resolve() = %q, want real path", got)
	}
}

func TestResolve_NotFound(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/project", 0755)

	_, err := New(mfs).Resolve("missing-pkg", "/project")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestResolve_RelativeFromDirRejected(t *testing.T) {
	_, err := New(mapfs.New()).Resolve("pkg", "project")
	if !errors.Is(err, ErrInvalidSpecifier) {
		t.Errorf("expected ErrInvalidSpecifier, got %v", err)
	}
}

func TestPackageDir_Workspaces(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/package.json", `{
		// monorepo root
		"name": "root",
		"workspaces": ["packages/*"],
	}`, 0644)
	mfs.AddFile("/repo/packages/theme-beta/package.json", `{"name":"@factor/theme-beta","main":"index.js"}`, 0644)
	mfs.AddFile("/repo/packages/theme-beta/index.js", "", 0644)
	mfs.AddDir("/repo/apps/site", 0755)

	l := New(mfs, WithWorkspaceRoot("/repo"))
	dir, err := l.PackageDir("@factor/theme-beta", "/repo/apps/site")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/repo/packages/theme-beta" {
		t.Errorf("PackageDir() = %q", dir)
	}

	if _, err := New(mfs).PackageDir("@factor/theme-beta", "/repo/apps/site"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("without workspace root expected ErrModuleNotFound, got %v", err)
	}
}

func TestSplitPackage(t *testing.T) {
	tests := []struct {
		spec    string
		name    string
		sub     string
		wantErr bool
	}{
		{spec: "mongoose", name: "mongoose"},
		{spec: "mongoose/browser", name: "mongoose", sub: "browser"},
		{spec: "@factor/tools", name: "@factor/tools"},
		{spec: "@factor/tools/a/b", name: "@factor/tools", sub: "a/b"},
		{spec: "@factor", wantErr: true},
		{spec: "@factor/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			name, sub, err := SplitPackage(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitPackage(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if name != tt.name || sub != tt.sub {
				t.Errorf("SplitPackage(%q) = (%q, %q), want (%q, %q)", tt.spec, name, sub, tt.name, tt.sub)
			}
		})
	}
}
