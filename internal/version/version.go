/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides version information for the factor-overrides CLI.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"goVersion"`
	Esbuild   string `json:"esbuild,omitempty"`
}

// Get returns the version string: the ldflags version, else the module
// version, else the git tag with a short commit suffix.
func Get() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}
	v := GitTag
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	if short != "" && !strings.HasSuffix(v, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// Info returns detailed build information, including the esbuild
// version the plugin was built against.
func Info() BuildInfo {
	info := BuildInfo{
		Version:   Get(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			if dep.Path == "github.com/evanw/esbuild" {
				info.Esbuild = dep.Version
			}
		}
	}
	return info
}
