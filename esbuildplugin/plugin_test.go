/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package esbuildplugin

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/testutil"
)

func init() {
	logger.SetOutput(io.Discard)
}

func testHooks(t *testing.T) *hooks.Hooks {
	t.Helper()
	mfs := testutil.NewTree(map[string]string{
		"/site/src/index.js":                            "",
		"/site/src/header.vue":                          "",
		"/site/src/widget/index.js":                     "",
		"/site/node_modules/@factor/app/package.json":   `{"name":"@factor/app","main":"src/index.js"}`,
		"/site/node_modules/@factor/app/src/index.js":   "",
		"/site/node_modules/@factor/app/src/footer.vue": "",
	})
	h, err := hooks.New(hooks.Options{Root: "/site", FS: mfs})
	require.NoError(t, err)
	return h
}

func TestFilters(t *testing.T) {
	filters := Filters(testHooks(t))
	require.Len(t, filters, 3)

	match := func(spec string) bool {
		for _, f := range filters {
			if regexp.MustCompile(f).MatchString(spec) {
				return true
			}
		}
		return false
	}

	assert.True(t, match("__FALLBACK__/header"))
	assert.True(t, match("@factor/tools/utils"))
	assert.True(t, match("mongoose"))
	assert.True(t, match("mongoose/lib/types"))
	assert.False(t, match("mongoose-lean"))
	assert.False(t, match("@factorx/tools"))
	assert.False(t, match("vue"))
}

func TestOnResolve_AbsoluteRewrite(t *testing.T) {
	h := testHooks(t)
	called := false
	resolve := func(string, api.ResolveOptions) api.ResolveResult {
		called = true
		return api.ResolveResult{}
	}

	res := onResolve(h, resolve, api.OnResolveArgs{Path: "__FALLBACK__/header", ResolveDir: "/site/src"})
	assert.Equal(t, "/site/src/header.vue", res.Path)
	assert.Equal(t, "file", res.Namespace)
	assert.False(t, called, "absolute paths need no second resolution")
}

func TestOnResolve_DirectoryOverrideResolvesAgain(t *testing.T) {
	h := testHooks(t)
	var gotPath string
	var gotOpts api.ResolveOptions
	resolve := func(path string, opts api.ResolveOptions) api.ResolveResult {
		gotPath, gotOpts = path, opts
		return api.ResolveResult{Path: "/site/src/widget/index.js", Namespace: "file"}
	}

	res := onResolve(h, resolve, api.OnResolveArgs{Path: "__FALLBACK__/widget", ResolveDir: "/site/src"})
	assert.Equal(t, "/site/src/widget", gotPath, "directories go through esbuild's index lookup")
	assert.IsType(t, reentry{}, gotOpts.PluginData)
	assert.Equal(t, "/site/src/widget/index.js", res.Path)
	assert.Equal(t, "file", res.Namespace)
}

func TestOnResolve_Unchanged(t *testing.T) {
	h := testHooks(t)
	resolve := func(string, api.ResolveOptions) api.ResolveResult {
		t.Fatal("unchanged requests must not be resolved again")
		return api.ResolveResult{}
	}

	res := onResolve(h, resolve, api.OnResolveArgs{Path: "__FALLBACK__/nowhere", ResolveDir: "/site/src"})
	assert.Empty(t, res.Path, "esbuild reports the unresolved marker itself")
}

func TestOnResolve_RedirectResolvesAgain(t *testing.T) {
	h := testHooks(t)
	var gotPath string
	var gotOpts api.ResolveOptions
	resolve := func(path string, opts api.ResolveOptions) api.ResolveResult {
		gotPath, gotOpts = path, opts
		return api.ResolveResult{Path: "/site/node_modules/mongoose/browser.js", Namespace: "file"}
	}

	res := onResolve(h, resolve, api.OnResolveArgs{
		Path:       "mongoose",
		Importer:   "/site/src/index.js",
		ResolveDir: "/site/src",
		Kind:       api.ResolveJSImportStatement,
	})

	assert.Equal(t, "mongoose/browser", gotPath)
	assert.Equal(t, "/site/src", gotOpts.ResolveDir)
	assert.Equal(t, api.ResolveJSImportStatement, gotOpts.Kind)
	assert.IsType(t, reentry{}, gotOpts.PluginData)
	assert.Equal(t, "/site/node_modules/mongoose/browser.js", res.Path)
}

func TestOnResolve_RedirectError(t *testing.T) {
	h := testHooks(t)
	resolve := func(string, api.ResolveOptions) api.ResolveResult {
		return api.ResolveResult{Errors: []api.Message{{Text: "Could not resolve \"mongoose/browser\""}}}
	}

	res := onResolve(h, resolve, api.OnResolveArgs{Path: "mongoose", ResolveDir: "/site/src"})
	require.Len(t, res.Errors, 1)
	assert.Empty(t, res.Path)
}

func TestOnResolve_Reentry(t *testing.T) {
	h := testHooks(t)
	res := onResolve(h, nil, api.OnResolveArgs{Path: "mongoose", PluginData: reentry{}})
	assert.Equal(t, api.OnResolveResult{}, res)
}

func TestApply_Build(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	write("package.json", `{"name":"site","dependencies":{"@factor/app":"1.0.0","@factor/theme-one":"1.0.0"}}`)
	write("src/index.js", `
import { greet } from "__FALLBACK__/greet"
import { farewell } from "__FALLBACK__/farewell"
import { banner } from "@theme/banner"
import { widget } from "__FALLBACK__/widget"
console.log(greet, farewell, banner, widget)
`)
	write("src/greet.js", `export const greet = "greet-from-source"`)
	write("src/widget/index.js", `export const widget = "widget-from-directory"`)
	write("node_modules/@factor/app/package.json", `{"name":"@factor/app","main":"src/index.js"}`)
	write("node_modules/@factor/app/src/index.js", ``)
	write("node_modules/@factor/app/src/greet.js", `export const greet = "greet-from-library"`)
	write("node_modules/@factor/app/src/farewell.js", `export const farewell = "farewell-from-library"`)
	write("node_modules/@factor/theme-one/package.json", `{"name":"@factor/theme-one","main":"index.js","factor":{"extend":"theme"}}`)
	write("node_modules/@factor/theme-one/index.js", ``)
	write("node_modules/@factor/theme-one/banner.js", `export const banner = "banner-from-theme"`)

	h, err := hooks.New(hooks.Options{Root: root})
	require.NoError(t, err)

	opts := api.BuildOptions{
		EntryPoints:   []string{filepath.Join(root, "src/index.js")},
		Bundle:        true,
		Write:         false,
		Format:        api.FormatESModule,
		AbsWorkingDir: root,
		LogLevel:      api.LogLevelSilent,
	}
	Apply(h, &opts)
	require.Len(t, opts.Plugins, 1)

	result := api.Build(opts)
	require.Empty(t, result.Errors)
	require.Len(t, result.OutputFiles, 1)

	out := string(result.OutputFiles[0].Contents)
	assert.Contains(t, out, "greet-from-source")
	assert.NotContains(t, out, "greet-from-library")
	assert.Contains(t, out, "farewell-from-library")
	assert.Contains(t, out, "banner-from-theme")
	assert.Contains(t, out, "widget-from-directory")
}
