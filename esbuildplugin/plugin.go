/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package esbuildplugin adapts the override engine to esbuild's Go API.
package esbuildplugin

import (
	"path/filepath"
	"regexp"

	"github.com/evanw/esbuild/pkg/api"

	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/logger"
)

// PluginName is the name esbuild reports for messages from this plugin.
const PluginName = "factor-overrides"

// reentry marks resolutions the plugin issues itself, so the callback
// does not rewrite its own output a second time.
type reentry struct{}

// resolveFunc matches api.PluginBuild.Resolve.
type resolveFunc func(path string, options api.ResolveOptions) api.ResolveResult

// Filters returns the OnResolve filters for h: the marker, the library
// namespace, and every redirect source.
func Filters(h *hooks.Hooks) []string {
	conv := h.Conventions()
	filters := []string{
		"^" + regexp.QuoteMeta(conv.Marker),
		"^" + regexp.QuoteMeta(conv.Namespace) + "(/|$)",
	}
	for _, r := range h.Redirects() {
		filters = append(filters, "^"+regexp.QuoteMeta(r.From)+"(/|$)")
	}
	return filters
}

// New returns an esbuild plugin that runs every import matching Filters
// through the engine's rewriter chain.
func New(h *hooks.Hooks) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			for _, filter := range Filters(h) {
				build.OnResolve(api.OnResolveOptions{Filter: filter}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return onResolve(h, build.Resolve, args), nil
				})
			}
		},
	}
}

// Apply merges the theme alias into options.Alias and appends the plugin.
func Apply(h *hooks.Hooks, options *api.BuildOptions) {
	options.Alias = h.Aliases(options.Alias)
	options.Plugins = append(options.Plugins, New(h))
}

// onResolve returns an empty result when the chain leaves the request
// alone, which hands resolution back to esbuild. A rewrite to a regular
// file is returned directly. Anything else, a package or an override that
// landed on a directory, is resolved again by esbuild from the importer's
// directory so main and index lookups apply.
func onResolve(h *hooks.Hooks, resolve resolveFunc, args api.OnResolveArgs) api.OnResolveResult {
	if _, ok := args.PluginData.(reentry); ok {
		return api.OnResolveResult{}
	}

	req := h.Resolve(args.Path, args.ResolveDir)
	if !req.Changed() {
		return api.OnResolveResult{}
	}

	logger.Debug("rewrote import",
		"from", args.Path,
		"to", req.Specifier,
		"by", req.RewrittenBy,
		"importer", args.Importer)

	if isFile(h, req.Specifier) {
		return api.OnResolveResult{Path: req.Specifier, Namespace: "file"}
	}

	res := resolve(req.Specifier, api.ResolveOptions{
		PluginName: PluginName,
		Importer:   args.Importer,
		Namespace:  args.Namespace,
		ResolveDir: args.ResolveDir,
		Kind:       args.Kind,
		PluginData: reentry{},
	})
	if len(res.Errors) > 0 {
		return api.OnResolveResult{Errors: res.Errors, Warnings: res.Warnings}
	}
	return api.OnResolveResult{
		Path:      res.Path,
		External:  res.External,
		Namespace: res.Namespace,
		Suffix:    res.Suffix,
		Warnings:  res.Warnings,
	}
}

func isFile(h *hooks.Hooks, p string) bool {
	if !filepath.IsAbs(p) {
		return false
	}
	info, err := h.FileSystem().Stat(p)
	return err == nil && !info.IsDir()
}
