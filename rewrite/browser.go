/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package rewrite

import (
	"path/filepath"
	"strings"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/locate"
	"factor.dev/overrides/probe"
	"factor.dev/overrides/request"
)

// DefaultBrowserSuffix is appended to a module's base name to find its
// browser implementation: util.js -> util-browser.js.
const DefaultBrowserSuffix = "-browser"

// BrowserVariantResolver swaps a library module for its browser sibling
// when one exists. Every module in the library namespace is eligible, so
// no module has to opt in.
type BrowserVariantResolver struct {
	fs      fs.FileSystem
	locator *locate.Locator
	suffix  string
}

// NewBrowserVariantResolver creates a browser-variant resolver. An empty
// suffix selects DefaultBrowserSuffix.
func NewBrowserVariantResolver(filesystem fs.FileSystem, locator *locate.Locator, suffix string) *BrowserVariantResolver {
	if suffix == "" {
		suffix = DefaultBrowserSuffix
	}
	return &BrowserVariantResolver{
		fs:      filesystem,
		locator: locator,
		suffix:  suffix,
	}
}

// Name implements Rewriter.
func (b *BrowserVariantResolver) Name() string {
	return "browser-variant"
}

// Rewrite implements Rewriter. The request is located the way the bundler
// would locate it from the importer, then its browser sibling is probed.
// A module that cannot be located is left for the bundler to report.
func (b *BrowserVariantResolver) Rewrite(req request.Request) request.Request {
	if req.Kind != request.KindNamespace {
		return req
	}

	resolved, err := b.locator.Resolve(req.Specifier, req.ImporterDir)
	if err != nil {
		logger.Debug("browser variant skipped", "specifier", req.Specifier, "error", err)
		return req
	}

	if variant, ok := b.Variant(resolved); ok {
		return req.Rewritten(b.Name(), variant)
	}
	return req
}

// Variant returns the browser sibling of an absolute module path, probing
// "<dir>/<base><suffix>" where base drops the final extension.
func (b *BrowserVariantResolver) Variant(resolvedPath string) (string, bool) {
	dir, name := filepath.Split(resolvedPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || strings.HasSuffix(stem, b.suffix) {
		return "", false
	}
	return probe.Find(b.fs, filepath.Join(dir, stem+b.suffix))
}

// Locate resolves spec from importerDir to a real file path.
func (b *BrowserVariantResolver) Locate(spec, importerDir string) (string, error) {
	return b.locator.Resolve(spec, importerDir)
}

// ResolveBrowserVariant locates spec from importerDir and returns its
// browser sibling, or the located path itself when there is none.
func (b *BrowserVariantResolver) ResolveBrowserVariant(spec, importerDir string) (string, error) {
	resolved, err := b.Locate(spec, importerDir)
	if err != nil {
		return "", err
	}
	if variant, ok := b.Variant(resolved); ok {
		return variant, nil
	}
	return resolved, nil
}
