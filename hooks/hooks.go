/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package hooks is the surface a bundler's configuration phase calls into.
//
// It exposes two extension points. Aliases contributes the theme alias to
// the bundler's alias map. Plugins appends the module replacement rules to
// the bundler's plugin list in fixed order: dependency redirects, the
// marker override resolver, then the namespace browser-variant resolver.
// Both are pure composition over lists the caller owns.
package hooks

import (
	"fmt"
	"maps"
	"path/filepath"

	"factor.dev/overrides/config"
	"factor.dev/overrides/extension"
	"factor.dev/overrides/fs"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/locate"
	"factor.dev/overrides/paths"
	"factor.dev/overrides/request"
	"factor.dev/overrides/rewrite"
	"factor.dev/overrides/theme"
)

// Options configures an engine.
type Options struct {
	// Root is the absolute project directory. Required.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Config is the engine configuration. Defaults to config.Default() if nil.
	Config *config.Config

	// Registry overrides the extension registry built from Config.
	Registry *extension.Registry
}

// Hooks holds everything resolved once per build: roots, theme
// directories, and the rewriter chain. It is immutable after New and safe
// for concurrent use.
type Hooks struct {
	fs          fs.FileSystem
	cfg         *config.Config
	conventions request.Conventions
	roots       *paths.Resolver
	registry    *extension.Registry
	locator     *locate.Locator
	themes      []theme.Dir

	redirects []rewrite.Redirect
	override  *rewrite.OverrideResolver
	browser   *rewrite.BrowserVariantResolver
	chain     *rewrite.Chain
}

// New resolves roots and themes and assembles the rewriter chain.
// A theme that cannot be resolved fails the whole build setup.
func New(opts Options) (*Hooks, error) {
	if opts.FS == nil {
		opts.FS = fs.NewOSFileSystem()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(opts.Root) {
		return nil, fmt.Errorf("%w: %q", paths.ErrRelativeRoot, opts.Root)
	}

	var locatorOpts []locate.Option
	if cfg.Workspace != "" {
		ws := cfg.Workspace
		if !filepath.IsAbs(ws) {
			ws = filepath.Join(opts.Root, ws)
		}
		locatorOpts = append(locatorOpts, locate.WithWorkspaceRoot(ws))
	}
	locator := locate.New(opts.FS, locatorOpts...)

	named := map[string]string{paths.Source: cfg.Source}
	coreApp, err := coreAppRoot(cfg, locator, opts.Root)
	if err != nil {
		return nil, err
	}
	if coreApp != "" {
		named[paths.CoreApp] = coreApp
	}
	roots, err := paths.New(opts.Root, named)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry, err = cfg.Registry(opts.FS, locator, opts.Root)
		if err != nil {
			return nil, err
		}
	}

	themes, err := theme.Directories(registry, locator, opts.Root)
	if err != nil {
		return nil, err
	}

	source := roots.MustGet(paths.Source)
	library, _ := roots.Get(paths.CoreApp)

	h := &Hooks{
		fs:          opts.FS,
		cfg:         cfg,
		conventions: cfg.Conventions(),
		roots:       roots,
		registry:    registry,
		locator:     locator,
		themes:      themes,
		redirects:   cfg.RedirectRules(),
		override:    rewrite.NewOverrideResolver(opts.FS, source, themes, library),
		browser:     rewrite.NewBrowserVariantResolver(opts.FS, locator, cfg.BrowserSuffix),
	}
	h.chain = rewrite.NewChain(h.Plugins(nil)...)

	logger.Debug("override engine ready",
		"root", opts.Root,
		"source", source,
		"library", library,
		"themes", len(themes))

	return h, nil
}

// coreAppRoot returns the configured core library root, or the directory
// of the core package's entry file. A core package that is not installed
// only disables the library fallback.
func coreAppRoot(cfg *config.Config, locator *locate.Locator, root string) (string, error) {
	if cfg.CoreApp != "" {
		return cfg.CoreApp, nil
	}
	entry, err := locator.Resolve(cfg.CorePackage, root)
	if err != nil {
		logger.Warn("core package not installed, library fallback disabled", "package", cfg.CorePackage)
		return "", nil
	}
	return filepath.Dir(entry), nil
}

// Aliases returns a copy of aliases with the theme alias merged in. The
// alias targets the first registered theme, or the source root when no
// theme is registered.
func (h *Hooks) Aliases(aliases map[string]string) map[string]string {
	out := make(map[string]string, len(aliases)+1)
	maps.Copy(out, aliases)
	out[h.cfg.ThemeAlias] = h.ThemeAliasTarget()
	return out
}

// ThemeAliasTarget is the directory the theme alias points at.
func (h *Hooks) ThemeAliasTarget() string {
	return theme.AliasTarget(h.themes, h.roots.MustGet(paths.Source))
}

// Plugins appends the replacement rules to plugins: every redirect, the
// override resolver, then the browser-variant resolver.
func (h *Hooks) Plugins(plugins []rewrite.Rewriter) []rewrite.Rewriter {
	for _, r := range h.redirects {
		plugins = append(plugins, r)
	}
	return append(plugins, h.override, h.browser)
}

// Resolve classifies a raw specifier and passes it through the chain.
func (h *Hooks) Resolve(specifier, importerDir string) request.Request {
	return h.chain.Apply(h.conventions.Classify(specifier, importerDir))
}

// Explain returns the override trace for a marker specifier.
func (h *Hooks) Explain(specifier, importerDir string) rewrite.Trace {
	return h.override.Explain(h.conventions.Classify(specifier, importerDir))
}

// Classify exposes the boundary classification.
func (h *Hooks) Classify(specifier, importerDir string) request.Request {
	return h.conventions.Classify(specifier, importerDir)
}

// Conventions returns the marker and namespace in use.
func (h *Hooks) Conventions() request.Conventions {
	return h.conventions
}

// Redirects returns the configured dependency redirects.
func (h *Hooks) Redirects() []rewrite.Redirect {
	return append([]rewrite.Redirect(nil), h.redirects...)
}

// Browser returns the browser-variant resolver.
func (h *Hooks) Browser() *rewrite.BrowserVariantResolver {
	return h.browser
}

// Themes returns the resolved theme directories in precedence order.
func (h *Hooks) Themes() []theme.Dir {
	return append([]theme.Dir(nil), h.themes...)
}

// Registry returns the extension registry.
func (h *Hooks) Registry() *extension.Registry {
	return h.registry
}

// Roots returns the named root table.
func (h *Hooks) Roots() *paths.Resolver {
	return h.roots
}

// FileSystem returns the filesystem the engine probes.
func (h *Hooks) FileSystem() fs.FileSystem {
	return h.fs
}

// Config returns the configuration the engine was built from.
func (h *Hooks) Config() *config.Config {
	return h.cfg
}
