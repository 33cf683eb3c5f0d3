/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the override engine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"factor.dev/overrides/extension"
	"factor.dev/overrides/request"
	"factor.dev/overrides/rewrite"
)

// ErrInvalidConfig indicates a configuration value that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the override engine configuration.
type Config struct {
	// Source is the application source root, relative to the project root.
	Source string `yaml:"source" json:"source"`

	// CoreApp is the core library root. When empty, the directory of
	// CorePackage's entry file is used.
	CoreApp string `yaml:"coreApp" json:"coreApp"`

	// CorePackage is the package providing the library defaults.
	CorePackage string `yaml:"corePackage" json:"corePackage"`

	// Workspace is the monorepo root whose "workspaces" globs are searched
	// for packages missing from node_modules. Optional.
	Workspace string `yaml:"workspace" json:"workspace"`

	// Marker is the override sentinel prefix.
	Marker string `yaml:"marker" json:"marker"`

	// Namespace is the library package scope eligible for browser variants.
	Namespace string `yaml:"namespace" json:"namespace"`

	// BrowserSuffix names browser variants: util.js -> util<suffix>.js.
	BrowserSuffix string `yaml:"browserSuffix" json:"browserSuffix"`

	// ThemeAlias is the alias name pointing at the active theme.
	ThemeAlias string `yaml:"themeAlias" json:"themeAlias"`

	// Redirects are static dependency redirects. Nil selects the defaults;
	// an explicit empty list disables them.
	Redirects []RedirectSpec `yaml:"redirects" json:"redirects"`

	// Extensions lists extensions in precedence order. When empty, they are
	// discovered from the application's package.json.
	Extensions []ExtensionSpec `yaml:"extensions" json:"extensions"`
}

// RedirectSpec is a dependency redirect.
// The string form "pkg" means "pkg" -> "pkg/browser".
type RedirectSpec struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// UnmarshalYAML handles both string and object forms for RedirectSpec.
func (r *RedirectSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.From = node.Value
		r.To = node.Value + "/browser"
		return nil
	}

	type rawRedirectSpec RedirectSpec
	return node.Decode((*rawRedirectSpec)(r))
}

// UnmarshalJSON handles both string and object forms for RedirectSpec.
func (r *RedirectSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.From = s
		r.To = s + "/browser"
		return nil
	}

	type rawRedirectSpec RedirectSpec
	return json.Unmarshal(data, (*rawRedirectSpec)(r))
}

// ExtensionSpec is an extension entry.
// The string form gives only the name; the role is then read from the
// package's own package.json.
type ExtensionSpec struct {
	Name   string `yaml:"name" json:"name"`
	Extend string `yaml:"extend" json:"extend"`
}

// UnmarshalYAML handles both string and object forms for ExtensionSpec.
func (e *ExtensionSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Name = node.Value
		return nil
	}

	type rawExtensionSpec ExtensionSpec
	return node.Decode((*rawExtensionSpec)(e))
}

// UnmarshalJSON handles both string and object forms for ExtensionSpec.
func (e *ExtensionSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Name = s
		return nil
	}

	type rawExtensionSpec ExtensionSpec
	return json.Unmarshal(data, (*rawExtensionSpec)(e))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Source:        "src",
		CorePackage:   "@factor/app",
		Marker:        "__FALLBACK__",
		Namespace:     "@factor",
		BrowserSuffix: rewrite.DefaultBrowserSuffix,
		ThemeAlias:    "@theme",
	}
}

// Conventions returns the request classification conventions.
func (c *Config) Conventions() request.Conventions {
	return request.Conventions{Marker: c.Marker, Namespace: c.Namespace}
}

// RedirectRules returns the configured redirects, or the defaults when
// none were configured.
func (c *Config) RedirectRules() []rewrite.Redirect {
	if c.Redirects == nil {
		return rewrite.DefaultRedirects()
	}
	rules := make([]rewrite.Redirect, 0, len(c.Redirects))
	for _, r := range c.Redirects {
		rules = append(rules, rewrite.Redirect{From: r.From, To: r.To})
	}
	return rules
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	if err := c.Conventions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Source == "" {
		return fmt.Errorf("%w: source must not be empty", ErrInvalidConfig)
	}
	if c.CoreApp == "" && c.CorePackage == "" {
		return fmt.Errorf("%w: one of coreApp or corePackage is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.BrowserSuffix) == "" {
		return fmt.Errorf("%w: browserSuffix must not be empty", ErrInvalidConfig)
	}
	if c.ThemeAlias == "" {
		return fmt.Errorf("%w: themeAlias must not be empty", ErrInvalidConfig)
	}
	for i, r := range c.Redirects {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("%w: redirects[%d] needs both from and to", ErrInvalidConfig, i)
		}
	}
	for i, e := range c.Extensions {
		if e.Name == "" {
			return fmt.Errorf("%w: extensions[%d] has no name", ErrInvalidConfig, i)
		}
		if e.Extend != "" {
			if _, err := extension.ParseRole(e.Extend); err != nil {
				return fmt.Errorf("%w: extensions[%d]: %w", ErrInvalidConfig, i, err)
			}
		}
	}
	return nil
}
