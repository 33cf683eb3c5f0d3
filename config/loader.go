/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"factor.dev/overrides/extension"
	"factor.dev/overrides/fs"
	"factor.dev/overrides/locate"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "factor-overrides"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/factor-overrides.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error). Keys absent from the file
// keep their default values.
func Load(filesystem fs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := Default()
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", configPath, err)
			}
		case ".json":
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", configPath, err)
			}
		}

		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
		return cfg, nil
	}

	return nil, nil
}

// Registry builds the extension registry. Listed extensions keep their
// order; a listed name without a role takes it from the package's own
// "factor.extend" manifest field. With no extensions listed, the registry
// is discovered from the application's package.json, or empty when the
// application has none.
func (c *Config) Registry(filesystem fs.FileSystem, locator *locate.Locator, rootDir string) (*extension.Registry, error) {
	if len(c.Extensions) == 0 {
		if !filesystem.Exists(filepath.Join(rootDir, locate.ManifestFile)) {
			return extension.NewRegistry()
		}
		return extension.Discover(filesystem, locator, rootDir)
	}

	list := make([]extension.Extension, 0, len(c.Extensions))
	for _, spec := range c.Extensions {
		role := spec.Extend
		if role == "" {
			r, err := manifestRole(filesystem, locator, spec.Name, rootDir)
			if err != nil {
				return nil, err
			}
			role = r
		}
		parsed, err := extension.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		list = append(list, extension.Extension{Name: spec.Name, Extend: parsed})
	}
	return extension.NewRegistry(list...)
}

func manifestRole(filesystem fs.FileSystem, locator *locate.Locator, name, rootDir string) (string, error) {
	dir, err := locator.PackageDir(name, rootDir)
	if err != nil {
		return "", fmt.Errorf("%w: extension %s: %w", ErrInvalidConfig, name, err)
	}
	m, err := locate.ReadManifest(filesystem, dir)
	if err != nil {
		return "", fmt.Errorf("%w: extension %s: %w", ErrInvalidConfig, name, err)
	}
	if m.Factor == nil || m.Factor.Extend == "" {
		return "", fmt.Errorf("%w: extension %s declares no role; set extend explicitly", ErrInvalidConfig, name)
	}
	return m.Factor.Extend, nil
}
