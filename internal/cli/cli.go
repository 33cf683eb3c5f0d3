/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cli holds the setup shared by the factor-overrides subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"factor.dev/overrides/config"
	"factor.dev/overrides/fs"
	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/logger"
)

// EnvPrefix is the prefix of environment variables bound to global flags,
// e.g. FACTOR_MARKER.
const EnvPrefix = "FACTOR"

var envReplacer = strings.NewReplacer("-", "_")

// overlays maps global flag keys onto config fields. A flag or
// environment variable that is set wins over the config file.
var overlays = []struct {
	key   string
	field func(*config.Config) *string
}{
	{"source", func(c *config.Config) *string { return &c.Source }},
	{"core-app", func(c *config.Config) *string { return &c.CoreApp }},
	{"core-package", func(c *config.Config) *string { return &c.CorePackage }},
	{"workspace", func(c *config.Config) *string { return &c.Workspace }},
	{"marker", func(c *config.Config) *string { return &c.Marker }},
	{"namespace", func(c *config.Config) *string { return &c.Namespace }},
	{"browser-suffix", func(c *config.Config) *string { return &c.BrowserSuffix }},
}

// BindFlags registers the global flags on flags and binds them, with
// their environment variables, into v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.StringP("root", "r", ".", "Project root directory")
	flags.BoolP("verbose", "v", false, "Log every rewrite decision")
	flags.String("source", "", "Application source root, relative to the project root")
	flags.String("core-app", "", "Core library root, overrides core-package")
	flags.String("core-package", "", "Package whose entry directory is the core library root")
	flags.String("workspace", "", "Workspace root searched for extension packages")
	flags.String("marker", "", "Override marker prefix")
	flags.String("namespace", "", "Library package namespace")
	flags.String("browser-suffix", "", "Suffix of browser variant files")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	return v.BindPFlags(flags)
}

// Root returns the absolute project root.
func Root(v *viper.Viper) (string, error) {
	return filepath.Abs(v.GetString("root"))
}

// Config loads the project config and applies flag and environment
// overlays.
func Config(v *viper.Viper, filesystem fs.FileSystem, root string) (*config.Config, error) {
	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	for _, o := range overlays {
		if val := v.GetString(o.key); val != "" {
			*o.field(cfg) = val
		}
	}
	return cfg, cfg.Validate()
}

// Engine builds the override engine for the current invocation.
func Engine(v *viper.Viper, filesystem fs.FileSystem) (*hooks.Hooks, error) {
	logger.SetVerbose(v.GetBool("verbose"))

	root, err := Root(v)
	if err != nil {
		return nil, err
	}
	cfg, err := Config(v, filesystem, root)
	if err != nil {
		return nil, err
	}
	return hooks.New(hooks.Options{Root: root, FS: filesystem, Config: cfg})
}

// Format validates an output format flag value.
func Format(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
