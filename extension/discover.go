/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package extension

import (
	"fmt"

	"factor.dev/overrides/fs"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/locate"
)

// Discover builds a registry from the application's package.json.
// Dependencies are visited in declaration order; those whose own manifest
// carries a "factor.extend" field are registered with that role.
// Dependencies that are not installed are skipped with a warning, since a
// plain npm dependency may legitimately be missing from a partial install.
// An unrecognized role is skipped with a warning too.
func Discover(filesystem fs.FileSystem, locator *locate.Locator, appDir string) (*Registry, error) {
	app, err := locate.ReadManifest(filesystem, appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read application manifest: %w", err)
	}

	var found []Extension
	for _, dep := range app.Dependencies {
		dir, err := locator.PackageDir(dep, appDir)
		if err != nil {
			logger.Warn("dependency not installed", "package", dep)
			continue
		}

		m, err := locate.ReadManifest(filesystem, dir)
		if err != nil || m.Factor == nil || m.Factor.Extend == "" {
			continue
		}

		role, err := ParseRole(m.Factor.Extend)
		if err != nil {
			logger.Warn("unknown extension role, skipping", "package", dep, "role", m.Factor.Extend)
			continue
		}
		found = append(found, Extension{Name: dep, Extend: role})
	}

	return NewRegistry(found...)
}
