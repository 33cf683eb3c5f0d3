/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package locate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"factor.dev/overrides/fs"
)

// ManifestFile is the package manifest file name.
const ManifestFile = "package.json"

// Manifest holds the package.json fields the engine reads.
type Manifest struct {
	// Name is the package name.
	Name string `json:"name"`

	// Main is the entry point relative to the package directory.
	Main string `json:"main"`

	// Workspaces lists workspace globs (array or {"packages": [...]} form).
	Workspaces []string `json:"-"`

	// Dependencies lists dependency names in declaration order.
	Dependencies []string `json:"-"`

	// Factor carries the extension descriptor, if any.
	Factor *FactorField `json:"factor"`
}

// FactorField is the "factor" section of an extension's package.json.
type FactorField struct {
	// Extend is the extension role, e.g. "theme".
	Extend string `json:"extend"`
}

type rawManifest struct {
	Manifest
	RawWorkspaces json.RawMessage `json:"workspaces"`
}

// ParseManifest parses package.json content. Comments and trailing commas
// are tolerated.
func ParseManifest(data []byte) (*Manifest, error) {
	clean := jsonc.ToJSON(data)

	var raw rawManifest
	if err := json.Unmarshal(clean, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}

	m := raw.Manifest
	workspaces, err := parseWorkspaces(raw.RawWorkspaces)
	if err != nil {
		return nil, err
	}
	m.Workspaces = workspaces

	deps, err := orderedKeys(clean, "dependencies")
	if err != nil {
		return nil, err
	}
	m.Dependencies = deps

	return &m, nil
}

// ReadManifest reads and parses dir/package.json.
func ReadManifest(filesystem fs.FileSystem, dir string) (*Manifest, error) {
	data, err := filesystem.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return m, nil
}

func parseWorkspaces(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("invalid workspaces field: %w", err)
	}
	return obj.Packages, nil
}

// orderedKeys returns the keys of the top-level object field in source
// order. encoding/json maps lose ordering, and dependency order is
// extension precedence.
func orderedKeys(data []byte, field string) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("failed to parse %s: root must be an object", ManifestFile)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != field {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok != json.Delim('{') {
			return nil, fmt.Errorf("%s field %q must be an object", ManifestFile, field)
		}

		var keys []string
		for dec.More() {
			k, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := k.(string)
			keys = append(keys, name)
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
		return keys, nil
	}

	return nil, nil
}
