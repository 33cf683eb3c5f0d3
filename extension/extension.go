/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package extension describes the ordered set of installed extensions
// (themes, plugins, apps) that take part in override resolution.
package extension

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidExtension indicates a malformed extension descriptor.
var ErrInvalidExtension = errors.New("invalid extension")

// Role is the kind of extension, taken from the "extend" field.
type Role string

const (
	RoleTheme   Role = "theme"
	RolePlugin  Role = "plugin"
	RoleApp     Role = "app"
	RoleService Role = "service"
)

var knownRoles = []Role{RoleTheme, RolePlugin, RoleApp, RoleService}

// ParseRole parses a role string. Unknown roles are rejected rather than
// coerced, since a typo in "theme" would silently drop a theme.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if slices.Contains(knownRoles, r) {
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidExtension, s)
}

// Extension is a registered extension descriptor.
type Extension struct {
	// Name is the package name, e.g. "@factor/theme-alpha".
	Name string `yaml:"name" json:"name"`

	// Extend is the extension role.
	Extend Role `yaml:"extend" json:"extend"`
}

// Validate checks the descriptor.
func (e Extension) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidExtension)
	}
	if _, err := ParseRole(string(e.Extend)); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	return nil
}

// Registry is an immutable, ordered list of extensions.
// Registration order is precedence order.
type Registry struct {
	extensions []Extension
}

// NewRegistry validates and copies the given extensions. Duplicate names
// keep their first registration.
func NewRegistry(extensions ...Extension) (*Registry, error) {
	seen := make(map[string]bool, len(extensions))
	list := make([]Extension, 0, len(extensions))
	for _, ext := range extensions {
		if err := ext.Validate(); err != nil {
			return nil, err
		}
		if seen[ext.Name] {
			continue
		}
		seen[ext.Name] = true
		list = append(list, ext)
	}
	return &Registry{extensions: list}, nil
}

// All returns a copy of every registered extension in order.
func (r *Registry) All() []Extension {
	if r == nil {
		return nil
	}
	return slices.Clone(r.extensions)
}

// ByRole returns the extensions with the given role in registration order.
func (r *Registry) ByRole(role Role) []Extension {
	if r == nil {
		return nil
	}
	var out []Extension
	for _, ext := range r.extensions {
		if ext.Extend == role {
			out = append(out, ext)
		}
	}
	return out
}

// Themes returns the registered themes in registration order.
func (r *Registry) Themes() []Extension {
	return r.ByRole(RoleTheme)
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.extensions)
}
