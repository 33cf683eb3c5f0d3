/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package locate

import (
	"slices"
	"testing"
)

func TestParseManifest_DependencyOrder(t *testing.T) {
	m, err := ParseManifest([]byte(`{
		"name": "site",
		"dependencies": {
			"@factor/theme-zeta": "^1.0.0",
			"@factor/app": "^1.0.0",
			"@factor/theme-alpha": "^1.0.0"
		}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"@factor/theme-zeta", "@factor/app", "@factor/theme-alpha"}
	if !slices.Equal(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", m.Dependencies, want)
	}
}

func TestParseManifest_WorkspacesObjectForm(t *testing.T) {
	m, err := ParseManifest([]byte(`{"workspaces": {"packages": ["packages/*", "themes/**"]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(m.Workspaces, []string{"packages/*", "themes/**"}) {
		t.Errorf("Workspaces = %v", m.Workspaces)
	}
}

func TestParseManifest_FactorField(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "@factor/theme-alpha", "factor": {"extend": "theme"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Factor == nil || m.Factor.Extend != "theme" {
		t.Errorf("Factor = %+v, want extend theme", m.Factor)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	if _, err := ParseManifest([]byte(`[1, 2]`)); err == nil {
		t.Error("expected error for non-object manifest")
	}
}
