/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package aliases

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/testutil"
)

func init() {
	logger.SetOutput(io.Discard)
}

func newHooks(t *testing.T) *hooks.Hooks {
	t.Helper()
	mfs := testutil.NewTree(map[string]string{
		"/site/package.json":                                 `{"name":"site","dependencies":{"@factor/theme-dark":"1"}}`,
		"/site/src/index.js":                                 "",
		"/site/node_modules/@factor/theme-dark/package.json": `{"name":"@factor/theme-dark","main":"index.js","factor":{"extend":"theme"}}`,
		"/site/node_modules/@factor/theme-dark/index.js":     "",
	})
	h, err := hooks.New(hooks.Options{Root: "/site", FS: mfs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	aliases := map[string]string{
		"vue$":   "vue/dist/vue.esm.js",
		"@theme": "/site/node_modules/@factor/theme-dark",
	}
	if err := write(&buf, aliases, "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "@theme -> /site/node_modules/@factor/theme-dark\nvue$ -> vue/dist/vue.esm.js\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := write(&buf, newHooks(t).Aliases(nil), "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got["@theme"] != "/site/node_modules/@factor/theme-dark" {
		t.Errorf("theme alias = %q, want the first theme's directory", got["@theme"])
	}
	if len(got) != 1 {
		t.Errorf("expected only the theme alias, got %v", got)
	}
}
