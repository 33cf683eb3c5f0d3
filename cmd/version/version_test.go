/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	t.Cleanup(func() { Cmd.SetOut(nil) })

	if err := Cmd.Flags().Set("format", "text"); err != nil {
		t.Fatal(err)
	}
	if err := run(Cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "factor-overrides ") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := Cmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}
	if err := run(Cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if _, ok := info["goVersion"]; !ok {
		t.Errorf("missing goVersion in %v", info)
	}

	if err := Cmd.Flags().Set("format", "xml"); err != nil {
		t.Fatal(err)
	}
	if err := run(Cmd, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
