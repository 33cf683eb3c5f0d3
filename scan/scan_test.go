/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package scan_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factor.dev/overrides/hooks"
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/internal/mapfs"
	"factor.dev/overrides/scan"
	"factor.dev/overrides/testutil"
)

func init() {
	logger.SetOutput(io.Discard)
}

func project() *mapfs.MapFileSystem {
	return testutil.NewTree(map[string]string{
		"/site/src/index.js": `import Vue from "vue"
import Header from "__FALLBACK__/header"
import Missing from "__FALLBACK__/missing"
import mongoose from "mongoose"
`,
		"/site/src/header.vue": `<script>
import { utils } from "@factor/tools/utils"
</script>
`,
		"/site/src/notes.md":                                "import x from \"__FALLBACK__/ignored\"",
		"/site/src/vendor/lib.js":                           `import "__FALLBACK__/header"`,
		"/site/node_modules/@factor/app/package.json":       `{"name":"@factor/app","main":"src/index.js"}`,
		"/site/node_modules/@factor/app/src/index.js":       `import "__FALLBACK__/never-scanned"`,
		"/site/node_modules/@factor/tools/package.json":     `{"name":"@factor/tools","main":"index.js"}`,
		"/site/node_modules/@factor/tools/index.js":         "",
		"/site/node_modules/@factor/tools/utils.js":         "",
		"/site/node_modules/@factor/tools/utils-browser.js": "",
	})
}

func newScanner(t *testing.T, opts scan.Options) *scan.Scanner {
	t.Helper()
	mfs := project()
	h, err := hooks.New(hooks.Options{Root: "/site", FS: mfs})
	require.NoError(t, err)
	return scan.New(mfs, h, opts)
}

func TestScan(t *testing.T) {
	s := newScanner(t, scan.Options{Exclude: []string{"**/node_modules/**", "**/vendor/**"}})

	report, err := s.Scan(context.Background(), "/site")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	require.Len(t, report.Findings, 4)

	header := report.Findings[0]
	assert.Equal(t, "/site/src/header.vue", header.File)
	assert.Equal(t, 2, header.Line)
	assert.Equal(t, "/site/node_modules/@factor/tools/utils-browser.js", header.Resolved)
	assert.Equal(t, "rewritten", header.Status())

	index := report.Findings[1:]
	assert.Equal(t, "/site/src/header.vue", index[0].Resolved)
	assert.Equal(t, "override", index[0].By)
	assert.Equal(t, "unresolved", index[1].Status())
	assert.Equal(t, "mongoose/browser", index[2].Resolved)

	unresolved := report.Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, "__FALLBACK__/missing", unresolved[0].Specifier)
	assert.Equal(t, 3, unresolved[0].Line)
}

func TestScan_All(t *testing.T) {
	s := newScanner(t, scan.Options{All: true, Include: []string{"src/*.js"}})

	report, err := s.Scan(context.Background(), "/site")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	require.Len(t, report.Findings, 4)
	assert.Equal(t, "vue", report.Findings[0].Specifier)
	assert.Equal(t, "unchanged", report.Findings[0].Status())
}

func TestScan_DefaultExcludeSkipsNodeModules(t *testing.T) {
	s := newScanner(t, scan.Options{})

	report, err := s.Scan(context.Background(), "/site")
	require.NoError(t, err)

	for _, f := range report.Findings {
		assert.NotContains(t, f.File, "node_modules")
	}
	assert.Equal(t, 3, report.Files)
}

func TestScan_Cancelled(t *testing.T) {
	s := newScanner(t, scan.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx, "/site")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_Golden(t *testing.T) {
	s := newScanner(t, scan.Options{Exclude: []string{"**/node_modules/**", "**/vendor/**"}})
	report, err := s.Scan(context.Background(), "/site")
	require.NoError(t, err)

	actual, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)
	actual = append(actual, '\n')

	testutil.UpdateGoldenFile(t, "fixtures/scan/report.json", actual)
	expected := testutil.LoadFixtureFile(t, "fixtures/scan/report.json")
	assert.JSONEq(t, string(expected), string(actual))
}
