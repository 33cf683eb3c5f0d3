/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package rewrite

import (
	"strings"

	"factor.dev/overrides/request"
)

// Redirect unconditionally sends a dependency to another entry point,
// typically the dependency's own published browser build. No probing is
// involved.
type Redirect struct {
	// From is the package name matched, including any subpath.
	From string

	// To is the replacement specifier.
	To string
}

// DefaultRedirects returns the built-in redirects.
func DefaultRedirects() []Redirect {
	return []Redirect{{From: "mongoose", To: "mongoose/browser"}}
}

// Name implements Rewriter.
func (r Redirect) Name() string {
	return "redirect:" + r.From
}

// Matches reports whether specifier names the From package or a subpath of it.
func (r Redirect) Matches(specifier string) bool {
	if r.From == "" {
		return false
	}
	rest, ok := strings.CutPrefix(specifier, r.From)
	return ok && (rest == "" || strings.HasPrefix(rest, "/"))
}

// Rewrite implements Rewriter.
func (r Redirect) Rewrite(req request.Request) request.Request {
	if req.Kind != request.KindPlain || req.Specifier == r.To || !r.Matches(req.Specifier) {
		return req
	}
	return req.Rewritten(r.Name(), r.To)
}
