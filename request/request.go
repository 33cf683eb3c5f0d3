/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package request models a module request as it flows through the
// rewriter chain.
//
// A raw specifier is classified exactly once, at the boundary where the
// bundler hands it over. Rewriters switch on the Kind instead of
// re-matching prefixes.
package request

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConventions indicates unusable marker or namespace settings.
var ErrInvalidConventions = errors.New("invalid request conventions")

// Kind is the request variant.
type Kind int

const (
	// KindPlain is an ordinary specifier; no override logic applies.
	KindPlain Kind = iota
	// KindOverride is a marker-prefixed specifier resolved against the override roots.
	KindOverride
	// KindNamespace is a specifier inside the library namespace, eligible
	// for a browser-variant swap.
	KindNamespace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOverride:
		return "override"
	case KindNamespace:
		return "namespace"
	default:
		return "plain"
	}
}

// Request is a module request. It is a value: rewriting returns a new
// Request and never mutates shared state.
type Request struct {
	// Kind is the request variant.
	Kind Kind

	// Specifier is the current specifier string.
	Specifier string

	// Token is the part after the marker for KindOverride, e.g. "components/widget".
	Token string

	// ImporterDir is the directory of the importing module.
	ImporterDir string

	// Original is the specifier as first received.
	Original string

	// RewrittenBy names the rewriter that last replaced the specifier.
	RewrittenBy string
}

// Rewritten returns a copy of r with a new specifier. The result is
// plain: once rewritten, a request is a concrete path or package.
func (r Request) Rewritten(by, specifier string) Request {
	r.Kind = KindPlain
	r.Specifier = specifier
	r.Token = ""
	r.RewrittenBy = by
	return r
}

// Changed reports whether any rewriter replaced the specifier.
func (r Request) Changed() bool {
	return r.Specifier != r.Original
}

// Conventions holds the reserved prefixes used to classify specifiers.
type Conventions struct {
	// Marker is the override sentinel, e.g. "__FALLBACK__".
	Marker string

	// Namespace is the library package scope, e.g. "@factor".
	Namespace string
}

// Validate checks that both prefixes are usable.
func (c Conventions) Validate() error {
	if c.Marker == "" {
		return fmt.Errorf("%w: empty marker", ErrInvalidConventions)
	}
	if strings.ContainsAny(c.Marker, "/\\") {
		return fmt.Errorf("%w: marker %q must not contain path separators", ErrInvalidConventions, c.Marker)
	}
	if c.Namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidConventions)
	}
	return nil
}

// Classify builds a Request from a raw specifier. The token is whatever
// follows the marker with leading slashes dropped, so "__FALLBACK__foo"
// and "__FALLBACK__/foo" name the same override.
func (c Conventions) Classify(specifier, importerDir string) Request {
	r := Request{
		Kind:        KindPlain,
		Specifier:   specifier,
		ImporterDir: importerDir,
		Original:    specifier,
	}

	if rest, ok := strings.CutPrefix(specifier, c.Marker); ok && c.Marker != "" {
		r.Kind = KindOverride
		r.Token = strings.TrimLeft(rest, "/")
		return r
	}

	if c.InNamespace(specifier) {
		r.Kind = KindNamespace
	}
	return r
}

// InNamespace reports whether specifier names a package in the library
// namespace. The namespace must match a whole path segment, so "@factorx/y"
// is not in "@factor".
func (c Conventions) InNamespace(specifier string) bool {
	if c.Namespace == "" {
		return false
	}
	rest, ok := strings.CutPrefix(specifier, c.Namespace)
	return ok && (rest == "" || strings.HasPrefix(rest, "/"))
}
