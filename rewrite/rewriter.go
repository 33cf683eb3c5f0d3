/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package rewrite implements the module replacement rules applied to every
// request the bundler resolves: a static dependency redirect, the override
// resolver for marker specifiers, and the browser-variant swap for modules
// in the library namespace.
package rewrite

import (
	"factor.dev/overrides/internal/logger"
	"factor.dev/overrides/request"
)

// Rewriter inspects a request and may replace its specifier.
// Rewriters never fail: a request they cannot improve is returned as is.
type Rewriter interface {
	// Name identifies the rewriter in logs and traces.
	Name() string

	// Rewrite returns the request, possibly with a new specifier.
	Rewrite(req request.Request) request.Request
}

// Chain applies rewriters in order.
type Chain struct {
	rewriters []Rewriter
}

// NewChain creates a chain that runs each rewriter in order.
func NewChain(rewriters ...Rewriter) *Chain {
	return &Chain{rewriters: rewriters}
}

// Apply passes req through every rewriter in order.
func (c *Chain) Apply(req request.Request) request.Request {
	for _, r := range c.rewriters {
		before := req.Specifier
		req = r.Rewrite(req)
		if req.Specifier != before {
			logger.Debug("rewrote module request",
				"rewriter", r.Name(),
				"from", before,
				"to", req.Specifier,
				"importer", req.ImporterDir)
		}
	}
	return req
}
