// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"context"
	"regexp"
	"strings"
)

// Next continues the middleware chain and returns the response produced by
// the rest of the chain (the remaining middlewares, guards, and handler).
// Calling Next more than once from the same middleware invocation panics
// with ErrPipelineReentrancy itself as the panic value; callers that
// want a non-panicking check can compare against a first call by holding
// their own boolean, but the chain itself enforces at-most-once.
type Next func(ctx context.Context, req *Request) *Response

// Middleware wraps the rest of the pipeline. It receives the request and a
// Next it may call zero or one times: zero times to short-circuit with its
// own response, one time to delegate (optionally inspecting or rewriting
// the resulting Response).
type Middleware func(ctx context.Context, req *Request, next Next) *Response

// pathFilter restricts a middleware to a subset of paths via exact
// matches, prefixes, and regexes, evaluated before the body is read.
type pathFilter struct {
	include     map[string]bool
	includePfx  []string
	includePtn  []*regexp.Regexp
	exclude     map[string]bool
	excludePfx  []string
	excludePtn  []*regexp.Regexp
}

func newPathFilter() *pathFilter {
	return &pathFilter{include: make(map[string]bool), exclude: make(map[string]bool)}
}

func (pf *pathFilter) applies(path string) bool {
	if pf == nil {
		return true
	}
	if pf.matchesAny(path, pf.exclude, pf.excludePfx, pf.excludePtn) {
		return false
	}
	if len(pf.include) == 0 && len(pf.includePfx) == 0 && len(pf.includePtn) == 0 {
		return true
	}
	return pf.matchesAny(path, pf.include, pf.includePfx, pf.includePtn)
}

func (pf *pathFilter) matchesAny(path string, exact map[string]bool, prefixes []string, patterns []*regexp.Regexp) bool {
	if exact[path] {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, p := range patterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}

// MiddlewareEntry pairs a Middleware with its path filter.
type MiddlewareEntry struct {
	middleware Middleware
	filter     *pathFilter
}

// MiddlewareOption configures a MiddlewareEntry at registration time.
type MiddlewareOption func(*MiddlewareEntry)

// IncludePaths restricts the middleware to the given exact paths.
func IncludePaths(paths ...string) MiddlewareOption {
	return func(e *MiddlewareEntry) {
		for _, p := range paths {
			e.filter.include[p] = true
		}
	}
}

// IncludePrefixes restricts the middleware to paths with any of the given prefixes.
func IncludePrefixes(prefixes ...string) MiddlewareOption {
	return func(e *MiddlewareEntry) { e.filter.includePfx = append(e.filter.includePfx, prefixes...) }
}

// IncludePatterns restricts the middleware to paths matching any of the given regexes.
func IncludePatterns(patterns ...*regexp.Regexp) MiddlewareOption {
	return func(e *MiddlewareEntry) { e.filter.includePtn = append(e.filter.includePtn, patterns...) }
}

// ExcludePaths exempts the given exact paths from the middleware.
func ExcludePaths(paths ...string) MiddlewareOption {
	return func(e *MiddlewareEntry) {
		for _, p := range paths {
			e.filter.exclude[p] = true
		}
	}
}

// ExcludePrefixes exempts paths with any of the given prefixes from the middleware.
func ExcludePrefixes(prefixes ...string) MiddlewareOption {
	return func(e *MiddlewareEntry) { e.filter.excludePfx = append(e.filter.excludePfx, prefixes...) }
}

// ExcludePatterns exempts paths matching any of the given regexes from the middleware.
func ExcludePatterns(patterns ...*regexp.Regexp) MiddlewareOption {
	return func(e *MiddlewareEntry) { e.filter.excludePtn = append(e.filter.excludePtn, patterns...) }
}

// MiddlewareChain is the global, ordered around-advice chain applied to
// every request that passes its path filter. Middlewares run outermost
// first: the first registered middleware is the outermost wrapper.
type MiddlewareChain struct {
	entries []MiddlewareEntry
}

// NewMiddlewareChain returns an empty chain.
func NewMiddlewareChain() *MiddlewareChain {
	return &MiddlewareChain{}
}

// Use appends a middleware to the chain, applying any options to scope it
// to a subset of paths.
func (c *MiddlewareChain) Use(m Middleware, opts ...MiddlewareOption) {
	e := MiddlewareEntry{middleware: m, filter: newPathFilter()}
	for _, opt := range opts {
		opt(&e)
	}
	c.entries = append(c.entries, e)
}

// Run drives req through every applicable middleware, in registration
// order, finally invoking terminal to produce the response. Each
// middleware invocation gets its own one-shot Next; calling it a second
// time panics with ErrPipelineReentrancy, matching Next's contract.
func (c *MiddlewareChain) Run(ctx context.Context, req *Request, terminal Next) *Response {
	return c.runFrom(0, ctx, req, terminal)
}

func (c *MiddlewareChain) runFrom(idx int, ctx context.Context, req *Request, terminal Next) *Response {
	for idx < len(c.entries) {
		entry := c.entries[idx]
		if !entry.filter.applies(req.Path()) {
			idx++
			continue
		}
		called := false
		var cached *Response
		next := func(nctx context.Context, nreq *Request) *Response {
			if called {
				panic(ErrPipelineReentrancy)
			}
			called = true
			cached = c.runFrom(idx+1, nctx, nreq, terminal)
			return cached
		}
		return entry.middleware(ctx, req, next)
	}
	return terminal(ctx, req)
}
