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
	"net/http"
	"sort"
	"sync"
	"sync/atomic"

	"rivaas.dev/saphir/pathmatch"
)

// HandlerFunc is a terminal request handler. It returns any value; the
// dispatcher converts the result into a response via Respond.
type HandlerFunc func(ctx context.Context, req *Request) any

// EndpointEntry is one registered route: a compiled path template, the
// set of HTTP methods it answers, its guard chain, and its handler.
// Entries are matched in registration order; the first entry whose
// template matches the request path wins, regardless of how many later
// entries would also match.
type EndpointEntry struct {
	id      uint64
	matcher *pathmatch.PathMatcher
	methods map[string]bool
	guards  *GuardChain
	handler HandlerFunc
}

// Template returns the path template the entry was registered with.
func (e *EndpointEntry) Template() string { return e.matcher.Template() }

// Resolution is the outcome of resolving a request against the router.
type Resolution struct {
	Entry    *EndpointEntry
	Captures map[string]string
}

// Router holds an ordered list of endpoints and resolves incoming
// requests against them using first-match-wins, registration-order
// semantics — a deliberate departure from prefix-tree or hashed dispatch,
// so that overlapping templates resolve the same way a human reading the
// registration order would expect.
type Router struct {
	mu      sync.RWMutex
	entries []*EndpointEntry
	nextID  atomic.Uint64
}

// New returns an empty Router.
func New() *Router {
	return &Router{}
}

// Handle registers a handler for the given methods and path template. A
// guard chain, if non-nil, runs before handler on every matched request.
func (r *Router) Handle(template string, methods []string, guards *GuardChain, handler HandlerFunc) (*EndpointEntry, error) {
	matcher, err := pathmatch.Compile(template)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(methods)+1)
	for _, m := range methods {
		set[m] = true
	}
	set["OPTIONS"] = true

	entry := &EndpointEntry{
		id:      r.nextID.Add(1),
		matcher: matcher,
		methods: set,
		guards:  guards,
		handler: handler,
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return entry, nil
}

// Resolve matches req's path and method against the registered entries in
// registration order. It returns ErrNotFound if no entry's path matches,
// or ErrMethodNotAllowed (with allowed methods available via AllowedMethods)
// if a path matched but the method didn't.
func (r *Router) Resolve(req *Request) (*Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pathMatched := false
	for _, entry := range r.entries {
		captures, ok := entry.matcher.Match(req.Path())
		if !ok {
			continue
		}
		pathMatched = true
		if entry.methods[req.Method()] {
			return &Resolution{Entry: entry, Captures: captures}, nil
		}
	}
	if pathMatched {
		return nil, ErrMethodNotAllowed
	}
	return nil, ErrNotFound
}

// AllowedMethods returns the sorted, de-duplicated union of HTTP methods
// across every entry whose path matches the given path. It is used to
// populate the Allow header on a 405 response, and includes OPTIONS
// automatically since every matched path implicitly answers it.
func (r *Router) AllowedMethods(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := map[string]bool{}
	for _, entry := range r.entries {
		if _, ok := entry.matcher.Match(path); !ok {
			continue
		}
		for m := range entry.methods {
			set[m] = true
		}
		set["OPTIONS"] = true
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs req through the matched entry's guard chain and handler,
// converting the result to a Response via Respond. The caller is
// responsible for resolving req to a Resolution first; Dispatch stamps
// the resolution's captures onto req.
func (r *Router) Dispatch(ctx context.Context, res *Resolution, req *Request) *Response {
	req.setCaptures(res.Captures)

	if res.Entry.guards != nil {
		var short Responder
		req, short = res.Entry.guards.Run(ctx, req)
		if short != nil {
			resp, err := short.RespondWithBuilder(NewResponseBuilder()).Build()
			if err != nil {
				return errorResponse(err)
			}
			return resp
		}
	}

	result := res.Entry.handler(ctx, req)
	resp, err := Respond(result).Build()
	if err != nil {
		return errorResponse(err)
	}
	return resp
}

func errorResponse(err error) *Response {
	b := NewResponseBuilder().Status(http.StatusInternalServerError).Body(stringsReader(err.Error()), "text/plain; charset=utf-8")
	resp, buildErr := b.Build()
	if buildErr != nil {
		return &Response{Status: http.StatusInternalServerError, Header: make(http.Header)}
	}
	return resp
}
