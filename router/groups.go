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

import "strings"

// Group organizes related routes under a shared path prefix and a shared
// set of inherited guards. Groups may be nested: a child group's prefix is
// appended to its parent's, and its guards run after its parent's.
//
// Example:
//
//	api := NewGroup(r).Group("/api/v1", authGuard)
//	users := api.Group("/users", rateLimitGuard)
//	users.GET("/{id}", getUser) // final path: /api/v1/users/{id}
type Group struct {
	router *Router
	prefix string
	guards *GuardChain
}

// NewGroup returns the root group of r, with no prefix and no guards.
func NewGroup(r *Router) *Group {
	return &Group{router: r, guards: NewGuardChain()}
}

// Group creates a nested group whose prefix and guards extend the
// receiver's.
func (g *Group) Group(prefix string, guards ...Guard) *Group {
	child := &Group{
		router: g.router,
		prefix: joinPrefix(g.prefix, prefix),
		guards: g.guards,
	}
	for _, guard := range guards {
		child.guards = child.guards.Append(guard)
	}
	return child
}

// Use appends guards to every route subsequently registered on this group.
func (g *Group) Use(guards ...Guard) {
	for _, guard := range guards {
		g.guards = g.guards.Append(guard)
	}
}

// Handle registers a handler on the group for the given methods and
// relative path template.
func (g *Group) Handle(template string, methods []string, handler HandlerFunc) (*EndpointEntry, error) {
	return g.router.Handle(joinPrefix(g.prefix, template), methods, g.guards, handler)
}

// GET registers a GET route on the group.
func (g *Group) GET(template string, handler HandlerFunc) (*EndpointEntry, error) {
	return g.Handle(template, []string{"GET"}, handler)
}

// POST registers a POST route on the group.
func (g *Group) POST(template string, handler HandlerFunc) (*EndpointEntry, error) {
	return g.Handle(template, []string{"POST"}, handler)
}

// PUT registers a PUT route on the group.
func (g *Group) PUT(template string, handler HandlerFunc) (*EndpointEntry, error) {
	return g.Handle(template, []string{"PUT"}, handler)
}

// PATCH registers a PATCH route on the group.
func (g *Group) PATCH(template string, handler HandlerFunc) (*EndpointEntry, error) {
	return g.Handle(template, []string{"PATCH"}, handler)
}

// DELETE registers a DELETE route on the group.
func (g *Group) DELETE(template string, handler HandlerFunc) (*EndpointEntry, error) {
	return g.Handle(template, []string{"DELETE"}, handler)
}

func joinPrefix(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "" {
		return prefix
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}
