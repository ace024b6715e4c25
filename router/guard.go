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

import "context"

// Guard validates or enriches a request before it reaches a handler. A
// Guard may return a modified Request to pass along the chain, or a
// non-nil Responder to short-circuit the chain with that response; the
// handler and any remaining guards are then skipped.
type Guard func(ctx context.Context, req *Request) (*Request, Responder)

// GuardChain is an ordered, per-endpoint sequence of Guards evaluated in
// registration order. The chain stops at the first Guard that returns a
// non-nil Responder.
type GuardChain struct {
	guards []Guard
}

// NewGuardChain builds a chain from the given guards, evaluated in order.
func NewGuardChain(guards ...Guard) *GuardChain {
	return &GuardChain{guards: append([]Guard(nil), guards...)}
}

// Append returns a new chain with g appended after the receiver's guards,
// leaving the receiver unmodified.
func (c *GuardChain) Append(g Guard) *GuardChain {
	if c == nil {
		return NewGuardChain(g)
	}
	next := make([]Guard, len(c.guards), len(c.guards)+1)
	copy(next, c.guards)
	next = append(next, g)
	return &GuardChain{guards: next}
}

// Run evaluates the chain against req, returning either the (possibly
// modified) request to continue dispatch with, or a short-circuiting
// Responder.
func (c *GuardChain) Run(ctx context.Context, req *Request) (*Request, Responder) {
	if c == nil {
		return req, nil
	}
	for _, g := range c.guards {
		var resp Responder
		req, resp = g(ctx, req)
		if resp != nil {
			return req, resp
		}
	}
	return req, nil
}

// Len reports the number of guards in the chain.
func (c *GuardChain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.guards)
}
