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

// HttpContext carries everything a single request's pass through the
// pipeline accumulates: the request, the operation id that was stamped on
// it, and the Router that resolved it. It has a request slot only; it holds
// no Response, which SafeDispatch returns to its caller directly.
type HttpContext struct {
	OperationID string
	Router      *Router
	Request     *Request
}

// NewHttpContext builds a context for a single request's traversal of the
// pipeline.
func NewHttpContext(opID string, r *Router, req *Request) *HttpContext {
	return &HttpContext{OperationID: opID, Router: r, Request: req}
}
