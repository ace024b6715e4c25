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

import "errors"

// Static sentinel errors for the router package. Wrap with fmt.Errorf and
// %w when additional context is needed.
var (
	// ErrNotFound is returned by Resolve when no endpoint's path matches the request.
	ErrNotFound = errors.New("router: no route matches path")

	// ErrMethodNotAllowed is returned by Resolve when an endpoint's path matches
	// but no registered method set includes the request's method.
	ErrMethodNotAllowed = errors.New("router: method not allowed")

	// ErrPipelineReentrancy is the panic value raised when a middleware calls Next more than once.
	ErrPipelineReentrancy = errors.New("router: middleware called next more than once")

	// ErrBuilderHeaderInvalid marks an invalid header name/value set on a ResponseBuilder.
	ErrBuilderHeaderInvalid = errors.New("router: invalid header")

	// ErrBuilderBodyConflict marks an attempt to set a ResponseBuilder's body more than once.
	ErrBuilderBodyConflict = errors.New("router: body already set")
)
