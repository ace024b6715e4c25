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

// Package middleware collects built-in MiddlewareChain entries: request
// id stamping, access logging, and panic recovery.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"rivaas.dev/saphir/router"
)

// requestIDConfig configures RequestID.
type requestIDConfig struct {
	header        string
	generator     func() string
	allowClientID bool
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

func defaultRequestIDConfig() *requestIDConfig {
	return &requestIDConfig{
		header:        "X-Request-ID",
		generator:     func() string { return uuid.NewString() },
		allowClientID: true,
	}
}

// WithRequestIDHeader overrides the header name carrying the request id.
// Default: "X-Request-ID".
func WithRequestIDHeader(name string) RequestIDOption {
	return func(c *requestIDConfig) { c.header = name }
}

// WithUUIDGenerator overrides the id-generating function. Default uses
// github.com/google/uuid.
func WithUUIDGenerator(gen func() string) RequestIDOption {
	return func(c *requestIDConfig) { c.generator = gen }
}

// WithAllowClientID controls whether an incoming request's own id header
// is trusted and echoed back, or always overwritten.
func WithAllowClientID(allow bool) RequestIDOption {
	return func(c *requestIDConfig) { c.allowClientID = allow }
}

// RequestID stamps every request with an id, reusing a client-supplied id
// when allowed, and echoes it back on the response header.
func RequestID(opts ...RequestIDOption) router.Middleware {
	cfg := defaultRequestIDConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return func(ctx context.Context, req *router.Request, next router.Next) *router.Response {
		id := ""
		if cfg.allowClientID {
			id = req.Head.Header.Get(cfg.header)
		}
		if id == "" {
			id = cfg.generator()
		}
		req.Head.Set("request_id", id)

		resp := next(ctx, req)
		if resp != nil {
			if resp.Header == nil {
				resp.Header = make(http.Header)
			}
			resp.Header.Set(cfg.header, id)
		}
		return resp
	}
}
