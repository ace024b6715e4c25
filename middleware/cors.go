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

package middleware

import (
	"context"
	"net/http"
	"strings"

	"rivaas.dev/saphir/router"
)

// corsConfig configures CORS.
type corsConfig struct {
	allowOrigins []string
	allowMethods []string
	allowHeaders []string
}

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

func defaultCORSConfig() *corsConfig {
	return &corsConfig{
		allowOrigins: []string{"*"},
		allowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		allowHeaders: []string{"Content-Type", "Authorization"},
	}
}

// WithAllowOrigins overrides the allowed Origin values. Default: ["*"].
func WithAllowOrigins(origins ...string) CORSOption {
	return func(c *corsConfig) { c.allowOrigins = origins }
}

// WithAllowMethods overrides the allowed methods advertised in preflight responses.
func WithAllowMethods(methods ...string) CORSOption {
	return func(c *corsConfig) { c.allowMethods = methods }
}

// WithAllowHeaders overrides the allowed request headers advertised in preflight responses.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(c *corsConfig) { c.allowHeaders = headers }
}

// CORS attaches cross-origin headers to every response and short-circuits
// OPTIONS preflight requests with a 204.
func CORS(opts ...CORSOption) router.Middleware {
	cfg := defaultCORSConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return func(ctx context.Context, req *router.Request, next router.Next) *router.Response {
		origin := req.Head.Header.Get("Origin")
		allowOrigin := cfg.resolveOrigin(origin)

		if req.Method() == http.MethodOptions {
			h := http.Header{}
			h.Set("Access-Control-Allow-Origin", allowOrigin)
			h.Set("Access-Control-Allow-Methods", strings.Join(cfg.allowMethods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(cfg.allowHeaders, ", "))
			return &router.Response{Status: http.StatusNoContent, Header: h}
		}

		resp := next(ctx, req)
		if resp != nil {
			if resp.Header == nil {
				resp.Header = make(http.Header)
			}
			resp.Header.Set("Access-Control-Allow-Origin", allowOrigin)
		}
		return resp
	}
}

func (c *corsConfig) resolveOrigin(origin string) string {
	for _, o := range c.allowOrigins {
		if o == "*" {
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	if len(c.allowOrigins) > 0 {
		return c.allowOrigins[0]
	}
	return ""
}
