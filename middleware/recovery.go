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
	"log/slog"
	"net/http"
	"runtime/debug"

	"rivaas.dev/saphir/router"
)

// recoveryConfig configures Recovery.
type recoveryConfig struct {
	stackTrace bool
	logger     *slog.Logger
}

// RecoveryOption configures Recovery.
type RecoveryOption func(*recoveryConfig)

func defaultRecoveryConfig() *recoveryConfig {
	return &recoveryConfig{stackTrace: true, logger: slog.Default()}
}

// WithStackTrace enables or disables stack trace logging on panic.
// Default: true.
func WithStackTrace(enabled bool) RecoveryOption {
	return func(c *recoveryConfig) { c.stackTrace = enabled }
}

// WithRecoveryLogger overrides the logger used to report recovered panics.
func WithRecoveryLogger(logger *slog.Logger) RecoveryOption {
	return func(c *recoveryConfig) { c.logger = logger }
}

// Recovery converts a panicking guard/handler into a 500 response instead
// of crashing the request's goroutine. SafeDispatch already recovers
// panics inside the handler boundary itself; this middleware additionally
// guards the rest of the chain (other middlewares ahead of it, and the
// routing/guard resolution that runs in the terminal handler).
func Recovery(opts ...RecoveryOption) router.Middleware {
	cfg := defaultRecoveryConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return func(ctx context.Context, req *router.Request, next router.Next) (resp *router.Response) {
		defer func() {
			if r := recover(); r != nil {
				if cfg.logger != nil {
					attrs := []any{slog.Any("panic", r)}
					if cfg.stackTrace {
						attrs = append(attrs, slog.String("stack", string(debug.Stack())))
					}
					cfg.logger.Error("middleware panic recovered", attrs...)
				}
				resp = &router.Response{Status: http.StatusInternalServerError}
			}
		}()
		return next(ctx, req)
	}
}
