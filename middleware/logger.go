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
	"time"

	"rivaas.dev/saphir/router"
)

// loggerConfig configures Logger.
type loggerConfig struct {
	logger *slog.Logger
}

// LoggerOption configures Logger.
type LoggerOption func(*loggerConfig)

func defaultLoggerConfig() *loggerConfig {
	return &loggerConfig{logger: slog.Default()}
}

// WithLogger overrides the logger Logger writes access records to.
func WithLogger(logger *slog.Logger) LoggerOption {
	return func(c *loggerConfig) { c.logger = logger }
}

// Logger writes one structured access record per request: method, path,
// status, and elapsed time.
func Logger(opts ...LoggerOption) router.Middleware {
	cfg := defaultLoggerConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return func(ctx context.Context, req *router.Request, next router.Next) *router.Response {
		start := time.Now()
		resp := next(ctx, req)

		status := 0
		if resp != nil {
			status = resp.Status
		}
		cfg.logger.Info("request",
			slog.String("method", req.Method()),
			slog.String("path", req.Path()),
			slog.Int("status", status),
			slog.Duration("elapsed", time.Since(start)),
		)
		return resp
	}
}
