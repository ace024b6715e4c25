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
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/saphir/router"
)

// tracingConfig configures Tracing.
type tracingConfig struct {
	tracer         trace.Tracer
	serviceName    string
	serviceVersion string
}

// TracingOption configures Tracing.
type TracingOption func(*tracingConfig)

func defaultTracingConfig() *tracingConfig {
	return &tracingConfig{
		tracer:         otel.Tracer("rivaas.dev/saphir"),
		serviceName:    "saphir",
		serviceVersion: "",
	}
}

// WithTracer overrides the OpenTelemetry tracer used to start spans.
// Default: otel.Tracer("rivaas.dev/saphir").
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *tracingConfig) { c.tracer = tracer }
}

// WithServiceName sets the "service.name" span attribute.
func WithServiceName(name string) TracingOption {
	return func(c *tracingConfig) { c.serviceName = name }
}

// WithServiceVersion sets the "service.version" span attribute.
func WithServiceVersion(version string) TracingOption {
	return func(c *tracingConfig) { c.serviceVersion = version }
}

// Tracing starts one span per request, named "<method> <path>", and
// records the request id stamped by RequestID (when present) and the
// outcome status as attributes.
// It does not extract or inject trace-context headers itself — pair it
// with an otelhttp-style carrier upstream if cross-service propagation is
// needed; this middleware only instruments the pipeline's own traversal.
func Tracing(opts ...TracingOption) router.Middleware {
	cfg := defaultTracingConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return func(ctx context.Context, req *router.Request, next router.Next) *router.Response {
		spanName := fmt.Sprintf("%s %s", req.Method(), req.Path())
		spanCtx, span := cfg.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", req.Method()),
			attribute.String("http.target", req.Path()),
			attribute.String("service.name", cfg.serviceName),
		)
		if cfg.serviceVersion != "" {
			span.SetAttributes(attribute.String("service.version", cfg.serviceVersion))
		}
		if requestID, ok := router.Extension[string](req.Head, "request_id"); ok {
			span.SetAttributes(attribute.String("saphir.request_id", requestID))
		}

		resp := next(spanCtx, req)

		if resp != nil {
			span.SetAttributes(attribute.Int("http.status_code", resp.Status))
			if resp.Status >= 400 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.Status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		}
		return resp
	}
}
