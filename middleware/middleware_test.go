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
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/saphir/router"
)

func newReq(method, path string) *router.Request {
	return router.NewRequest(&router.RequestHead{
		Method: method,
		URI:    &url.URL{Path: path},
		Header: make(http.Header),
	}, nil, nil)
}

func okNext(ctx context.Context, req *router.Request) *router.Response {
	return &router.Response{Status: http.StatusOK}
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	t.Parallel()
	mw := RequestID(WithUUIDGenerator(func() string { return "fixed-id" }))

	resp := mw(context.Background(), newReq("GET", "/x"), okNext)
	require.NotNil(t, resp)
	assert.Equal(t, "fixed-id", resp.Header.Get("X-Request-ID"))
}

func TestRequestIDHonorsClientSuppliedID(t *testing.T) {
	t.Parallel()
	mw := RequestID(WithAllowClientID(true))
	req := newReq("GET", "/x")
	req.Head.Header.Set("X-Request-ID", "client-supplied")

	resp := mw(context.Background(), req, okNext)
	assert.Equal(t, "client-supplied", resp.Header.Get("X-Request-ID"))
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	t.Parallel()
	mw := Recovery()
	panicking := func(ctx context.Context, req *router.Request) *router.Response {
		panic("boom")
	}

	resp := mw(context.Background(), newReq("GET", "/x"), panicking)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	t.Parallel()
	mw := CORS(WithAllowOrigins("https://example.com"))
	req := newReq("OPTIONS", "/x")
	req.Head.Header.Set("Origin", "https://example.com")

	called := false
	resp := mw(context.Background(), req, func(ctx context.Context, req *router.Request) *router.Response {
		called = true
		return &router.Response{Status: http.StatusOK}
	})

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Equal(t, "https://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSAttachesHeaderOnNormalRequest(t *testing.T) {
	t.Parallel()
	mw := CORS()
	resp := mw(context.Background(), newReq("GET", "/x"), okNext)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestTracingPassesThroughResponse(t *testing.T) {
	t.Parallel()
	mw := Tracing(WithServiceName("test-service"))
	req := newReq("GET", "/widgets/7")
	req.Head.Set("request_id", "abc-123")

	resp := mw(context.Background(), req, okNext)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestTracingReportsErrorStatusWithoutPanicking(t *testing.T) {
	t.Parallel()
	mw := Tracing()
	req := newReq("GET", "/x")

	next := func(ctx context.Context, req *router.Request) *router.Response {
		span := trace.SpanFromContext(ctx)
		span.SetAttributes() // exercises the span handed down through context
		return &router.Response{Status: http.StatusInternalServerError}
	}

	resp := mw(context.Background(), req, next)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}
