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

package saphir

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/saphir/router"
)

func TestServeHTTPDispatchesRegisteredRoute(t *testing.T) {
	t.Parallel()
	r := router.New()
	_, err := r.Handle("/hello/{name}", []string{"GET"}, nil, func(ctx context.Context, req *router.Request) any {
		name, _ := req.Param("name")
		return "hello " + name
	})
	require.NoError(t, err)

	s := New(NewConfig(), r, nil)

	req := httptest.NewRequest(http.MethodGet, "/hello/world", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello world", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Operation-Id"))
}

func TestServeHTTPNotFound(t *testing.T) {
	t.Parallel()
	s := New(NewConfig(), router.New(), nil)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTPMethodNotAllowedSetsAllowHeader(t *testing.T) {
	t.Parallel()
	r := router.New()
	_, err := r.Handle("/only-get", []string{"GET"}, nil, func(ctx context.Context, req *router.Request) any { return 200 })
	require.NoError(t, err)
	s := New(NewConfig(), r, nil)

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), "GET")
}

func TestServeHTTPMiddlewareWraps(t *testing.T) {
	t.Parallel()
	r := router.New()
	_, err := r.Handle("/x", []string{"GET"}, nil, func(ctx context.Context, req *router.Request) any { return 200 })
	require.NoError(t, err)

	mw := router.NewMiddlewareChain()
	mw.Use(func(ctx context.Context, req *router.Request, next router.Next) *router.Response {
		resp := next(ctx, req)
		resp.Header.Set("X-Wrapped", "1")
		return resp
	})

	s := New(NewConfig(), r, mw)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "1", rec.Header().Get("X-Wrapped"))
}

func TestInFlightTracksActiveRequests(t *testing.T) {
	t.Parallel()
	r := router.New()
	var s *Server
	var during int64
	_, err := r.Handle("/x", []string{"GET"}, nil, func(ctx context.Context, req *router.Request) any {
		during = s.InFlight()
		return 200
	})
	require.NoError(t, err)
	s = New(NewConfig(), r, nil)
	assert.Equal(t, int64(0), s.InFlight())

	s.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, int64(1), during)
	assert.Equal(t, int64(0), s.InFlight())
}

func TestServeHTTPTimesOutWithoutWaitingForSlowHandler(t *testing.T) {
	t.Parallel()
	r := router.New()
	_, err := r.Handle("/slow", []string{"GET"}, nil, func(ctx context.Context, req *router.Request) any {
		time.Sleep(5 * time.Second)
		return 200
	})
	require.NoError(t, err)

	cfg := NewConfig(WithRequestTimeout(50 * time.Millisecond))
	s := New(cfg, r, nil)

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	rec := httptest.NewRecorder()

	start := time.Now()
	s.ServeHTTP(rec, req)
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	assert.Less(t, elapsed, 1*time.Second, "timeout should fire without waiting for the slow handler")
}
