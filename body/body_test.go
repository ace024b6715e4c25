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

package body

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeThenTakeAsFails(t *testing.T) {
	t.Parallel()
	b := New(io.NopCloser(strings.NewReader("hello")), "text/plain", 0)

	_, err := b.Take()
	require.NoError(t, err)

	_, err = TakeAs(context.Background(), b, String)
	assert.ErrorIs(t, err, ErrBodyAlreadyTaken)
}

func TestTakeAsThenTakeAsFails(t *testing.T) {
	t.Parallel()
	b := New(io.NopCloser(strings.NewReader("hello")), "text/plain", 0)

	v, err := TakeAs(context.Background(), b, String)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = TakeAs(context.Background(), b, String)
	assert.ErrorIs(t, err, ErrBodyAlreadyTaken)
}

func TestTakeAsRespectsLimit(t *testing.T) {
	t.Parallel()

	b := New(io.NopCloser(strings.NewReader("abcdefgh")), "text/plain", 8)
	v, err := TakeAs(context.Background(), b, String)
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh", v)

	b2 := New(io.NopCloser(strings.NewReader("abcdefghi")), "text/plain", 8)
	_, err = TakeAs(context.Background(), b2, Bytes)
	require.Error(t, err)
	var tooLarge *TooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, int64(8), tooLarge.Limit)
}

func TestTakeAsJSON(t *testing.T) {
	t.Parallel()
	type payload struct {
		Name string `json:"name"`
	}
	b := New(io.NopCloser(strings.NewReader(`{"name":"rivaas"}`)), "application/json", 0)

	v, err := TakeAs(context.Background(), b, JSON[payload])
	require.NoError(t, err)
	assert.Equal(t, "rivaas", v.Name)
}

func TestTakeAsForm(t *testing.T) {
	t.Parallel()
	type payload struct {
		Name string `form:"name"`
		Age  int    `form:"age"`
	}
	b := New(io.NopCloser(strings.NewReader("name=rivaas&age=3")), "application/x-www-form-urlencoded", 0)

	v, err := TakeAs(context.Background(), b, Form[payload])
	require.NoError(t, err)
	assert.Equal(t, "rivaas", v.Name)
	assert.Equal(t, 3, v.Age)
}

func TestTakeAsCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(io.NopCloser(strings.NewReader("hello")), "text/plain", 0)
	_, err := TakeAs(ctx, b, String)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMultipartRejectsWrongContentType(t *testing.T) {
	t.Parallel()
	b := New(io.NopCloser(strings.NewReader("x")), "application/json", 0)

	_, err := TakeAs(context.Background(), b, Multipart)
	assert.ErrorIs(t, err, ErrMultipartNotDeclared)
}
