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

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/saphir/body"
)

func bodyString(t *testing.T, resp *Response) string {
	t.Helper()
	if resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestRespondBareInt(t *testing.T) {
	t.Parallel()
	resp, err := Respond(http.StatusTeapot).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status)
}

func TestRespondString(t *testing.T) {
	t.Parallel()
	resp, err := Respond("hello").Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "hello", bodyString(t, resp))
}

func TestRespondStatusBodyTuple(t *testing.T) {
	t.Parallel()
	resp, err := Respond(Status(http.StatusCreated, "ok")).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "ok", bodyString(t, resp))
}

func TestRespondOptionNoneIs404(t *testing.T) {
	t.Parallel()
	resp, err := Respond(None()).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestRespondOptionSomeDelegates(t *testing.T) {
	t.Parallel()
	resp, err := Respond(Some("found")).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "found", bodyString(t, resp))
}

func TestRespondResultErrIs500(t *testing.T) {
	t.Parallel()
	resp, err := Respond(Err(errors.New("boom"))).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "boom", bodyString(t, resp))
}

func TestRespondResultOkDelegates(t *testing.T) {
	t.Parallel()
	resp, err := Respond(Ok(42)).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "42", bodyString(t, resp))
}

func TestRespondJSONWrapper(t *testing.T) {
	t.Parallel()
	resp, err := Respond(JSON(map[string]int{"a": 1})).Build()
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, bodyString(t, resp))
}

func TestRespondFallsBackToJSON(t *testing.T) {
	t.Parallel()
	type payload struct {
		Name string `json:"name"`
	}
	resp, err := Respond(payload{Name: "x"}).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"name":"x"}`, bodyString(t, resp))
}

func TestRespondNilIsNoContent(t *testing.T) {
	t.Parallel()
	resp, err := Respond(nil).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
}

func TestRespondBareErrorIs500(t *testing.T) {
	t.Parallel()
	resp, err := Respond(errors.New("boom")).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "boom", bodyString(t, resp))
}

func TestRespondBodyTooLargeIs413(t *testing.T) {
	t.Parallel()
	resp, err := Respond(&body.TooLargeError{Limit: 1024}).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Status)
}

func TestRespondRedirect(t *testing.T) {
	t.Parallel()
	resp, err := Respond(Redirect(http.StatusFound, "/login")).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRespondCustomResponder(t *testing.T) {
	t.Parallel()
	custom := ResponderFunc(func(b *ResponseBuilder) *ResponseBuilder {
		return b.Status(http.StatusAccepted).Header("X-Custom", "1")
	})
	resp, err := Respond(custom).Build()
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "1", resp.Header.Get("X-Custom"))
}
