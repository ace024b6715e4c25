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
	"io"
	"net/http"

	"rivaas.dev/saphir/cookie"
)

// Response is the fully-built wire response: status, headers, an optional
// streaming body, and cookies to be serialized at emission time.
type Response struct {
	Status int
	Header http.Header
	Body   io.Reader
	Cookie *cookie.Jar
}

// ResponseBuilder accumulates mutations to an in-flight response. It is
// returned by Responder implementations and by guard/middleware
// short-circuits; Build consumes it into a final Response or reports the
// first error any mutator recorded.
//
// A ResponseBuilder is not safe for concurrent use; it is expected to be
// owned by a single goroutine driving one request.
type ResponseBuilder struct {
	status    int
	header    http.Header
	body      io.Reader
	bodySet   bool
	cookieJar *cookie.Jar
	err       error
}

// NewResponseBuilder returns a builder defaulted to 200 OK with no body.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{status: http.StatusOK, header: make(http.Header)}
}

// Status sets the response status code.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.status = code
	return b
}

// Header sets a response header, validating that neither the name nor the
// value contains characters that would corrupt the wire format. An invalid
// header records ErrBuilderHeaderInvalid without panicking; Build surfaces it.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	if !validHeaderName(name) || !validHeaderValue(value) {
		b.err = ErrBuilderHeaderInvalid
		return b
	}
	b.header.Set(name, value)
	return b
}

// Cookie attaches a cookie to be written as a Set-Cookie header at
// emission time.
func (b *ResponseBuilder) Cookie(c *http.Cookie) *ResponseBuilder {
	if b.cookieJar == nil {
		b.cookieJar = cookie.NewJar()
	}
	b.cookieJar.Add(c)
	return b
}

// Body sets the response body stream and its Content-Type. Calling Body
// more than once records ErrBuilderBodyConflict; Build surfaces it.
func (b *ResponseBuilder) Body(r io.Reader, contentType string) *ResponseBuilder {
	if b.err != nil {
		return b
	}
	if b.bodySet {
		b.err = ErrBuilderBodyConflict
		return b
	}
	b.body = r
	b.bodySet = true
	if contentType != "" {
		b.header.Set("Content-Type", contentType)
	}
	return b
}

// Build consumes the builder into a final Response, or returns the first
// error recorded by a mutator.
func (b *ResponseBuilder) Build() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Response{
		Status: b.status,
		Header: b.header,
		Body:   b.body,
		Cookie: b.cookieJar,
	}, nil
}

func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if c <= ' ' || c == ':' || c == 127 {
			return false
		}
	}
	return true
}

func validHeaderValue(value string) bool {
	for _, c := range value {
		if c == '\r' || c == '\n' {
			return false
		}
	}
	return true
}
