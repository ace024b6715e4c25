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

// Package router implements path-template routing, the per-endpoint guard
// chain, the global middleware chain, and the Responder capability that
// turns ordinary Go values returned from a handler into a wire response.
package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"rivaas.dev/saphir/body"
)

// Responder is the capability a value exposes to become part of a
// response. A handler may return any Responder, and the dispatcher also
// recognizes a closed set of primitive types (see Respond) without
// requiring them to implement this interface themselves.
type Responder interface {
	// RespondWithBuilder applies the value's contribution to b and returns
	// the (possibly same) builder to continue the chain.
	RespondWithBuilder(b *ResponseBuilder) *ResponseBuilder
}

// ResponderFunc adapts a plain function to the Responder interface.
type ResponderFunc func(b *ResponseBuilder) *ResponseBuilder

// RespondWithBuilder calls f.
func (f ResponderFunc) RespondWithBuilder(b *ResponseBuilder) *ResponseBuilder {
	return f(b)
}

// Respond converts v into a ResponseBuilder. It recognizes, in order:
// an existing Responder, a bare int status code, a string or []byte body
// (Content-Type: text/plain), a (status, body) tuple via StatusBody, an
// Option-like value via Option (nil -> 404), a Result-like value via
// Result (error -> 500, or 413 for a *body.TooLargeError), and the typed
// JSON body wrapper.
//
// Anything else is treated as a JSON body with status 200, mirroring the
// original framework's "fall back to serializing the value" behavior.
func Respond(v any) *ResponseBuilder {
	b := NewResponseBuilder()
	return respondInto(b, v)
}

func respondInto(b *ResponseBuilder, v any) *ResponseBuilder {
	switch t := v.(type) {
	case Responder:
		return t.RespondWithBuilder(b)
	case nil:
		return b.Status(http.StatusNoContent)
	case int:
		return b.Status(t)
	case string:
		return b.Status(http.StatusOK).Body(stringsReader(t), "text/plain; charset=utf-8")
	case []byte:
		return b.Status(http.StatusOK).Body(bytesReader(t), "text/plain")
	case StatusBody:
		return respondInto(b.Status(t.Status), t.Body)
	case Option:
		if t.Present {
			return respondInto(b, t.Value)
		}
		return b.Status(http.StatusNotFound)
	case Result:
		if t.Err != nil {
			var tooLarge *body.TooLargeError
			if errors.As(t.Err, &tooLarge) {
				return b.Status(http.StatusRequestEntityTooLarge).
					Body(stringsReader(tooLarge.Error()), "text/plain; charset=utf-8")
			}
			return b.Status(http.StatusInternalServerError).
				Body(stringsReader(t.Err.Error()), "text/plain; charset=utf-8")
		}
		return respondInto(b, t.Value)
	case JSONBody:
		return jsonInto(b, http.StatusOK, t.Value)
	case error:
		return respondInto(b, Err(t))
	default:
		return jsonInto(b, http.StatusOK, v)
	}
}

func jsonInto(b *ResponseBuilder, status int, v any) *ResponseBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		return b.Status(http.StatusInternalServerError).
			Body(stringsReader(err.Error()), "text/plain; charset=utf-8")
	}
	return b.Status(status).Body(bytesReader(data), "application/json")
}

// StatusBody pairs an explicit status code with a body value, recognized
// by Respond as a (status, body) tuple.
type StatusBody struct {
	Status int
	Body   any
}

// Status constructs a StatusBody responder.
func Status(code int, body any) StatusBody {
	return StatusBody{Status: code, Body: body}
}

// Option represents an optional value: Present false responds 404,
// mirroring the original framework's Option<T> responder.
type Option struct {
	Present bool
	Value   any
}

// Some wraps a present value.
func Some(v any) Option { return Option{Present: true, Value: v} }

// None represents an absent value, responding 404.
func None() Option { return Option{} }

// Result represents a fallible operation outcome: a non-nil Err responds
// 500 (413 when Err wraps a *body.TooLargeError) with the error's message
// as the body, mirroring the original framework's Result<T, E> responder.
type Result struct {
	Value any
	Err   error
}

// Ok wraps a successful value.
func Ok(v any) Result { return Result{Value: v} }

// Err wraps a failure.
func Err(err error) Result { return Result{Err: err} }

// JSONBody marks a value to be serialized as a JSON response body with
// status 200, regardless of the default fallback behavior.
type JSONBody struct{ Value any }

// JSON wraps v to be serialized as a JSON response body.
func JSON(v any) JSONBody { return JSONBody{Value: v} }

// Redirect responds with the given status code and a Location header
// pointing at target. code should be a 3xx status; it is not validated.
func Redirect(code int, target string) ResponderFunc {
	return func(b *ResponseBuilder) *ResponseBuilder {
		return b.Status(code).Header("Location", target)
	}
}

func stringsReader(s string) io.Reader { return &stringReaderCloser{s: s} }
func bytesReader(b []byte) io.Reader   { return &bytesReaderCloser{b: b} }

// stringReaderCloser and bytesReaderCloser avoid importing strings/bytes
// just for a Reader; they satisfy io.Reader only, which is all
// ResponseBuilder.Body requires.
type stringReaderCloser struct {
	s   string
	pos int
}

func (r *stringReaderCloser) Read(p []byte) (int, error) {
	if r.pos >= len(r.s) {
		return 0, io.EOF
	}
	n := copy(p, r.s[r.pos:])
	r.pos += n
	return n, nil
}

type bytesReaderCloser struct {
	b   []byte
	pos int
}

func (r *bytesReaderCloser) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}
