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

// Package cookie implements the request/response cookie jar: parsing an
// incoming Cookie header lazily, and serializing outgoing cookies into
// Set-Cookie headers exactly once, at wire-emission time.
package cookie

import (
	"net/http"
)

// Jar holds the cookies attached to a request or a response. The zero
// value is an empty, ready-to-use Jar.
type Jar struct {
	cookies map[string]*http.Cookie
}

// NewJar returns an empty Jar.
func NewJar() *Jar {
	return &Jar{cookies: make(map[string]*http.Cookie)}
}

// ParseRequestHeader parses the value of an incoming Cookie header into a
// Jar. Malformed pairs are skipped, mirroring net/http's own leniency.
func ParseRequestHeader(header string) *Jar {
	j := NewJar()
	if header == "" {
		return j
	}
	req := &http.Request{Header: http.Header{"Cookie": {header}}}
	for _, c := range req.Cookies() {
		j.Add(c)
	}
	return j
}

// Add inserts or replaces a cookie by name.
func (j *Jar) Add(c *http.Cookie) {
	if j.cookies == nil {
		j.cookies = make(map[string]*http.Cookie)
	}
	j.cookies[c.Name] = c
}

// Get returns the cookie with the given name, or nil if absent.
func (j *Jar) Get(name string) *http.Cookie {
	if j == nil {
		return nil
	}
	return j.cookies[name]
}

// All returns every cookie in the jar. Order is not guaranteed.
func (j *Jar) All() []*http.Cookie {
	if j == nil {
		return nil
	}
	out := make([]*http.Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		out = append(out, c)
	}
	return out
}

// WriteSetCookieHeaders appends one Set-Cookie header per cookie in the jar
// to h. Called exactly once, at wire-emission time.
func (j *Jar) WriteSetCookieHeaders(h http.Header) {
	if j == nil {
		return
	}
	for _, c := range j.cookies {
		h.Add("Set-Cookie", c.String())
	}
}
