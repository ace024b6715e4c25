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

package pathmatch

import (
	"regexp"
	"strings"
)

// PathMatcher is a compiled path template. It is immutable once returned
// from Compile and safe for concurrent use by multiple goroutines.
type PathMatcher struct {
	template    string
	segments    []Segment
	hasMultiEnd bool
}

// Template returns the original template string this matcher was compiled from.
func (m *PathMatcher) Template() string {
	return m.template
}

// HasMultiWildcard reports whether the template ends in "**".
func (m *PathMatcher) HasMultiWildcard() bool {
	return m.hasMultiEnd
}

// Compile parses a template string into an ordered sequence of segment
// matchers. See the package doc for the template grammar.
func Compile(template string) (*PathMatcher, error) {
	tokens := splitPath(template)

	segments := make([]Segment, 0, len(tokens))
	names := make(map[string]struct{})

	for i, tok := range tokens {
		if tok == "**" {
			if i != len(tokens)-1 {
				return nil, newInvalidTemplate(template, "** must be the terminal token")
			}
			segments = append(segments, Segment{Kind: WildcardMulti})
			continue
		}
		if tok == "*" {
			segments = append(segments, Segment{Kind: WildcardSingle})
			continue
		}

		seg, err := parseToken(template, tok)
		if err != nil {
			return nil, err
		}
		if seg.captures() {
			if _, dup := names[seg.Name]; dup {
				return nil, newInvalidTemplate(template, "duplicate capture name "+seg.Name)
			}
			names[seg.Name] = struct{}{}
		}
		segments = append(segments, seg)
	}

	m := &PathMatcher{template: template, segments: segments}
	for _, s := range segments {
		if s.Kind == WildcardMulti {
			m.hasMultiEnd = true
		}
	}
	return m, nil
}

// parseToken compiles a single non-wildcard template token into a Segment.
func parseToken(template, tok string) (Segment, error) {
	switch {
	case strings.HasPrefix(tok, "{"):
		if !strings.HasSuffix(tok, "}") {
			return Segment{}, newInvalidTemplate(template, "segment contains '/'")
		}
		return parseBraced(template, tok[1:len(tok)-1])
	case strings.HasPrefix(tok, "<"):
		if !strings.HasSuffix(tok, ">") {
			return Segment{}, newInvalidTemplate(template, "segment contains '/'")
		}
		return Segment{Kind: Named, Name: tok[1 : len(tok)-1]}, nil
	default:
		return Segment{Kind: Literal, Literal: tok}, nil
	}
}

// parseBraced parses the inside of a "{...}" token, which is either a bare
// capture name or "name#r(regex)".
func parseBraced(template, inner string) (Segment, error) {
	idx := strings.Index(inner, "#r(")
	if idx < 0 {
		return Segment{Kind: Named, Name: inner}, nil
	}
	if !strings.HasSuffix(inner, ")") {
		return Segment{}, newInvalidTemplate(template, "unterminated regex constraint")
	}
	name := inner[:idx]
	src := inner[idx+len("#r(") : len(inner)-1]

	anchored := src
	if !strings.HasPrefix(anchored, "^") {
		anchored = "^" + anchored
	}
	if !strings.HasSuffix(anchored, "$") {
		anchored += "$"
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		return Segment{}, newInvalidTemplate(template, "invalid regex: "+err.Error())
	}
	return Segment{Kind: Pattern, Name: name, Regex: re}, nil
}

// Match attempts to match path against the compiled template. On success it
// returns the captured name/value pairs (possibly empty) and true. On
// failure it returns (nil, false); no partial captures are retained.
func (m *PathMatcher) Match(path string) (map[string]string, bool) {
	pathSegs := splitPath(path)

	if !m.hasMultiEnd && len(pathSegs) != len(m.segments) {
		return nil, false
	}
	if m.hasMultiEnd && len(pathSegs) < len(m.segments)-1 {
		return nil, false
	}

	var captures map[string]string

	for i, seg := range m.segments {
		if seg.Kind == WildcardMulti {
			// Terminal: absorbs every remaining path segment unconditionally.
			return nonNilCaptures(captures), true
		}
		if i >= len(pathSegs) {
			return nil, false
		}
		ps := pathSegs[i]

		switch seg.Kind {
		case Literal:
			if ps != seg.Literal {
				return nil, false
			}
		case WildcardSingle:
			if ps == "" {
				return nil, false
			}
		case Named:
			if ps == "" {
				return nil, false
			}
			if seg.captures() {
				if captures == nil {
					captures = make(map[string]string)
				}
				captures[seg.Name] = ps
			}
		case Pattern:
			if ps == "" || !seg.Regex.MatchString(ps) {
				return nil, false
			}
			if seg.captures() {
				if captures == nil {
					captures = make(map[string]string)
				}
				captures[seg.Name] = ps
			}
		}
	}

	return nonNilCaptures(captures), true
}

func nonNilCaptures(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// splitPath splits a path on '/', discarding empty leading/trailing elements.
// "/a/b/" and "/a/b" both yield ["a", "b"].
func splitPath(s string) []string {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
