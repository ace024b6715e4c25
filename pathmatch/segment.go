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

// Kind identifies the variant a compiled Segment belongs to.
type Kind int

const (
	// Literal matches a segment equal to Segment.Literal.
	Literal Kind = iota
	// Named matches any single non-empty segment, optionally capturing it.
	Named
	// Pattern is a Named segment additionally constrained by an anchored regex.
	Pattern
	// WildcardSingle matches exactly one segment, never captured.
	WildcardSingle
	// WildcardMulti matches zero or more remaining segments; only valid as the last segment.
	WildcardMulti
)

// Segment is one compiled token of a path template.
type Segment struct {
	Kind    Kind
	Literal string         // set for Literal
	Name    string         // set for Named/Pattern when capturing; "" means "match, don't capture"
	Regex   *regexp.Regexp // set for Pattern
}

// captures reports whether a successful match of this segment should record a capture.
// A leading underscore or an empty name means "match, do not capture".
func (s Segment) captures() bool {
	if s.Kind != Named && s.Kind != Pattern {
		return false
	}
	return s.Name != "" && !strings.HasPrefix(s.Name, "_")
}
