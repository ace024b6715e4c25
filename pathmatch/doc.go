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

// Package pathmatch compiles path templates into matchers and matches
// request paths against them, producing named captures.
//
// Template grammar (each token is a '/'-separated segment of the template):
//
//   - literal           — matches that exact segment.
//   - {name} or <name>  — matches any single non-empty segment, captured as name.
//     A leading underscore (or empty name) matches without capturing.
//   - {name#r(regex)}   — same as {name}, but the segment must also match the
//     anchored regex.
//   - *                 — single-segment wildcard, not captured.
//   - **                — multi-segment wildcard; matches zero or more
//     remaining segments; must be the last token in the template.
//
// A PathMatcher is immutable once compiled and safe for concurrent use.
package pathmatch
