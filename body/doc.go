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

// Package body implements the lazily-consumable typed wrapper over an
// incoming byte stream described by the request pipeline's Body
// abstraction: a Body can be taken raw exactly once, or accumulated and
// decoded into a typed value through one of the package's Decoder
// functions (Bytes, String, JSON, Form, Multipart).
package body
