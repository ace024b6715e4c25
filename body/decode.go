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
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Bytes is the identity decoder: it returns the accumulated bytes unchanged.
func Bytes(data []byte, _ string) ([]byte, error) {
	return data, nil
}

// String decodes the accumulated bytes as UTF-8 text.
func String(data []byte, _ string) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("body: invalid utf-8")
	}
	return string(data), nil
}

// JSON decodes the accumulated bytes as a JSON document into T. Use as
// body.TakeAs(ctx, b, body.JSON[MyType]).
func JSON[T any](data []byte, _ string) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("body: json decode: %w", err)
	}
	return v, nil
}
