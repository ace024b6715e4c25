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
	"errors"
	"fmt"
)

// Static sentinel errors for the body subsystem. Wrap with fmt.Errorf and
// %w when additional context is needed.
var (
	// ErrBodyAlreadyTaken is returned by Take/TakeAs when the body was
	// already consumed by a previous call.
	ErrBodyAlreadyTaken = errors.New("body: already taken")

	// ErrMultipartNotDeclared is returned by Multipart when the request did
	// not declare a multipart/form-data content type.
	ErrMultipartNotDeclared = errors.New("body: content type is not multipart/form-data")
)

// TooLargeError is returned when accumulating the body would exceed the
// configured byte limit. The connection is closed by the driver after this
// error is surfaced.
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("body: exceeds limit of %d bytes", e.Limit)
}
