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
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
)

// Multipart decodes the accumulated bytes as a streaming multipart/form-data
// body, returning a *multipart.Reader positioned at the first part. Use as
// body.TakeAs(ctx, b, body.Multipart).
func Multipart(data []byte, contentType string) (*multipart.Reader, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMultipartNotDeclared, err)
	}
	if mediaType != "multipart/form-data" {
		return nil, ErrMultipartNotDeclared
	}
	boundary, ok := params["boundary"]
	if !ok || boundary == "" {
		return nil, ErrMultipartNotDeclared
	}
	return multipart.NewReader(bytes.NewReader(data), boundary), nil
}
