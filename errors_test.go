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

package saphir

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForErrorMapsKinds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		kind ErrorKind
		want int
	}{
		{KindTransport, http.StatusBadRequest},
		{KindProtocolDecode, http.StatusBadRequest},
		{KindResourceLimit, http.StatusRequestEntityTooLarge},
		{KindTimeout, http.StatusRequestTimeout},
		{KindRouting, http.StatusNotFound},
		{KindApplication, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		err := NewPipelineError(tc.kind, errors.New("x"))
		assert.Equal(t, tc.want, statusForError(err))
	}
}

func TestStatusForErrorUnclassifiedIsInternal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("plain")))
}

func TestPipelineErrorUnwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("root cause")
	err := NewPipelineError(KindApplication, cause)
	assert.ErrorIs(t, err, cause)
}
