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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		path     string
		wantOK   bool
		wantCaps map[string]string
	}{
		{"literal exact", "/a/b", "/a/b", true, map[string]string{}},
		{"literal trailing slash", "/a/b", "/a/b/", true, map[string]string{}},
		{"literal mismatch", "/a/b", "/a/c", false, nil},
		{"literal wrong length", "/a/b", "/a/b/c", false, nil},
		{"named capture", "/user/{id}", "/user/42", true, map[string]string{"id": "42"}},
		{"angle capture", "/user/<id>", "/user/42", true, map[string]string{"id": "42"}},
		{"non-capturing underscore", "/user/{_id}", "/user/42", true, map[string]string{}},
		{"non-capturing empty", "/user/{}", "/user/42", true, map[string]string{}},
		{"named rejects empty segment", "/user/{id}", "/user/", false, nil},
		{"pattern match", "/user/{id#r([0-9]+)}", "/user/42", true, map[string]string{"id": "42"}},
		{"pattern mismatch", "/user/{id#r([0-9]+)}", "/user/abc", false, nil},
		{"single wildcard", "/files/*/raw", "/files/anything/raw", true, map[string]string{}},
		{"multi wildcard matches zero", "/files/**", "/files", true, map[string]string{}},
		{"multi wildcard matches many", "/files/**", "/files/a/b/c", true, map[string]string{}},
		{"multi wildcard with prefix literal", "/static/**", "/static/css/app.css", true, map[string]string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := Compile(tt.template)
			require.NoError(t, err)

			caps, ok := m.Match(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCaps, caps)
			} else {
				assert.Nil(t, caps)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
	}{
		{"non-terminal multi wildcard", "/a/**/b"},
		{"duplicate capture name", "/{id}/{id}"},
		{"invalid regex", "/user/{id#r([)}"},
		{"unterminated regex", "/user/{id#r(abc}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compile(tt.template)
			require.Error(t, err)
			var invalid *InvalidTemplateError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestMatchDeterministic(t *testing.T) {
	t.Parallel()
	m, err := Compile("/a/{b}/c")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		caps, ok := m.Match("/a/x/c")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"b": "x"}, caps)
	}
}

func TestNoCaptureOnMismatchLeavesNoPartialState(t *testing.T) {
	t.Parallel()
	m, err := Compile("/{a}/{b}/literal")
	require.NoError(t, err)

	caps, ok := m.Match("/x/y/mismatch")
	assert.False(t, ok)
	assert.Nil(t, caps)
}
