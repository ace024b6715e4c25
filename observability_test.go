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
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderRecordsRequests(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.RecordRequest("GET", "/users/{id}", 200, 15*time.Millisecond)
	rec.RecordRequest("GET", "/users/{id}", 500, 5*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "saphir_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStatusBucket(t *testing.T) {
	t.Parallel()
	cases := map[int]string{100: "1xx", 201: "2xx", 301: "3xx", 404: "4xx", 503: "5xx"}
	for status, want := range cases {
		assert.Equal(t, want, statusBucket(status))
	}
}

func TestNoopRecorderDoesNothing(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		noopRecorder{}.RecordRequest("GET", "/x", 200, time.Millisecond)
	})
}
