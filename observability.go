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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ObservabilityRecorder is notified of each request's outcome. Install a
// custom implementation via WithObservabilityRecorder; the default is a
// no-op.
type ObservabilityRecorder interface {
	// RecordRequest is called once per request after the response has
	// been written, with the matched path template (or "" if unmatched),
	// method, resulting status, and the time spent in the pipeline.
	RecordRequest(method, template string, status int, elapsed time.Duration)
}

type noopRecorder struct{}

// RecordRequest does nothing.
func (noopRecorder) RecordRequest(string, string, int, time.Duration) {}

// PrometheusRecorder implements ObservabilityRecorder on top of
// client_golang, exposing a request counter and a latency histogram
// labeled by method, path template, and status.
type PrometheusRecorder struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheusRecorder registers its metrics with reg and returns a
// ready-to-use recorder.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saphir_requests_total",
			Help: "Total requests handled by the pipeline driver.",
		}, []string{"method", "template", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "saphir_request_duration_seconds",
			Help:    "Pipeline traversal latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "template"}),
	}
	reg.MustRegister(r.requests, r.latency)
	return r
}

// RecordRequest records the outcome against both vectors.
func (r *PrometheusRecorder) RecordRequest(method, template string, status int, elapsed time.Duration) {
	statusLabel := statusBucket(status)
	r.requests.WithLabelValues(method, template, statusLabel).Inc()
	r.latency.WithLabelValues(method, template).Observe(elapsed.Seconds())
}

func statusBucket(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
