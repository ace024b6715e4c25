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

// Package saphir wires a Router, a MiddlewareChain, and a per-request
// PipelineDriver into a runnable HTTP server: operation id stamping,
// request timeouts, body-size limits, graceful drain on shutdown, and
// error-to-wire-response mapping.
package saphir

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// serverTimeouts mirrors the underlying net/http.Server's timeout knobs.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// Config holds the assembled options for a Server. Build one with NewConfig
// and a set of Options, for example those returned by config.File.Options.
type Config struct {
	addr string

	enableH2C      bool
	serverTimeouts *serverTimeouts
	tlsConfig      *tls.Config

	requestTimeout  time.Duration
	maxBodyBytes    int64
	drainGrace      time.Duration
	serverEpoch     uint32
	serverName      string
	logger          *slog.Logger
	recorder        ObservabilityRecorder
}

// Option configures a Config. Options compose via functional application,
// matching the rest of the ecosystem's With... naming.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		serverTimeouts: defaultServerTimeouts(),
		requestTimeout: 30 * time.Second,
		maxBodyBytes:   10 << 20, // 10MiB
		drainGrace:     15 * time.Second,
		serverName:     "Saphir",
		logger:         slog.Default(),
		recorder:       noopRecorder{},
	}
}

// WithAddr sets the listen address, e.g. ":8080".
func WithAddr(addr string) Option {
	return func(c *Config) { c.addr = addr }
}

// WithH2C enables HTTP/2 cleartext support via golang.org/x/net/http2/h2c.
//
// Only use behind a trusted load balancer, or for local development: h2c
// performs no TLS negotiation of its own.
func WithH2C(enable bool) Option {
	return func(c *Config) { c.enableH2C = enable }
}

// WithTLS configures the server to terminate TLS itself using cfg.
func WithTLS(cfg *tls.Config) Option {
	return func(c *Config) { c.tlsConfig = cfg }
}

// WithServerTimeouts configures the underlying net/http.Server's timeout
// knobs. These bound slowloris-style connection exhaustion independently
// of the per-request timeout enforced by the pipeline driver.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(c *Config) {
		c.serverTimeouts = &serverTimeouts{readHeader: readHeader, read: read, write: write, idle: idle}
	}
}

// WithRequestTimeout bounds how long a single request's pipeline
// traversal (guards, middleware, handler) may run before the driver
// cancels its context and responds 408.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) { c.requestTimeout = d }
}

// WithMaxBodyBytes bounds the number of bytes a request body may contain
// before body.TakeAs reports a *body.TooLargeError; Body.Take hands out the
// raw stream without enforcing it. A value <= 0 means unbounded.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Config) { c.maxBodyBytes = n }
}

// WithDrainGrace bounds how long Shutdown waits for in-flight requests to
// complete before returning ErrDrainTimeout.
func WithDrainGrace(d time.Duration) Option {
	return func(c *Config) { c.drainGrace = d }
}

// WithServerEpoch sets the 4-byte epoch embedded in every operation id
// this server generates, distinguishing ids minted across process
// restarts or fleet members.
func WithServerEpoch(epoch uint32) Option {
	return func(c *Config) { c.serverEpoch = epoch }
}

// WithServerName sets the value written in the response Server header.
func WithServerName(name string) Option {
	return func(c *Config) { c.serverName = name }
}

// WithLogger overrides the default slog.Logger used for pipeline-level
// diagnostics (request start/completion records and recovered handler
// panics).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.logger = logger }
}

// WithObservabilityRecorder installs a recorder that is notified of every
// request's outcome; see ObservabilityRecorder.
func WithObservabilityRecorder(r ObservabilityRecorder) Option {
	return func(c *Config) { c.recorder = r }
}

// NewConfig builds a Config from defaults plus the given options.
func NewConfig(opts ...Option) *Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
