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

// Package config loads server settings from a YAML file and/or the
// process environment into a saphir.Config's Options.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"rivaas.dev/saphir"
)

// File is the on-disk shape of a YAML configuration file. Zero-valued
// fields fall back to saphir's own defaults.
type File struct {
	Addr               string        `yaml:"addr"`
	H2C                bool          `yaml:"h2c"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"`
	DrainGrace         time.Duration `yaml:"drain_grace"`
	ServerName         string        `yaml:"server_name"`
	ReadHeaderTimeout  time.Duration `yaml:"read_header_timeout"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
}

// Load parses the YAML file at path into a File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &f, nil
}

// Options converts f into the saphir.Option slice that reproduces it.
// Zero-valued fields are skipped so saphir's own defaults apply.
func (f *File) Options() []saphir.Option {
	var opts []saphir.Option
	if f.Addr != "" {
		opts = append(opts, saphir.WithAddr(f.Addr))
	}
	if f.H2C {
		opts = append(opts, saphir.WithH2C(true))
	}
	if f.RequestTimeout > 0 {
		opts = append(opts, saphir.WithRequestTimeout(f.RequestTimeout))
	}
	if f.MaxBodyBytes > 0 {
		opts = append(opts, saphir.WithMaxBodyBytes(f.MaxBodyBytes))
	}
	if f.DrainGrace > 0 {
		opts = append(opts, saphir.WithDrainGrace(f.DrainGrace))
	}
	if f.ServerName != "" {
		opts = append(opts, saphir.WithServerName(f.ServerName))
	}
	if f.ReadHeaderTimeout > 0 || f.ReadTimeout > 0 || f.WriteTimeout > 0 || f.IdleTimeout > 0 {
		opts = append(opts, saphir.WithServerTimeouts(f.ReadHeaderTimeout, f.ReadTimeout, f.WriteTimeout, f.IdleTimeout))
	}
	return opts
}

// envOverlay describes one SAPHIR_* environment variable and how it
// mutates a File.
type envOverlay struct {
	name  string
	apply func(f *File, value string) error
}

var envOverlays = []envOverlay{
	{"SAPHIR_ADDR", func(f *File, v string) error { f.Addr = v; return nil }},
	{"SAPHIR_H2C", func(f *File, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		f.H2C = b
		return nil
	}},
	{"SAPHIR_REQUEST_TIMEOUT", func(f *File, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		f.RequestTimeout = d
		return nil
	}},
	{"SAPHIR_MAX_BODY_BYTES", func(f *File, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		f.MaxBodyBytes = n
		return nil
	}},
	{"SAPHIR_SERVER_NAME", func(f *File, v string) error { f.ServerName = v; return nil }},
}

// FromEnv applies SAPHIR_* environment variable overrides on top of f,
// returning the first parse error encountered, if any.
func FromEnv(f *File) (*File, error) {
	if f == nil {
		f = &File{}
	}
	for _, o := range envOverlays {
		v, ok := os.LookupEnv(o.name)
		if !ok || v == "" {
			continue
		}
		if err := o.apply(f, v); err != nil {
			return nil, fmt.Errorf("config: env %s: %w", o.name, err)
		}
	}
	return f, nil
}
