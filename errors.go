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
)

// ErrorKind classifies a pipeline failure for the purpose of mapping it to
// a wire status code via statusForError. The Server's request pipeline
// does not consult it: routing failures are mapped in server.go and
// body-limit errors in the router's responder.
type ErrorKind int

const (
	// KindInternal covers unclassified failures; maps to 500.
	KindInternal ErrorKind = iota
	// KindTransport covers connection-level failures; maps to 400.
	KindTransport
	// KindProtocolDecode covers malformed request framing; maps to 400.
	KindProtocolDecode
	// KindResourceLimit covers body/header size limit violations; maps to 413.
	KindResourceLimit
	// KindTimeout covers requests that exceeded their deadline; maps to 408.
	KindTimeout
	// KindRouting covers unresolved or disallowed routes; maps to 404.
	KindRouting
	// KindApplication covers handler-reported application errors; maps to 500.
	KindApplication
)

// ErrServerClosed is returned by Run after a graceful Shutdown completes.
var ErrServerClosed = errors.New("saphir: server closed")

// ErrDrainTimeout is returned by Shutdown when in-flight requests failed to
// drain within the configured grace period.
var ErrDrainTimeout = errors.New("saphir: graceful shutdown grace period exceeded")

// PipelineError pairs an ErrorKind with the underlying cause, letting
// statusForError pick a status code without the cause needing to implement
// any special interface.
type PipelineError struct {
	Kind  ErrorKind
	Cause error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause == nil {
		return "saphir: pipeline error"
	}
	return e.Cause.Error()
}

// Unwrap allows errors.Is/errors.As to see through to Cause.
func (e *PipelineError) Unwrap() error { return e.Cause }

// NewPipelineError wraps err with a classification.
func NewPipelineError(kind ErrorKind, err error) *PipelineError {
	return &PipelineError{Kind: kind, Cause: err}
}

// statusForError maps a possibly-wrapped error to an HTTP status code. An
// error with no PipelineError in its chain is treated as KindInternal.
func statusForError(err error) int {
	var pe *PipelineError
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError
	}
	switch pe.Kind {
	case KindTransport, KindProtocolDecode:
		return http.StatusBadRequest
	case KindResourceLimit:
		return http.StatusRequestEntityTooLarge
	case KindTimeout:
		return http.StatusRequestTimeout
	case KindRouting:
		return http.StatusNotFound
	case KindApplication, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
