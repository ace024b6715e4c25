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
	"context"
	"io"
	"sync"
)

type state int32

const (
	stateRaw state = iota
	stateTaken
)

// Body is a lazily-consumable wrapper around an incoming byte stream. At
// most one of Take or TakeAs succeeds across its lifetime; every later call
// yields ErrBodyAlreadyTaken.
type Body struct {
	mu          sync.Mutex
	stream      io.ReadCloser
	limit       int64 // <=0 means unbounded
	contentType string
	state       state
}

// New wraps stream as a fresh Body. limit is the maximum number of bytes
// TakeAs will accumulate before failing with a *TooLargeError; <= 0 means
// unbounded.
func New(stream io.ReadCloser, contentType string, limit int64) *Body {
	return &Body{stream: stream, contentType: contentType, limit: limit}
}

// ContentType returns the content type the body was constructed with (the
// request's Content-Type header value, typically).
func (b *Body) ContentType() string {
	return b.contentType
}

// Take hands out the raw stream and leaves an empty body behind. A second
// call, whether to Take or TakeAs, returns ErrBodyAlreadyTaken.
func (b *Body) Take() (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateTaken {
		return nil, ErrBodyAlreadyTaken
	}
	b.state = stateTaken
	return b.stream, nil
}

// Decoder converts accumulated body bytes (plus the body's content type)
// into a typed value T. Bytes, String, JSON, Form and Multipart below are
// the built-in decoders; callers may supply their own.
type Decoder[T any] func(data []byte, contentType string) (T, error)

// TakeAs consumes the body, accumulating bytes (subject to the configured
// limit) and running decode over the result. Dropping the context before
// completion (ctx cancelled) aborts accumulation safely; the caller is
// expected to close the underlying connection in that case.
func TakeAs[T any](ctx context.Context, b *Body, decode Decoder[T]) (T, error) {
	var zero T

	b.mu.Lock()
	if b.state == stateTaken {
		b.mu.Unlock()
		return zero, ErrBodyAlreadyTaken
	}
	b.state = stateTaken
	stream := b.stream
	contentType := b.contentType
	limit := b.limit
	b.mu.Unlock()

	data, err := accumulate(ctx, stream, limit)
	if err != nil {
		return zero, err
	}
	return decode(data, contentType)
}

// accumulate reads stream to completion, subject to limit, in a way that is
// safe to abandon: if ctx is cancelled before the read finishes, accumulate
// returns immediately with ctx.Err() and the stream is closed by the
// in-flight goroutine once the underlying read unblocks.
func accumulate(ctx context.Context, stream io.ReadCloser, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		_ = stream.Close()
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		defer stream.Close()
		var r io.Reader = stream
		if limit > 0 {
			r = io.LimitReader(stream, limit+1)
		}
		data, err := io.ReadAll(r)
		if err == nil && limit > 0 && int64(len(data)) > limit {
			err = &TooLargeError{Limit: limit}
		}
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.data, res.err
	}
}
