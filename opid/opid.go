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

// Package opid generates the 16-byte operation id the pipeline driver
// attaches to every request for log correlation: 4 bytes of server epoch,
// followed by 6 bytes of unix seconds, followed by 6 bytes of a monotonic
// per-process counter, all little-endian. It is rendered as lowercase hex.
//
// The upstream source this was ported from (original_source/saphir/src/http_context.rs)
// carries a version of ID.to_string() that references out-of-scope
// variables (buf, full_buffer) and does not compile; this package
// implements only the documented 16-byte layout, not that routine.
package opid

import (
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

// Len is the length in bytes of an operation id.
const Len = 16

// ID is a 16-byte operation identifier.
type ID [Len]byte

// String renders the id as lowercase hex.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Generator produces operation ids scoped to a single server instance. The
// epoch distinguishes ids minted by different server processes/restarts;
// the counter guarantees uniqueness within a process even when two ids are
// minted in the same second.
type Generator struct {
	epoch   uint32
	counter atomic.Uint64
}

// NewGenerator returns a Generator stamping every id with the given server
// epoch (an arbitrary value unique to this server instance/process).
func NewGenerator(epoch uint32) *Generator {
	return &Generator{epoch: epoch}
}

// Next returns the next operation id: 4-byte epoch | 6-byte unix seconds |
// 6-byte monotonic counter.
func (g *Generator) Next() ID {
	var id ID

	binary.LittleEndian.PutUint32(id[0:4], g.epoch)

	seconds := uint64(time.Now().Unix())
	putUint48(id[4:10], seconds)

	count := g.counter.Add(1)
	putUint48(id[10:16], count)

	return id
}

// putUint48 writes the low 48 bits of v into b (len(b) must be 6), little-endian.
func putUint48(b []byte, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	copy(b, buf[:6])
}
