// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashing provides the memo tables used to dictionary-encode values:
// append-only hash tables which assign every distinct value an index in
// first-insertion order and can copy their contents out in bulk, starting
// from any index.
package hashing

import (
	"math/bits"
	"unsafe"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// KeyNotFound is the index returned when a value is not in a memo table.
const KeyNotFound = -1

// Primitive is the set of fixed width scalar types a ScalarMemoTable can hold.
type Primitive interface {
	constraints.Integer | constraints.Float
}

// MemoTable is the interface shared by every memo table, independent of the
// type of values it holds.
type MemoTable interface {
	// Size returns the number of distinct entries, including the null
	// entry if one was inserted.
	Size() int
	// GetNull returns the index of the null entry and whether it exists.
	GetNull() (int, bool)
	// GetOrInsertNull returns the index of the null entry, inserting it
	// if it didn't already exist.
	GetOrInsertNull() (idx int, found bool)
	// Reset drops every entry.
	Reset()
}

type config struct {
	capacity int
	seed     uint64
}

// Option configures a memo table on construction.
type Option func(*config)

// WithCapacity sets the number of entries the table is sized for up front.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithHashSeed sets the seed mixed into every hash computed by the table.
func WithHashSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

func newConfig(opts []Option) config {
	cfg := config{capacity: 0}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// two of xxhash's prime multipliers, chosen for their bit dispersion
var multipliers = [2]uint64{11400714785074694791, 14029467366897019727}

func hashInt(val uint64, alg uint64) uint64 {
	// multiplying by the prime mixes the low bits into the high bits, then
	// the byte swap lets those high bits pick the table slot.
	return bits.ReverseBytes64(multipliers[alg&1] * val)
}

func hashBytes(b []byte, seed uint64) uint64 {
	return xxh3.HashSeed(b, seed)
}

// canonical bit pattern every NaN hashes and compares as
const canonicalNaN uint64 = 0x7FF8000000000001

// scalarKey returns the bit pattern of v, widened to 64 bits. All NaNs
// share one key, so a table holds at most one NaN.
func scalarKey[T Primitive](v T) uint64 {
	if v != v {
		return canonicalNaN
	}

	switch unsafe.Sizeof(v) {
	case 1:
		return uint64(*(*uint8)(unsafe.Pointer(&v)))
	case 2:
		return uint64(*(*uint16)(unsafe.Pointer(&v)))
	case 4:
		return uint64(*(*uint32)(unsafe.Pointer(&v)))
	default:
		return *(*uint64)(unsafe.Pointer(&v))
	}
}

func strToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
