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

package hashing

import (
	"github.com/apache/arrow/go/dictenc/arrow"
)

// ScalarMemoTable is a memo table for fixed width scalar values. Values are
// kept in insertion order in a plain slice so they can be copied out in
// bulk. Floating point values are compared by bit pattern, except that
// every NaN is treated as the same value.
type ScalarMemoTable[T Primitive] struct {
	tbl     *hashTable
	seed    uint64
	values  []T
	nullIdx int
}

// NewScalarMemoTable returns an empty memo table for values of type T.
func NewScalarMemoTable[T Primitive](opts ...Option) *ScalarMemoTable[T] {
	cfg := newConfig(opts)
	return &ScalarMemoTable[T]{
		tbl:     newHashTable(uint64(cfg.capacity)),
		seed:    cfg.seed,
		values:  make([]T, 0, cfg.capacity),
		nullIdx: KeyNotFound,
	}
}

func (s *ScalarMemoTable[T]) Size() int { return len(s.values) }

func (s *ScalarMemoTable[T]) Reset() {
	s.tbl.reset()
	s.values = s.values[:0]
	s.nullIdx = KeyNotFound
}

func (s *ScalarMemoTable[T]) GetNull() (int, bool) {
	return s.nullIdx, s.nullIdx != KeyNotFound
}

// GetOrInsertNull appends the null entry, stored as the zero value of T,
// unless it already exists.
func (s *ScalarMemoTable[T]) GetOrInsertNull() (idx int, found bool) {
	if idx, found = s.GetNull(); !found {
		idx = s.Size()
		s.nullIdx = idx
		var zero T
		s.values = append(s.values, zero)
	}
	return
}

func (s *ScalarMemoTable[T]) lookup(v T) (*entry, bool) {
	key := scalarKey(v)
	return s.tbl.lookup(hashInt(key^s.seed, 0), func(idx int32) bool {
		return scalarKey(s.values[idx]) == key
	})
}

// Get returns the index of v and whether it was found.
func (s *ScalarMemoTable[T]) Get(v T) (int, bool) {
	if e, ok := s.lookup(v); ok {
		return int(e.memoIdx), ok
	}
	return KeyNotFound, false
}

// GetOrInsert returns the index of v, inserting it at the end of the table
// if it wasn't already present.
func (s *ScalarMemoTable[T]) GetOrInsert(v T) (idx int, found bool, err error) {
	e, found := s.lookup(v)
	if found {
		return int(e.memoIdx), true, nil
	}

	idx = s.Size()
	s.values = append(s.values, v)
	s.tbl.insert(e, hashInt(scalarKey(v)^s.seed, 0), int32(idx))
	return idx, false, nil
}

// Value returns the value stored at index i.
func (s *ScalarMemoTable[T]) Value(i int) T { return s.values[i] }

// CopyValues copies every value into out, which must hold Size() values.
func (s *ScalarMemoTable[T]) CopyValues(out []T) { s.CopyValuesSubset(0, out) }

// CopyValuesSubset copies the values from index start onwards into out,
// which must hold Size()-start values.
func (s *ScalarMemoTable[T]) CopyValuesSubset(start int, out []T) {
	n := len(s.values) - start
	copy(out[:n], s.values[start:])
}

// WriteOutSubset copies the values from index start onwards into the raw
// byte buffer out, which must hold exactly Size()-start values.
func (s *ScalarMemoTable[T]) WriteOutSubset(start int, out []byte) {
	s.CopyValuesSubset(start, arrow.CastFromBytesTo[T](out))
}

var _ MemoTable = (*ScalarMemoTable[int64])(nil)
