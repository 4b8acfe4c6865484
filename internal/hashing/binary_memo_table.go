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
	"bytes"
)

// BinaryMemoTable is a memo table for variable length byte strings. The
// distinct values are concatenated into one byte slice, with offsets[i]
// and offsets[i+1] delimiting the value at index i. The null entry, if
// present, occupies an empty span.
type BinaryMemoTable struct {
	tbl     *hashTable
	seed    uint64
	offsets []int64
	values  []byte
	nullIdx int
}

// NewBinaryMemoTable returns an empty binary memo table.
func NewBinaryMemoTable(opts ...Option) *BinaryMemoTable {
	cfg := newConfig(opts)
	offsets := make([]int64, 1, cfg.capacity+1)
	return &BinaryMemoTable{
		tbl:     newHashTable(uint64(cfg.capacity)),
		seed:    cfg.seed,
		offsets: offsets,
		nullIdx: KeyNotFound,
	}
}

func (b *BinaryMemoTable) Size() int { return len(b.offsets) - 1 }

func (b *BinaryMemoTable) Reset() {
	b.tbl.reset()
	b.offsets = b.offsets[:1]
	b.values = b.values[:0]
	b.nullIdx = KeyNotFound
}

func (b *BinaryMemoTable) GetNull() (int, bool) {
	return b.nullIdx, b.nullIdx != KeyNotFound
}

func (b *BinaryMemoTable) GetOrInsertNull() (idx int, found bool) {
	if idx, found = b.GetNull(); !found {
		idx = b.Size()
		b.nullIdx = idx
		b.offsets = append(b.offsets, int64(len(b.values)))
	}
	return
}

// Value returns the bytes stored at index i. The returned slice aliases
// the table's storage and is only valid until the next insertion.
func (b *BinaryMemoTable) Value(i int) []byte {
	return b.values[b.offsets[i]:b.offsets[i+1]]
}

func (b *BinaryMemoTable) lookup(h uint64, val []byte) (*entry, bool) {
	return b.tbl.lookup(h, func(i int32) bool {
		return bytes.Equal(val, b.Value(int(i)))
	})
}

// Get returns the index of val and whether it was found.
func (b *BinaryMemoTable) Get(val []byte) (int, bool) {
	if e, ok := b.lookup(hashBytes(val, b.seed), val); ok {
		return int(e.memoIdx), ok
	}
	return KeyNotFound, false
}

// GetOrInsert returns the index of val, appending it to the table if it
// wasn't already present. The bytes are copied.
func (b *BinaryMemoTable) GetOrInsert(val []byte) (idx int, found bool, err error) {
	h := hashBytes(val, b.seed)
	e, found := b.lookup(h, val)
	if found {
		return int(e.memoIdx), true, nil
	}

	idx = b.Size()
	b.values = append(b.values, val...)
	b.offsets = append(b.offsets, int64(len(b.values)))
	b.tbl.insert(e, h, int32(idx))
	return idx, false, nil
}

// GetOrInsertString is GetOrInsert for a string, without copying it first.
func (b *BinaryMemoTable) GetOrInsertString(val string) (idx int, found bool, err error) {
	return b.GetOrInsert(strToBytes(val))
}

// ValuesSize returns the total number of bytes held by the table.
func (b *BinaryMemoTable) ValuesSize() int { return len(b.values) }

// ValuesSizeSubset returns the number of bytes held by the entries from
// index start onwards.
func (b *BinaryMemoTable) ValuesSizeSubset(start int) int {
	return len(b.values) - int(b.offsets[start])
}

// CopyOffsetsSubset writes Size()-start+1 offsets into out, rebased so the
// first one is zero.
func (b *BinaryMemoTable) CopyOffsetsSubset(start int, out []int32) {
	base := b.offsets[start]
	for i, o := range b.offsets[start:] {
		out[i] = int32(o - base)
	}
}

// CopyLargeOffsetsSubset is CopyOffsetsSubset for 64-bit offsets.
func (b *BinaryMemoTable) CopyLargeOffsetsSubset(start int, out []int64) {
	base := b.offsets[start]
	for i, o := range b.offsets[start:] {
		out[i] = o - base
	}
}

// CopyValuesSubset copies the bytes of the entries from index start
// onwards into out, which must hold ValuesSizeSubset(start) bytes.
func (b *BinaryMemoTable) CopyValuesSubset(start int, out []byte) {
	copy(out, b.values[b.offsets[start]:])
}

// CopyFixedWidthValuesSubset copies the entries from index start onwards
// into out as contiguous runs of width bytes each. Every entry apart from
// the null one must be exactly width bytes long, otherwise the runs are
// misplaced; the null entry's run is zero filled. out must hold at least
// (Size()-start)*width bytes.
func (b *BinaryMemoTable) CopyFixedWidthValuesSubset(start, width int, out []byte) {
	n := b.Size() - start
	if n <= 0 {
		return
	}

	out = out[:n*width]
	src := b.values[b.offsets[start]:]
	nullIdx, hasNull := b.GetNull()
	if !hasNull || nullIdx < start {
		copy(out, src)
		return
	}

	// the null entry takes no bytes in the table, so everything after it
	// is shifted back by one run.
	at := (nullIdx - start) * width
	before := min(at, len(src))
	copy(out[:at], src[:before])
	clear(out[at : at+width])
	copy(out[at+width:], src[before:])
}

// VisitValues calls fn for each entry from index start onwards, in index
// order. The null entry is visited as an empty value.
func (b *BinaryMemoTable) VisitValues(start int, fn func([]byte)) {
	for i := start; i < b.Size(); i++ {
		fn(b.Value(i))
	}
}

var _ MemoTable = (*BinaryMemoTable)(nil)
