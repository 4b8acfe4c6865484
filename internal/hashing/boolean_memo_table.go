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

// BooleanMemoTable is the memo table for booleans. With only two distinct
// values plus null it never holds more than three entries, so it needs no
// hash table at all.
type BooleanMemoTable struct {
	index   [2]int
	values  []bool
	nullIdx int
}

func NewBooleanMemoTable() *BooleanMemoTable {
	return &BooleanMemoTable{
		index:   [2]int{KeyNotFound, KeyNotFound},
		values:  make([]bool, 0, 3),
		nullIdx: KeyNotFound,
	}
}

func boolSlot(v bool) int {
	if v {
		return 1
	}
	return 0
}

func (b *BooleanMemoTable) Size() int { return len(b.values) }

func (b *BooleanMemoTable) Reset() {
	b.index = [2]int{KeyNotFound, KeyNotFound}
	b.values = b.values[:0]
	b.nullIdx = KeyNotFound
}

func (b *BooleanMemoTable) GetNull() (int, bool) {
	return b.nullIdx, b.nullIdx != KeyNotFound
}

func (b *BooleanMemoTable) GetOrInsertNull() (idx int, found bool) {
	if idx, found = b.GetNull(); !found {
		idx = b.Size()
		b.nullIdx = idx
		b.values = append(b.values, false)
	}
	return
}

// Get returns the index of v and whether it was found.
func (b *BooleanMemoTable) Get(v bool) (int, bool) {
	idx := b.index[boolSlot(v)]
	return idx, idx != KeyNotFound
}

// GetOrInsert returns the index of v, inserting it if it wasn't already present.
func (b *BooleanMemoTable) GetOrInsert(v bool) (idx int, found bool, err error) {
	if idx, found = b.Get(v); found {
		return
	}

	idx = b.Size()
	b.index[boolSlot(v)] = idx
	b.values = append(b.values, v)
	return idx, false, nil
}

// Value returns the value stored at index i. The null entry reads as false.
func (b *BooleanMemoTable) Value(i int) bool { return b.values[i] }

var _ MemoTable = (*BooleanMemoTable)(nil)
