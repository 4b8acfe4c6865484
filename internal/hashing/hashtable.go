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
	"github.com/apache/arrow/go/dictenc/arrow/bitutil"
)

const (
	sentinel   uint64 = 0
	loadFactor uint64 = 2
)

type entry struct {
	h       uint64
	memoIdx int32
}

func (e *entry) Valid() bool { return e.h != sentinel }

// hashTable is an open addressing table mapping hashes to memo indexes. It
// knows nothing of the values themselves; callers pass a comparison
// callback to resolve hash collisions.
type hashTable struct {
	cap     uint64
	capMask uint64
	size    uint64

	entries []entry
}

func newHashTable(cap uint64) *hashTable {
	if cap < 32 {
		cap = 32
	}
	initCap := uint64(bitutil.NextPowerOf2(int(cap * loadFactor)))
	return &hashTable{cap: initCap, capMask: initCap - 1, entries: make([]entry, initCap)}
}

func (h *hashTable) reset() {
	h.size = 0
	for i := range h.entries {
		h.entries[i] = entry{}
	}
}

func fixHash(v uint64) uint64 {
	if v == sentinel {
		return 42
	}
	return v
}

// lookup returns the entry holding hash v for which cmp reports a match,
// or the empty entry where it would be inserted.
func (h *hashTable) lookup(v uint64, cmp func(int32) bool) (*entry, bool) {
	idx, ok := h.lookupIdx(fixHash(v), cmp)
	return &h.entries[idx], ok
}

func (h *hashTable) lookupIdx(v uint64, cmp func(int32) bool) (uint64, bool) {
	const perturbShift uint8 = 5

	idx := v & h.capMask
	perturb := (v >> uint64(perturbShift)) + 1

	for {
		e := &h.entries[idx]
		if e.h == v && cmp(e.memoIdx) {
			return idx, true
		}

		if e.h == sentinel {
			return idx, false
		}

		// perturbation logic inspired from CPython's set/dict object;
		// the goal is that all 64 bits of unmasked hash value eventually
		// participate in the probing sequence, to minimize clustering.
		idx = (idx + perturb) & h.capMask
		perturb = (perturb >> uint64(perturbShift)) + 1
	}
}

func (h *hashTable) insert(e *entry, v uint64, memoIdx int32) {
	e.h = fixHash(v)
	e.memoIdx = memoIdx
	h.size++

	if h.size*loadFactor >= h.cap {
		h.upsize(h.cap * loadFactor * 2)
	}
}

func (h *hashTable) upsize(newcap uint64) {
	oldEntries := h.entries
	h.cap, h.capMask = newcap, newcap-1
	h.entries = make([]entry, newcap)

	for i := range oldEntries {
		e := &oldEntries[i]
		if !e.Valid() {
			continue
		}

		idx, _ := h.lookupIdx(e.h, func(int32) bool { return false })
		h.entries[idx] = *e
	}
}
