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

package memory

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// CheckedAllocator wraps another allocator and records every live
// allocation together with the call site that requested it, so tests can
// assert that all buffers were released.
type CheckedAllocator struct {
	mem Allocator
	sz  int64
	n   int64

	allocs sync.Map
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

// CurrentAlloc returns the number of bytes currently allocated.
func (a *CheckedAllocator) CurrentAlloc() int { return int(atomic.LoadInt64(&a.sz)) }

// NumAllocations returns the number of successful allocation requests seen.
func (a *CheckedAllocator) NumAllocations() int { return int(atomic.LoadInt64(&a.n)) }

func (a *CheckedAllocator) Allocate(size int) []byte {
	out := a.mem.Allocate(size)
	a.track(out, size, allocFrames)
	return out
}

// TryAllocate forwards to the wrapped allocator, recording the allocation
// only if it succeeded.
func (a *CheckedAllocator) TryAllocate(size int) ([]byte, error) {
	out, err := TryAllocate(a.mem, size)
	if err != nil {
		return nil, err
	}
	a.track(out, size, allocFrames+1)
	return out, nil
}

func (a *CheckedAllocator) track(out []byte, size, frames int) {
	atomic.AddInt64(&a.sz, int64(size))
	atomic.AddInt64(&a.n, 1)
	if size == 0 {
		return
	}

	if pc, _, l, ok := runtime.Caller(frames); ok {
		a.allocs.Store(addressOf(out), &dalloc{pc: pc, line: l, sz: size})
	}
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	atomic.AddInt64(&a.sz, int64(size-len(b)))

	if len(b) > 0 {
		a.allocs.Delete(addressOf(b))
	}
	out := a.mem.Reallocate(size, b)
	if size == 0 {
		return out
	}

	if pc, _, l, ok := runtime.Caller(reallocFrames); ok {
		a.allocs.Store(addressOf(out), &dalloc{pc: pc, line: l, sz: size})
	}
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.sz, int64(len(b)*-1))
	defer a.mem.Free(b)

	if len(b) == 0 {
		return
	}
	a.allocs.Delete(addressOf(b))
}

// allocations usually come from inside Buffer, so the frames of the
// buffer internals are skipped to report the caller that triggered the
// Resize/Reserve instead.
const (
	defAllocFrames   = 4
	defReallocFrames = 3
)

// ARROW_CHECKED_ALLOC_FRAMES and ARROW_CHECKED_REALLOC_FRAMES control how
// many frames up the recorded call site is taken from.
var allocFrames, reallocFrames int = defAllocFrames, defReallocFrames

func init() {
	if val, ok := os.LookupEnv("ARROW_CHECKED_ALLOC_FRAMES"); ok {
		if f, err := strconv.Atoi(val); err == nil {
			allocFrames = f
		}
	}

	if val, ok := os.LookupEnv("ARROW_CHECKED_REALLOC_FRAMES"); ok {
		if f, err := strconv.Atoi(val); err == nil {
			reallocFrames = f
		}
	}
}

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize reports every live allocation as a leak and fails t if the
// number of allocated bytes differs from sz.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	t.Helper()
	if sz == 0 {
		a.allocs.Range(func(_, value interface{}) bool {
			info := value.(*dalloc)
			f := runtime.FuncForPC(info.pc)
			t.Errorf("LEAK of %d bytes FROM %s line %d\n", info.sz, f.Name(), info.line)
			return true
		})
	}

	if cur := atomic.LoadInt64(&a.sz); int(cur) != sz {
		t.Errorf("invalid memory size exp=%d, got=%d", sz, cur)
	}
}

var (
	_ Allocator    = (*CheckedAllocator)(nil)
	_ TryAllocator = (*CheckedAllocator)(nil)
)
