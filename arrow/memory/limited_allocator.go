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
	"fmt"
	"sync/atomic"
)

// LimitedAllocator caps the number of bytes that may be outstanding at any
// time. Requests beyond the cap fail with ErrOutOfMemory through
// TryAllocate; Allocate and Reallocate panic with that error instead.
//
// LimitedAllocator is safe to use from multiple goroutines.
type LimitedAllocator struct {
	mem   Allocator
	limit int64
	used  int64
}

func NewLimitedAllocator(mem Allocator, limit int) *LimitedAllocator {
	return &LimitedAllocator{mem: mem, limit: int64(limit)}
}

// Limit returns the maximum number of bytes that can be allocated at once.
func (a *LimitedAllocator) Limit() int { return int(a.limit) }

// Used returns the number of bytes currently allocated.
func (a *LimitedAllocator) Used() int { return int(atomic.LoadInt64(&a.used)) }

func (a *LimitedAllocator) reserve(n int64) error {
	for {
		cur := atomic.LoadInt64(&a.used)
		if cur+n > a.limit {
			return fmt.Errorf("%w: cannot allocate %d bytes, %d of %d bytes in use",
				ErrOutOfMemory, n, cur, a.limit)
		}
		if atomic.CompareAndSwapInt64(&a.used, cur, cur+n) {
			return nil
		}
	}
}

func (a *LimitedAllocator) TryAllocate(size int) ([]byte, error) {
	if err := a.reserve(int64(size)); err != nil {
		return nil, err
	}

	out, err := TryAllocate(a.mem, size)
	if err != nil {
		atomic.AddInt64(&a.used, -int64(size))
		return nil, err
	}
	return out, nil
}

func (a *LimitedAllocator) Allocate(size int) []byte {
	out, err := a.TryAllocate(size)
	if err != nil {
		panic(err)
	}
	return out
}

func (a *LimitedAllocator) Reallocate(size int, b []byte) []byte {
	if grow := int64(size - len(b)); grow > 0 {
		if err := a.reserve(grow); err != nil {
			panic(err)
		}
	} else {
		atomic.AddInt64(&a.used, grow)
	}
	return a.mem.Reallocate(size, b)
}

func (a *LimitedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.used, -int64(len(b)))
	a.mem.Free(b)
}

var (
	_ Allocator    = (*LimitedAllocator)(nil)
	_ TryAllocator = (*LimitedAllocator)(nil)
)
