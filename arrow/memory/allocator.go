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
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an allocation request cannot be satisfied.
var ErrOutOfMemory = errors.New("arrow/memory: out of memory")

// Allocator is the interface of the memory allocators used by buffers
// and builders.
type Allocator interface {
	Allocate(size int) []byte
	Reallocate(size int, b []byte) []byte
	Free(b []byte)
}

// TryAllocator is implemented by allocators which are able to report
// an allocation failure instead of panicking.
type TryAllocator interface {
	TryAllocate(size int) ([]byte, error)
}

// DefaultAllocator is a default implementation of Allocator and can be used anywhere
// an Allocator is required.
//
// DefaultAllocator is safe to use from multiple goroutines.
var DefaultAllocator Allocator = NewGoAllocator()

// TryAllocate requests size bytes from mem. If mem implements TryAllocator
// the failure is returned, otherwise the call defers to Allocate.
func TryAllocate(mem Allocator, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative allocation size %d", ErrOutOfMemory, size)
	}
	if ta, ok := mem.(TryAllocator); ok {
		return ta.TryAllocate(size)
	}
	return mem.Allocate(size), nil
}

// AllocateBuffer returns a new mutable buffer of exactly size bytes
// allocated from mem. The contents are zeroed.
func AllocateBuffer(mem Allocator, size int) (*Buffer, error) {
	buf := NewResizableBuffer(mem)
	if err := buf.TryResize(size); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}
