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
	"sync/atomic"

	"github.com/apache/arrow/go/dictenc/arrow/internal/debug"
)

// Buffer is a wrapper type for a buffer of bytes.
type Buffer struct {
	refCount int64
	buf      []byte
	length   int
	mutable  bool
	mem      Allocator
}

// NewBufferBytes creates a fixed-size buffer from the specified data.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{refCount: 0, buf: data, length: len(data)}
}

// NewResizableBuffer creates a mutable, resizable buffer with an Allocator for managing memory.
func NewResizableBuffer(mem Allocator) *Buffer {
	return &Buffer{refCount: 1, mutable: true, mem: mem}
}

// Retain increases the reference count by 1.
func (b *Buffer) Retain() {
	if b.mem != nil {
		atomic.AddInt64(&b.refCount, 1)
	}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *Buffer) Release() {
	if b.mem != nil {
		debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

		if atomic.AddInt64(&b.refCount, -1) == 0 {
			b.mem.Free(b.buf)
			b.buf, b.length = nil, 0
		}
	}
}

// Bytes returns a slice of size Len, which is adjusted by calling Resize.
func (b *Buffer) Bytes() []byte { return b.buf[:b.length] }

// Mutable returns a bool indicating whether the buffer is mutable or not.
func (b *Buffer) Mutable() bool { return b.mutable }

// Len returns the length of the buffer.
func (b *Buffer) Len() int { return b.length }

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int { return len(b.buf) }

// TryReserve grows the capacity of the buffer to at least capacity bytes,
// rounded up to a multiple of 64. Existing contents are preserved and the
// new tail is zeroed. Allocation failures are returned and leave the buffer
// untouched.
func (b *Buffer) TryReserve(capacity int) error {
	if capacity <= len(b.buf) {
		return nil
	}
	debug.Assert(b.mutable, "cannot reserve on an immutable buffer")

	newCap := roundUpToMultipleOf64(capacity)
	buf, err := TryAllocate(b.mem, newCap)
	if err != nil {
		return err
	}
	n := copy(buf, b.buf)
	Set(buf[n:], 0)
	if b.buf != nil {
		b.mem.Free(b.buf)
	}
	b.buf = buf
	return nil
}

// Reserve is TryReserve, panicking on allocation failure.
func (b *Buffer) Reserve(capacity int) {
	if err := b.TryReserve(capacity); err != nil {
		panic(err)
	}
}

// TryResize resizes the buffer to newSize bytes, growing the capacity if
// needed. The capacity is never shrunk.
func (b *Buffer) TryResize(newSize int) error {
	if err := b.TryReserve(newSize); err != nil {
		return err
	}
	b.length = newSize
	return nil
}

// Resize is TryResize, panicking on allocation failure.
func (b *Buffer) Resize(newSize int) {
	if err := b.TryResize(newSize); err != nil {
		panic(err)
	}
}
