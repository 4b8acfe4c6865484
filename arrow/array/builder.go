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

package array

import (
	"sync/atomic"

	"github.com/apache/arrow/go/dictenc/arrow/bitutil"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
)

const (
	minBuilderCapacity = 1 << 5
)

// Builder provides an interface to build arrow arrays.
type Builder interface {
	// Retain increases the reference count by 1.
	// Retain may be called simultaneously from multiple goroutines.
	Retain()

	// Release decreases the reference count by 1.
	Release()

	// Len returns the number of elements in the array builder.
	Len() int

	// Cap returns the total number of elements that can be stored
	// without allocating additional memory.
	Cap() int

	// NullN returns the number of null values in the array builder.
	NullN() int

	// AppendNull adds a new null value to the array being built.
	AppendNull()

	// Reserve ensures there is enough space for appending n elements
	// by checking the capacity and calling Resize if necessary.
	Reserve(n int)

	// NewArray creates a new array from the memory buffers used
	// by the builder and resets the Builder so it can be used to build
	// a new array.
	NewArray() Interface
}

// builder provides common functionality for managing the validity bitmap (nulls) when building arrays.
type builder struct {
	refCount   int64
	mem        memory.Allocator
	nullBitmap *memory.Buffer
	nulls      int
	length     int
	capacity   int
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (b *builder) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Len returns the number of elements in the array builder.
func (b *builder) Len() int { return b.length }

// Cap returns the total number of elements that can be stored without allocating additional memory.
func (b *builder) Cap() int { return b.capacity }

// NullN returns the number of null values in the array builder.
func (b *builder) NullN() int { return b.nulls }

func (b *builder) init(capacity int) error {
	toAlloc := bitutil.CeilByte(capacity) / 8
	buf, err := memory.AllocateBuffer(b.mem, toAlloc)
	if err != nil {
		return err
	}
	if b.nullBitmap != nil {
		b.nullBitmap.Release()
	}
	b.nullBitmap = buf
	b.capacity = capacity
	return nil
}

func (b *builder) resize(newBits int, init func(int) error) error {
	if b.nullBitmap == nil {
		return init(newBits)
	}

	newBytesN := bitutil.CeilByte(newBits) / 8
	oldBytesN := b.nullBitmap.Len()
	if err := b.nullBitmap.TryResize(newBytesN); err != nil {
		return err
	}
	b.capacity = newBits
	if oldBytesN < newBytesN {
		memory.Set(b.nullBitmap.Bytes()[oldBytesN:], 0)
	}
	if newBits < b.length {
		b.length = newBits
		b.nulls = newBits - bitutil.CountSetBits(b.nullBitmap.Bytes(), 0, newBits)
	}
	return nil
}

func (b *builder) reserve(elements int, resize func(int) error) error {
	if b.length+elements > b.capacity {
		newCap := bitutil.NextPowerOf2(b.length + elements)
		return resize(newCap)
	}
	return nil
}

// finishBitmap hands the validity bitmap over to the caller, trimmed to
// the builder's length, or returns nil when nothing was null.
func (b *builder) finishBitmap() *memory.Buffer {
	if b.nullBitmap == nil {
		return nil
	}

	bitmap := b.nullBitmap
	b.nullBitmap = nil
	if b.nulls == 0 {
		bitmap.Release()
		return nil
	}
	bitmap.Resize(int(bitutil.BytesForBits(int64(b.length))))
	return bitmap
}

func (b *builder) reset() {
	if b.nullBitmap != nil {
		b.nullBitmap.Release()
		b.nullBitmap = nil
	}

	b.nulls = 0
	b.length = 0
	b.capacity = 0
}

func (b *builder) unsafeAppendBoolToBitmap(isValid bool) {
	if isValid {
		bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	} else {
		b.nulls++
	}
	b.length++
}

func (b *builder) unsafeAppendBoolsToBitmap(valid []bool, length int) {
	if len(valid) == 0 {
		b.unsafeSetValid(length)
		return
	}

	for _, v := range valid {
		b.unsafeAppendBoolToBitmap(v)
	}
}

func (b *builder) unsafeSetValid(length int) {
	bitutil.SetBitsTo(b.nullBitmap.Bytes(), int64(b.length), int64(length), true)
	b.length += length
}
