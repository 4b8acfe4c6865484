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

	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/arrow/bitutil"
	"github.com/apache/arrow/go/dictenc/arrow/internal/debug"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
)

type BooleanBuilder struct {
	builder

	data    *memory.Buffer
	rawData []byte
}

func NewBooleanBuilder(mem memory.Allocator) *BooleanBuilder {
	return &BooleanBuilder{builder: builder{refCount: 1, mem: mem}}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (b *BooleanBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.reset()
		if b.data != nil {
			b.data.Release()
			b.data = nil
			b.rawData = nil
		}
	}
}

func (b *BooleanBuilder) Append(v bool) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

func (b *BooleanBuilder) AppendNull() {
	b.Reserve(1)
	b.UnsafeAppendBoolToBitmap(false)
}

func (b *BooleanBuilder) UnsafeAppend(v bool) {
	bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	bitutil.SetBitTo(b.rawData, b.length, v)
	b.length++
}

func (b *BooleanBuilder) UnsafeAppendBoolToBitmap(isValid bool) {
	b.unsafeAppendBoolToBitmap(isValid)
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *BooleanBuilder) AppendValues(v []bool, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	for i, vv := range v {
		bitutil.SetBitTo(b.rawData, b.length+i, vv)
	}
	b.unsafeAppendBoolsToBitmap(valid, len(v))
}

func (b *BooleanBuilder) init(capacity int) error {
	if err := b.builder.init(capacity); err != nil {
		return err
	}

	data, err := memory.AllocateBuffer(b.mem, int(bitutil.BytesForBits(int64(capacity))))
	if err != nil {
		b.capacity = 0
		return err
	}
	if b.data != nil {
		b.data.Release()
	}
	b.data = data
	b.rawData = b.data.Bytes()
	return nil
}

// TryReserve ensures there is enough space for appending n elements,
// returning the allocation failure if there isn't and the allocator
// is unable to provide it.
func (b *BooleanBuilder) TryReserve(n int) error {
	return b.builder.reserve(n, b.tryResize)
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *BooleanBuilder) Reserve(n int) {
	if err := b.TryReserve(n); err != nil {
		panic(err)
	}
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
func (b *BooleanBuilder) Resize(n int) {
	if err := b.tryResize(n); err != nil {
		panic(err)
	}
}

func (b *BooleanBuilder) tryResize(n int) error {
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		return b.init(n)
	}

	if err := b.builder.resize(n, b.init); err != nil {
		return err
	}
	if err := b.data.TryResize(int(bitutil.BytesForBits(int64(n)))); err != nil {
		return err
	}
	b.rawData = b.data.Bytes()
	return nil
}

// NewArray creates a Boolean array from the memory buffers used by the builder and resets the BooleanBuilder
// so it can be used to build a new array.
func (b *BooleanBuilder) NewArray() Interface {
	return b.NewBooleanArray()
}

// NewBooleanArray creates a Boolean array from the memory buffers used by the builder and resets the BooleanBuilder
// so it can be used to build a new array.
func (b *BooleanBuilder) NewBooleanArray() (a *Boolean) {
	data := b.newData()
	a = NewBooleanData(data)
	data.Release()
	return
}

func (b *BooleanBuilder) newData() *Data {
	bytesRequired := int(bitutil.BytesForBits(int64(b.length)))
	if b.data != nil && bytesRequired < b.data.Len() {
		b.data.Resize(bytesRequired)
	}

	nulls := b.finishBitmap()
	res := NewData(arrow.FixedWidthTypes.Boolean, b.length, []*memory.Buffer{nulls, b.data}, b.nulls, 0)
	if nulls != nil {
		nulls.Release()
	}
	b.reset()

	if b.data != nil {
		b.data.Release()
		b.data = nil
		b.rawData = nil
	}

	return res
}

var _ Builder = (*BooleanBuilder)(nil)
