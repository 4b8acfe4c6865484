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
	"github.com/apache/arrow/go/dictenc/arrow/internal/debug"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
)

// NumericBuilder builds a Numeric[T] array of the given data type.
type NumericBuilder[T arrow.NumericType] struct {
	builder

	dtype   arrow.FixedWidthDataType
	data    *memory.Buffer
	rawData []T
}

func NewNumericBuilder[T arrow.NumericType](mem memory.Allocator, dtype arrow.FixedWidthDataType) *NumericBuilder[T] {
	debug.Assert(dtype.Bytes() == arrow.SizeOf[T](), "arrow/array: numeric builder type width mismatch")
	return &NumericBuilder[T]{builder: builder{refCount: 1, mem: mem}, dtype: dtype}
}

func (b *NumericBuilder[T]) Type() arrow.DataType { return b.dtype }

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *NumericBuilder[T]) Release() {
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

func (b *NumericBuilder[T]) Append(v T) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

func (b *NumericBuilder[T]) AppendNull() {
	b.Reserve(1)
	b.UnsafeAppendBoolToBitmap(false)
}

func (b *NumericBuilder[T]) UnsafeAppend(v T) {
	b.unsafeAppendBoolToBitmap(true)
	b.rawData[b.length-1] = v
}

func (b *NumericBuilder[T]) UnsafeAppendBoolToBitmap(isValid bool) {
	b.unsafeAppendBoolToBitmap(isValid)
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *NumericBuilder[T]) AppendValues(v []T, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	copy(b.rawData[b.length:], v)
	b.unsafeAppendBoolsToBitmap(valid, len(v))
}

// Value returns the value appended at index i.
func (b *NumericBuilder[T]) Value(i int) T { return b.rawData[i] }

func (b *NumericBuilder[T]) init(capacity int) error {
	if err := b.builder.init(capacity); err != nil {
		return err
	}

	data, err := memory.AllocateBuffer(b.mem, capacity*arrow.SizeOf[T]())
	if err != nil {
		b.capacity = 0
		return err
	}
	if b.data != nil {
		b.data.Release()
	}
	b.data = data
	b.rawData = arrow.CastFromBytesTo[T](b.data.Bytes())
	return nil
}

// TryReserve ensures there is enough space for appending n elements,
// returning the allocation failure if there isn't.
func (b *NumericBuilder[T]) TryReserve(n int) error {
	return b.builder.reserve(n, b.tryResize)
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *NumericBuilder[T]) Reserve(n int) {
	if err := b.TryReserve(n); err != nil {
		panic(err)
	}
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may reduced.
func (b *NumericBuilder[T]) Resize(n int) {
	if err := b.tryResize(n); err != nil {
		panic(err)
	}
}

func (b *NumericBuilder[T]) tryResize(n int) error {
	nBuilder := n
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		return b.init(n)
	}

	if err := b.builder.resize(nBuilder, b.init); err != nil {
		return err
	}
	if err := b.data.TryResize(n * arrow.SizeOf[T]()); err != nil {
		return err
	}
	b.rawData = arrow.CastFromBytesTo[T](b.data.Bytes())
	return nil
}

// NewArray creates a Numeric array from the memory buffers used by the builder and resets the NumericBuilder
// so it can be used to build a new array.
func (b *NumericBuilder[T]) NewArray() Interface {
	return b.NewNumericArray()
}

// NewNumericArray creates a Numeric array from the memory buffers used by the builder and resets the NumericBuilder
// so it can be used to build a new array.
func (b *NumericBuilder[T]) NewNumericArray() (a *Numeric[T]) {
	data := b.newData()
	a = NewNumericData[T](data)
	data.Release()
	return
}

func (b *NumericBuilder[T]) newData() (data *Data) {
	bytesRequired := b.length * arrow.SizeOf[T]()
	if b.data != nil && bytesRequired < b.data.Len() {
		b.data.Resize(bytesRequired)
	}

	nulls := b.finishBitmap()
	data = NewData(b.dtype, b.length, []*memory.Buffer{nulls, b.data}, b.nulls, 0)
	if nulls != nil {
		nulls.Release()
	}
	b.reset()

	if b.data != nil {
		b.data.Release()
		b.data = nil
		b.rawData = nil
	}

	return
}

var _ Builder = (*NumericBuilder[int32])(nil)
