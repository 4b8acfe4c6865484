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
	"fmt"
	"sync/atomic"

	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/arrow/bitutil"
	"github.com/apache/arrow/go/dictenc/arrow/internal/debug"
	"github.com/goccy/go-json"
)

// Interface represents an immutable sequence of values.
type Interface interface {
	json.Marshaler
	fmt.Stringer

	// DataType returns the type metadata for this instance.
	DataType() arrow.DataType

	// NullN returns the number of null values in the array.
	NullN() int

	// NullBitmapBytes returns a byte slice of the validity bitmap.
	NullBitmapBytes() []byte

	// IsNull returns true if value at index is null.
	// NOTE: IsNull will panic if NullBitmapBytes is not empty and 0 > i ≥ Len.
	IsNull(i int) bool

	// IsValid returns true if value at index is not null.
	// NOTE: IsValid will panic if NullBitmapBytes is not empty and 0 > i ≥ Len.
	IsValid(i int) bool

	Data() *Data

	// Len returns the number of elements in the array.
	Len() int

	// Retain increases the reference count by 1.
	// Retain may be called simultaneously from multiple goroutines.
	Retain()

	// Release decreases the reference count by 1.
	// Release may be called simultaneously from multiple goroutines.
	// When the reference count goes to zero, the memory is freed.
	Release()

	getOneForMarshal(i int) interface{}
}

type array struct {
	refCount        int64
	data            *Data
	nullBitmapBytes []byte
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (a *array) Retain() {
	atomic.AddInt64(&a.refCount, 1)
}

// Release decreases the reference count by 1.
// Release may be called simultaneously from multiple goroutines.
// When the reference count goes to zero, the memory is freed.
func (a *array) Release() {
	debug.Assert(atomic.LoadInt64(&a.refCount) > 0, "too many releases")

	if atomic.AddInt64(&a.refCount, -1) == 0 {
		a.data.Release()
		a.data, a.nullBitmapBytes = nil, nil
	}
}

// DataType returns the type metadata for this instance.
func (a *array) DataType() arrow.DataType { return a.data.dtype }

// NullN returns the number of null values in the array.
func (a *array) NullN() int { return a.data.nulls }

// NullBitmapBytes returns a byte slice of the validity bitmap.
func (a *array) NullBitmapBytes() []byte { return a.nullBitmapBytes }

func (a *array) Data() *Data { return a.data }

// Len returns the number of elements in the array.
func (a *array) Len() int { return a.data.length }

// IsNull returns true if value at index is null.
// NOTE: IsNull will panic if NullBitmapBytes is not empty and 0 > i ≥ Len.
func (a *array) IsNull(i int) bool {
	return len(a.nullBitmapBytes) != 0 && bitutil.BitIsNotSet(a.nullBitmapBytes, a.data.offset+i)
}

// IsValid returns true if value at index is not null.
// NOTE: IsValid will panic if NullBitmapBytes is not empty and 0 > i ≥ Len.
func (a *array) IsValid(i int) bool {
	return len(a.nullBitmapBytes) == 0 || bitutil.BitIsSet(a.nullBitmapBytes, a.data.offset+i)
}

func (a *array) setData(data *Data) {
	// Retain before releasing in case a.data is the same as data.
	data.Retain()

	if a.data != nil {
		a.data.Release()
	}

	if len(data.buffers) > 0 && data.buffers[0] != nil {
		a.nullBitmapBytes = data.buffers[0].Bytes()
	}
	a.data = data
}

func marshalValues(a Interface) ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		vals[i] = a.getOneForMarshal(i)
	}
	return json.Marshal(vals)
}

// MakeFromData constructs a strongly-typed array instance from generic Data.
func MakeFromData(data *Data) Interface {
	switch data.dtype.ID() {
	case arrow.BOOL:
		return NewBooleanData(data)
	case arrow.INT8:
		return NewNumericData[int8](data)
	case arrow.UINT8:
		return NewNumericData[uint8](data)
	case arrow.INT16:
		return NewNumericData[int16](data)
	case arrow.UINT16:
		return NewNumericData[uint16](data)
	case arrow.INT32, arrow.DATE32, arrow.TIME32:
		return NewNumericData[int32](data)
	case arrow.UINT32:
		return NewNumericData[uint32](data)
	case arrow.INT64, arrow.DATE64, arrow.TIME64, arrow.TIMESTAMP, arrow.DURATION:
		return NewNumericData[int64](data)
	case arrow.UINT64:
		return NewNumericData[uint64](data)
	case arrow.FLOAT32:
		return NewNumericData[float32](data)
	case arrow.FLOAT64:
		return NewNumericData[float64](data)
	case arrow.BINARY:
		return NewBinaryData(data)
	case arrow.STRING:
		return NewStringData(data)
	case arrow.LARGE_BINARY:
		return NewLargeBinaryData(data)
	case arrow.LARGE_STRING:
		return NewLargeStringData(data)
	case arrow.FIXED_SIZE_BINARY:
		return NewFixedSizeBinaryData(data)
	case arrow.DICTIONARY:
		return NewDictionaryData(data)
	}
	panic(fmt.Errorf("%w: array type %s", arrow.ErrNotImplemented, data.dtype))
}
