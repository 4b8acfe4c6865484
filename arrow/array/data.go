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
	"github.com/goccy/go-json"
)

// A type which represents the memory and metadata for an Arrow array.
type Data struct {
	refCount   int64
	dtype      arrow.DataType
	nulls      int
	offset     int
	length     int
	buffers    []*memory.Buffer // nil entries are absent buffers
	dictionary *Data            // only populated for dictionary arrays
}

// NewData creates a new Data, retaining every non-nil buffer.
func NewData(dtype arrow.DataType, length int, buffers []*memory.Buffer, nulls, offset int) *Data {
	for _, b := range buffers {
		if b != nil {
			b.Retain()
		}
	}

	return &Data{
		refCount: 1,
		dtype:    dtype,
		nulls:    nulls,
		length:   length,
		offset:   offset,
		buffers:  buffers,
	}
}

// NewDataWithDictionary creates a new Data for a dictionary array whose
// buffers hold the indices and whose values are dict. dict is retained.
func NewDataWithDictionary(dtype arrow.DataType, length int, buffers []*memory.Buffer, nulls, offset int, dict *Data) *Data {
	data := NewData(dtype, length, buffers, nulls, offset)
	if dict != nil {
		dict.Retain()
	}
	data.dictionary = dict
	return data
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (d *Data) Retain() {
	atomic.AddInt64(&d.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (d *Data) Release() {
	debug.Assert(atomic.LoadInt64(&d.refCount) > 0, "too many releases")

	if atomic.AddInt64(&d.refCount, -1) == 0 {
		for _, b := range d.buffers {
			if b != nil {
				b.Release()
			}
		}

		if d.dictionary != nil {
			d.dictionary.Release()
		}
		d.buffers, d.dictionary = nil, nil
	}
}

// DataType returns the DataType of the data.
func (d *Data) DataType() arrow.DataType { return d.dtype }

// NullN returns the number of nulls.
func (d *Data) NullN() int { return d.nulls }

// Len returns the length.
func (d *Data) Len() int { return d.length }

// Offset returns the offset.
func (d *Data) Offset() int { return d.offset }

// Buffers returns the buffers. Absent buffers are nil.
func (d *Data) Buffers() []*memory.Buffer { return d.buffers }

// Dictionary returns the dictionary values of a dictionary array, or nil.
func (d *Data) Dictionary() *Data { return d.dictionary }

// MarshalJSON renders the values d holds as a JSON array.
func (d *Data) MarshalJSON() ([]byte, error) {
	arr := MakeFromData(d)
	defer arr.Release()
	return json.Marshal(arr)
}
