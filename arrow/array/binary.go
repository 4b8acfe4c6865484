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
	"strings"
	"unsafe"

	"github.com/apache/arrow/go/dictenc/arrow"
)

type offsetType interface{ int32 | int64 }

// binaryBase holds the offsets and bytes shared by the variable length
// binary and string arrays.
type binaryBase[O offsetType] struct {
	array
	valueOffsets []O
	valueBytes   []byte
}

func (a *binaryBase[O]) value(i int) []byte {
	idx := a.data.offset + i
	return a.valueBytes[a.valueOffsets[idx]:a.valueOffsets[idx+1]]
}

func (a *binaryBase[O]) ValueOffset(i int) int { return int(a.valueOffsets[a.data.offset+i]) }

func (a *binaryBase[O]) ValueLen(i int) int {
	idx := a.data.offset + i
	return int(a.valueOffsets[idx+1] - a.valueOffsets[idx])
}

func (a *binaryBase[O]) ValueOffsets() []O  { return a.valueOffsets }
func (a *binaryBase[O]) ValueBytes() []byte { return a.valueBytes }

func (a *binaryBase[O]) setData(data *Data) {
	if len(data.buffers) != 3 {
		panic("len(data.buffers) != 3")
	}

	a.array.setData(data)

	if valueData := data.buffers[2]; valueData != nil {
		a.valueBytes = valueData.Bytes()
	}

	if valueOffsets := data.buffers[1]; valueOffsets != nil {
		a.valueOffsets = arrow.CastFromBytesTo[O](valueOffsets.Bytes())
	}
}

func (a *binaryBase[O]) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		switch {
		case a.IsNull(i):
			o.WriteString("(null)")
		default:
			fmt.Fprintf(o, "%q", a.value(i))
		}
	}
	o.WriteString("]")
	return o.String()
}

func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// A type which represents an immutable sequence of variable-length binary strings.
type Binary struct {
	binaryBase[int32]
}

// NewBinaryData constructs a new Binary array from data.
func NewBinaryData(data *Data) *Binary {
	a := &Binary{}
	a.refCount = 1
	a.setData(data)
	return a
}

// Value returns the slice at index i. This value should not be mutated.
func (a *Binary) Value(i int) []byte { return a.value(i) }

// ValueString returns the string at index i without performing additional allocations.
// The string is only valid for the lifetime of the Binary array.
func (a *Binary) ValueString(i int) string { return bytesToString(a.value(i)) }

func (a *Binary) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

func (a *Binary) MarshalJSON() ([]byte, error) { return marshalValues(a) }

// LargeBinary is Binary with 64-bit offsets.
type LargeBinary struct {
	binaryBase[int64]
}

func NewLargeBinaryData(data *Data) *LargeBinary {
	a := &LargeBinary{}
	a.refCount = 1
	a.setData(data)
	return a
}

func (a *LargeBinary) Value(i int) []byte { return a.value(i) }

func (a *LargeBinary) ValueString(i int) string { return bytesToString(a.value(i)) }

func (a *LargeBinary) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

func (a *LargeBinary) MarshalJSON() ([]byte, error) { return marshalValues(a) }

// String represents an immutable sequence of variable-length UTF-8 strings.
type String struct {
	binaryBase[int32]
}

// NewStringData constructs a new String array from data.
func NewStringData(data *Data) *String {
	a := &String{}
	a.refCount = 1
	a.setData(data)
	return a
}

// Value returns the string at index i. It is only valid for the lifetime
// of the array.
func (a *String) Value(i int) string { return bytesToString(a.value(i)) }

func (a *String) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

func (a *String) MarshalJSON() ([]byte, error) { return marshalValues(a) }

// LargeString is String with 64-bit offsets.
type LargeString struct {
	binaryBase[int64]
}

func NewLargeStringData(data *Data) *LargeString {
	a := &LargeString{}
	a.refCount = 1
	a.setData(data)
	return a
}

func (a *LargeString) Value(i int) string { return bytesToString(a.value(i)) }

func (a *LargeString) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

func (a *LargeString) MarshalJSON() ([]byte, error) { return marshalValues(a) }

var (
	_ Interface = (*Binary)(nil)
	_ Interface = (*LargeBinary)(nil)
	_ Interface = (*String)(nil)
	_ Interface = (*LargeString)(nil)
)
