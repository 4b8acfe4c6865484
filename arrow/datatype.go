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

package arrow

import (
	"fmt"
)

// Type is a logical type. They can be expressed as
// either a primitive physical type (bytes or bits of some fixed size), or
// another data type (e.g. a timestamp encoded as an int64)
type Type int

const (
	// NULL type having no physical storage
	NULL Type = iota

	// BOOL is a 1 bit, LSB bit-packed ordering
	BOOL

	// UINT8 is an Unsigned 8-bit little-endian integer
	UINT8

	// INT8 is a Signed 8-bit little-endian integer
	INT8

	// UINT16 is an Unsigned 16-bit little-endian integer
	UINT16

	// INT16 is a Signed 16-bit little-endian integer
	INT16

	// UINT32 is an Unsigned 32-bit little-endian integer
	UINT32

	// INT32 is a Signed 32-bit little-endian integer
	INT32

	// UINT64 is an Unsigned 64-bit little-endian integer
	UINT64

	// INT64 is a Signed 64-bit little-endian integer
	INT64

	// FLOAT32 is a 4-byte floating point value
	FLOAT32

	// FLOAT64 is an 8-byte floating point value
	FLOAT64

	// STRING is a UTF8 variable-length string
	STRING

	// BINARY is a Variable-length byte type (no guarantee of UTF8-ness)
	BINARY

	// FIXED_SIZE_BINARY is a binary where each value occupies the same number of bytes
	FIXED_SIZE_BINARY

	// DATE32 is int32 days since the UNIX epoch
	DATE32

	// DATE64 is int64 milliseconds since the UNIX epoch
	DATE64

	// TIMESTAMP is an exact timestamp encoded with int64 since UNIX epoch
	TIMESTAMP

	// TIME32 is a signed 32-bit integer, representing either seconds or
	// milliseconds since midnight
	TIME32

	// TIME64 is a signed 64-bit integer, representing either microseconds or
	// nanoseconds since midnight
	TIME64

	// DURATION is a measure of elapsed time in either seconds, milliseconds,
	// microseconds or nanoseconds.
	DURATION

	// DICTIONARY aka Category type
	DICTIONARY

	// LARGE_STRING is like STRING, but with 64-bit offsets
	LARGE_STRING

	// LARGE_BINARY is like BINARY, but with 64-bit offsets
	LARGE_BINARY
)

var typeNames = [...]string{
	NULL:              "NULL",
	BOOL:              "BOOL",
	UINT8:             "UINT8",
	INT8:              "INT8",
	UINT16:            "UINT16",
	INT16:             "INT16",
	UINT32:            "UINT32",
	INT32:             "INT32",
	UINT64:            "UINT64",
	INT64:             "INT64",
	FLOAT32:           "FLOAT32",
	FLOAT64:           "FLOAT64",
	STRING:            "STRING",
	BINARY:            "BINARY",
	FIXED_SIZE_BINARY: "FIXED_SIZE_BINARY",
	DATE32:            "DATE32",
	DATE64:            "DATE64",
	TIMESTAMP:         "TIMESTAMP",
	TIME32:            "TIME32",
	TIME64:            "TIME64",
	DURATION:          "DURATION",
	DICTIONARY:        "DICTIONARY",
	LARGE_STRING:      "LARGE_STRING",
	LARGE_BINARY:      "LARGE_BINARY",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// DataType is the representation of an Arrow type.
type DataType interface {
	fmt.Stringer
	ID() Type
	// Name is name of the data type.
	Name() string
}

// FixedWidthDataType is the representation of an Arrow type that
// requires a fixed number of bits in memory for each element.
type FixedWidthDataType interface {
	DataType
	// BitWidth returns the number of bits required to store a single element of this data type in memory.
	BitWidth() int
	// Bytes returns the number of bytes required to store a single element of this data type in memory.
	Bytes() int
}

// BinaryDataType is the representation of a variable-length binary type,
// utf8 or not, with 32 or 64-bit offsets.
type BinaryDataType interface {
	DataType
	IsUtf8() bool
	OffsetTypeTraits() OffsetTraits
	binary()
}

// IsPrimitive reports whether values of the type are stored as one
// integer or floating point number each.
func IsPrimitive(t Type) bool {
	switch t {
	case UINT8, INT8, UINT16, INT16, UINT32, INT32, UINT64, INT64,
		FLOAT32, FLOAT64, DATE32, DATE64, TIMESTAMP, TIME32, TIME64, DURATION:
		return true
	}
	return false
}

// IsLargeBinaryLike reports whether the type uses 64-bit offsets.
func IsLargeBinaryLike(t Type) bool {
	switch t {
	case LARGE_BINARY, LARGE_STRING:
		return true
	}
	return false
}

// IsBinaryLike reports whether the type uses 32-bit offsets.
func IsBinaryLike(t Type) bool {
	switch t {
	case BINARY, STRING:
		return true
	}
	return false
}

// DictionaryType represents categorical or dictionary-encoded in-memory data
// It contains a dictionary-encoded value type (any type) and an index type
// (any integer type).
type DictionaryType struct {
	IndexType FixedWidthDataType
	ValueType DataType
	Ordered   bool
}

func (*DictionaryType) ID() Type        { return DICTIONARY }
func (*DictionaryType) Name() string    { return "dictionary" }
func (d *DictionaryType) BitWidth() int { return d.IndexType.BitWidth() }
func (d *DictionaryType) Bytes() int    { return d.IndexType.Bytes() }
func (d *DictionaryType) String() string {
	return fmt.Sprintf("%s<values=%s, indices=%s, ordered=%t>",
		d.Name(), d.ValueType, d.IndexType, d.Ordered)
}

// TypeEqual checks if two DataType are the same. Parametric types are equal
// when their parameters are equal as well.
func TypeEqual(left, right DataType) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case left.ID() != right.ID():
		return false
	}

	switch l := left.(type) {
	case *DictionaryType:
		r := right.(*DictionaryType)
		return TypeEqual(l.IndexType, r.IndexType) &&
			TypeEqual(l.ValueType, r.ValueType) &&
			l.Ordered == r.Ordered
	default:
		return left.String() == right.String()
	}
}
