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
	"unsafe"
)

const (
	Int8SizeBytes    = 1
	Uint8SizeBytes   = 1
	Int16SizeBytes   = 2
	Uint16SizeBytes  = 2
	Int32SizeBytes   = 4
	Uint32SizeBytes  = 4
	Int64SizeBytes   = 8
	Uint64SizeBytes  = 8
	Float32SizeBytes = 4
	Float64SizeBytes = 8
)

// IntType is a type constraint for raw values represented as signed
// integer types by Arrow. We aren't just using constraints.Signed
// because we don't want to include the raw `int` type here whose size
// changes based on the architecture (int32 on 32-bit architectures and
// int64 on 64-bit architectures).
type IntType interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UintType is a type constraint for raw values represented as unsigned
// integer types.
type UintType interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FloatType is a type constraint for raw values for representing
// floating point values.
type FloatType interface {
	~float32 | ~float64
}

// NumericType is a type constraint for just signed/unsigned integers
// and float32/float64.
type NumericType interface {
	IntType | UintType | FloatType
}

// SizeOf returns the number of bytes a single value of T occupies.
func SizeOf[T NumericType]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// GetBytes reinterprets a slice of T to a slice of bytes.
func GetBytes[T any](in []T) []byte {
	var z T
	if len(in) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(in))), len(in)*int(unsafe.Sizeof(z)))
}

// CastFromBytesTo reinterprets the slice b to a slice of type T.
//
// NOTE: len(b) must be a multiple of T's size.
func CastFromBytesTo[T any](b []byte) []T {
	var z T
	size := int(unsafe.Sizeof(z))
	if cap(b) < size {
		return nil
	}
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	return unsafe.Slice(ptr, cap(b)/size)[:len(b)/size]
}

var (
	Int32Traits int32Traits
	Int64Traits int64Traits
)

type int32Traits struct{}

// BytesRequired returns the number of bytes required to store n elements in memory.
func (int32Traits) BytesRequired(n int) int { return Int32SizeBytes * n }

// CastFromBytes reinterprets the slice b to a slice of type int32.
//
// NOTE: len(b) must be a multiple of Int32SizeBytes.
func (int32Traits) CastFromBytes(b []byte) []int32 { return CastFromBytesTo[int32](b) }

// CastToBytes reinterprets the slice b to a slice of bytes.
func (int32Traits) CastToBytes(b []int32) []byte { return GetBytes(b) }

type int64Traits struct{}

// BytesRequired returns the number of bytes required to store n elements in memory.
func (int64Traits) BytesRequired(n int) int { return Int64SizeBytes * n }

// CastFromBytes reinterprets the slice b to a slice of type int64.
//
// NOTE: len(b) must be a multiple of Int64SizeBytes.
func (int64Traits) CastFromBytes(b []byte) []int64 { return CastFromBytesTo[int64](b) }

// CastToBytes reinterprets the slice b to a slice of bytes.
func (int64Traits) CastToBytes(b []int64) []byte { return GetBytes(b) }
