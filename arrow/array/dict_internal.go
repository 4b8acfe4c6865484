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
	"math"

	"github.com/JohnCGriffin/overflow"
	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/arrow/bitutil"
	"github.com/apache/arrow/go/dictenc/arrow/internal/debug"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
	"github.com/apache/arrow/go/dictenc/internal/hashing"
)

// The Get*DictArrayData functions turn the distinct values collected in a
// memo table into the Data of a dictionary, starting at startOffset so
// that only the values added since a previous dictionary was emitted
// become part of a delta dictionary.
//
// Each call allocates fresh buffers from mem which are owned by the
// returned Data. If any allocation fails, everything allocated by that
// call is released before the error is returned.

func validateDictOffset(memo hashing.MemoTable, startOffset int) error {
	switch {
	case startOffset < 0:
		return fmt.Errorf("%w: dictionary start offset must be non-negative, got %d",
			arrow.ErrInvalid, startOffset)
	case startOffset > memo.Size():
		return fmt.Errorf("%w: dictionary start offset %d is beyond the %d values of the memo table",
			arrow.ErrInvalid, startOffset, memo.Size())
	}
	return nil
}

// computeNullBitmap returns the validity bitmap for the memo table
// values from startOffset onwards. If the null entry isn't part of that
// range, no bitmap is allocated and nullN is zero.
func computeNullBitmap(mem memory.Allocator, memo hashing.MemoTable, startOffset int) (nullN int, bitmap *memory.Buffer, err error) {
	nullIdx, ok := memo.GetNull()
	if !ok || nullIdx < startOffset {
		return 0, nil, nil
	}

	dictLen := memo.Size() - startOffset
	bitmap, err = memory.AllocateBuffer(mem, int(bitutil.BytesForBits(int64(dictLen))))
	if err != nil {
		debug.Logf("arrow/array: allocating dictionary null bitmap for %d values: %v", dictLen, err)
		return 0, nil, fmt.Errorf("arrow/array: dictionary null bitmap: %w", err)
	}

	memory.Set(bitmap.Bytes(), 0xFF)
	bitutil.ClearBit(bitmap.Bytes(), nullIdx-startOffset)
	return 1, bitmap, nil
}

// dictValuesSize returns the size of n values of width bytes each.
func dictValuesSize(n, width int) (int, error) {
	size, ok := overflow.Mul(n, width)
	if !ok {
		return 0, fmt.Errorf("%w: dictionary of %d values of %d bytes is too large",
			arrow.ErrInvalid, n, width)
	}
	return size, nil
}

// checkOffsetRange reports whether valuesSize bytes can be addressed by
// the offsets of dt.
func checkOffsetRange(dt arrow.BinaryDataType, valuesSize int) error {
	if !arrow.IsLargeBinaryLike(dt.ID()) && valuesSize > math.MaxInt32 {
		return fmt.Errorf("%w: %d bytes of dictionary values overflow the 32-bit offsets of %s",
			arrow.ErrInvalid, valuesSize, dt)
	}
	return nil
}

func allocDictValues(mem memory.Allocator, size int) (*memory.Buffer, error) {
	buf, err := memory.AllocateBuffer(mem, size)
	if err != nil {
		debug.Logf("arrow/array: allocating %d bytes of dictionary values: %v", size, err)
		return nil, fmt.Errorf("arrow/array: dictionary values: %w", err)
	}
	return buf, nil
}

// GetBooleanDictArrayData returns the boolean dictionary held by memo,
// from startOffset onwards.
func GetBooleanDictArrayData(mem memory.Allocator, memo *hashing.BooleanMemoTable, startOffset int) (*Data, error) {
	if err := validateDictOffset(memo, startOffset); err != nil {
		return nil, err
	}

	bldr := NewBooleanBuilder(mem)
	defer bldr.Release()

	if err := bldr.TryReserve(memo.Size() - startOffset); err != nil {
		debug.Logf("arrow/array: reserving boolean dictionary: %v", err)
		return nil, fmt.Errorf("arrow/array: boolean dictionary: %w", err)
	}

	// at most three iterations, so appending is as good as a bulk copy
	nullIdx, hasNull := memo.GetNull()
	for i := startOffset; i < memo.Size(); i++ {
		if hasNull && i == nullIdx {
			bldr.UnsafeAppendBoolToBitmap(false)
			continue
		}
		bldr.UnsafeAppend(memo.Value(i))
	}

	return bldr.newData(), nil
}

// GetNumericDictArrayData returns the dictionary of fixed width values
// held by memo, from startOffset onwards, as Data of type dt. dt must be
// a numeric or temporal type exactly as wide as T.
func GetNumericDictArrayData[T arrow.NumericType](mem memory.Allocator, dt arrow.FixedWidthDataType, memo *hashing.ScalarMemoTable[T], startOffset int) (*Data, error) {
	if err := validateDictOffset(memo, startOffset); err != nil {
		return nil, err
	}

	if !arrow.IsPrimitive(dt.ID()) {
		return nil, fmt.Errorf("%w: %s is not a numeric dictionary type",
			arrow.ErrInvalid, dt)
	}

	width := arrow.SizeOf[T]()
	if dt.BitWidth() != width*8 {
		return nil, fmt.Errorf("%w: dictionary type %s does not match %d byte wide memo table values",
			arrow.ErrInvalid, dt, width)
	}

	dictLen := memo.Size() - startOffset
	size, err := dictValuesSize(dictLen, width)
	if err != nil {
		return nil, err
	}

	nullN, bitmap, err := computeNullBitmap(mem, memo, startOffset)
	if err != nil {
		return nil, err
	}
	if bitmap != nil {
		defer bitmap.Release()
	}

	values, err := allocDictValues(mem, size)
	if err != nil {
		return nil, err
	}
	defer values.Release()

	memo.WriteOutSubset(startOffset, values.Bytes())
	return NewData(dt, dictLen, []*memory.Buffer{bitmap, values}, nullN, 0), nil
}

// GetBinaryDictArrayData returns the dictionary of variable length values
// held by memo, from startOffset onwards. Large types get 64-bit offsets,
// all others 32-bit ones. The first offset is always zero. The offsets
// buffer is absent for an empty dictionary and the data buffer is absent
// when every value is empty.
func GetBinaryDictArrayData(mem memory.Allocator, dt arrow.BinaryDataType, memo *hashing.BinaryMemoTable, startOffset int) (*Data, error) {
	if err := validateDictOffset(memo, startOffset); err != nil {
		return nil, err
	}

	large := arrow.IsLargeBinaryLike(dt.ID())
	valuesSize := memo.ValuesSizeSubset(startOffset)
	if err := checkOffsetRange(dt, valuesSize); err != nil {
		return nil, err
	}

	nullN, bitmap, err := computeNullBitmap(mem, memo, startOffset)
	if err != nil {
		return nil, err
	}
	if bitmap != nil {
		defer bitmap.Release()
	}

	var (
		dictLen = memo.Size() - startOffset
		offsets *memory.Buffer
		values  *memory.Buffer
	)

	if dictLen > 0 {
		offsets, err = allocDictValues(mem, dt.OffsetTypeTraits().BytesRequired(dictLen+1))
		if err != nil {
			return nil, err
		}
		defer offsets.Release()

		if large {
			memo.CopyLargeOffsetsSubset(startOffset, arrow.Int64Traits.CastFromBytes(offsets.Bytes()))
		} else {
			memo.CopyOffsetsSubset(startOffset, arrow.Int32Traits.CastFromBytes(offsets.Bytes()))
		}
	}

	if valuesSize > 0 {
		values, err = allocDictValues(mem, valuesSize)
		if err != nil {
			return nil, err
		}
		defer values.Release()

		memo.CopyValuesSubset(startOffset, values.Bytes())
	}

	return NewData(dt, dictLen, []*memory.Buffer{bitmap, offsets, values}, nullN, 0), nil
}

// GetFixedSizeBinaryDictArrayData returns the dictionary of fixed size
// binary values held by memo, from startOffset onwards. The null entry,
// if emitted, is a run of zero bytes.
func GetFixedSizeBinaryDictArrayData(mem memory.Allocator, dt *arrow.FixedSizeBinaryType, memo *hashing.BinaryMemoTable, startOffset int) (*Data, error) {
	if err := validateDictOffset(memo, startOffset); err != nil {
		return nil, err
	}

	dictLen := memo.Size() - startOffset
	size, err := dictValuesSize(dictLen, dt.ByteWidth)
	if err != nil {
		return nil, err
	}

	nullN, bitmap, err := computeNullBitmap(mem, memo, startOffset)
	if err != nil {
		return nil, err
	}
	if bitmap != nil {
		defer bitmap.Release()
	}

	debug.Assert(memo.ValuesSizeSubset(startOffset) == (dictLen-nullN)*dt.ByteWidth,
		"arrow/array: fixed size binary memo table holds values of the wrong width")

	values, err := allocDictValues(mem, size)
	if err != nil {
		return nil, err
	}
	defer values.Release()

	memo.CopyFixedWidthValuesSubset(startOffset, dt.ByteWidth, values.Bytes())
	return NewData(dt, dictLen, []*memory.Buffer{bitmap, values}, nullN, 0), nil
}
