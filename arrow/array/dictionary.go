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
	"github.com/apache/arrow/go/dictenc/arrow/internal/debug"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
	"github.com/apache/arrow/go/dictenc/internal/hashing"
)

// Dictionary represents the type for dictionary-encoded data with a data
// dependent dictionary.
//
// A dictionary array contains an array of non-negative integers (the "dictionary
// indices") along with a data type containing a "dictionary" corresponding to
// the distinct values represented in the data.
//
// For example, the array:
//
//	["foo", "bar", "foo", "bar", "foo", "bar"]
//
// with dictionary ["bar", "foo"], would have the representation of:
//
//	indices: [1, 0, 1, 0, 1, 0]
//	dictionary: ["bar", "foo"]
//
// The indices in principle may be any integer type.
type Dictionary struct {
	array
	dictType *arrow.DictionaryType
	indices  Interface
	dict     Interface
}

// NewDictionaryArray returns a dictionary array built from the indices and
// dictionary values. Both are retained.
func NewDictionaryArray(typ *arrow.DictionaryType, indices, dict Interface) *Dictionary {
	idx := indices.Data()
	data := NewDataWithDictionary(typ, idx.length, idx.buffers, idx.nulls, idx.offset, dict.Data())
	defer data.Release()
	return NewDictionaryData(data)
}

// NewDictionaryData returns a dictionary array from data, whose type must
// be a *arrow.DictionaryType and which must carry its dictionary.
func NewDictionaryData(data *Data) *Dictionary {
	a := &Dictionary{}
	a.refCount = 1
	a.setData(data)
	return a
}

func (d *Dictionary) Retain() {
	atomic.AddInt64(&d.refCount, 1)
}

func (d *Dictionary) Release() {
	debug.Assert(atomic.LoadInt64(&d.refCount) > 0, "too many releases")

	if atomic.AddInt64(&d.refCount, -1) == 0 {
		d.data.Release()
		d.data, d.nullBitmapBytes = nil, nil
		d.indices.Release()
		d.indices = nil
		if d.dict != nil {
			d.dict.Release()
			d.dict = nil
		}
	}
}

func (d *Dictionary) setData(data *Data) {
	if data.dictionary == nil {
		panic("arrow/array: no dictionary set in Data for Dictionary array")
	}

	dictType, ok := data.dtype.(*arrow.DictionaryType)
	if !ok {
		panic(fmt.Errorf("%w: dictionary array from data of type %s", arrow.ErrType, data.dtype))
	}

	d.array.setData(data)
	d.dictType = dictType

	debug.Assert(arrow.TypeEqual(d.dictType.ValueType, data.dictionary.DataType()), "mismatched dictionary value types")

	indexData := NewData(dictType.IndexType, data.length, data.buffers, data.nulls, data.offset)
	defer indexData.Release()
	d.indices = MakeFromData(indexData)
}

// Dictionary returns the values array that makes up the dictionary for this
// array. The returned array needs to be explicitly released by calling Release.
func (d *Dictionary) Dictionary() Interface {
	if d.dict == nil {
		d.dict = MakeFromData(d.data.dictionary)
	}
	d.dict.Retain()
	return d.dict
}

// Indices returns a reference to the underlying Array of indices as its own array which needs to be
// manually released accordingly by calling Release on it.
func (d *Dictionary) Indices() Interface {
	d.indices.Retain()
	return d.indices
}

// GetValueIndex returns the dictionary index of the value at i.
func (d *Dictionary) GetValueIndex(i int) int {
	indiceData := d.data.buffers[1].Bytes()
	// indices are never negative, so the unsigned value
	// can be used regardless.
	switch d.dictType.IndexType.ID() {
	case arrow.UINT8, arrow.INT8:
		return int(indiceData[d.data.offset+i])
	case arrow.UINT16, arrow.INT16:
		return int(arrow.CastFromBytesTo[uint16](indiceData)[d.data.offset+i])
	case arrow.UINT32, arrow.INT32:
		return int(arrow.CastFromBytesTo[uint32](indiceData)[d.data.offset+i])
	case arrow.UINT64, arrow.INT64:
		return int(arrow.CastFromBytesTo[uint64](indiceData)[d.data.offset+i])
	}
	debug.Assert(false, "unreachable dictionary index")
	return -1
}

func (d *Dictionary) String() string {
	dict := d.Dictionary()
	defer dict.Release()

	return fmt.Sprintf("{ dictionary: %v\n  indices: %v }", dict, d.indices)
}

func (d *Dictionary) getOneForMarshal(i int) interface{} {
	if d.IsNull(i) {
		return nil
	}

	if d.dict == nil {
		d.dict = MakeFromData(d.data.dictionary)
	}
	return d.dict.getOneForMarshal(d.GetValueIndex(i))
}

func (d *Dictionary) MarshalJSON() ([]byte, error) { return marshalValues(d) }

// dictionaryBuilder holds what every dictionary builder shares: the memo
// table collecting the distinct values, the int32 index column and the
// position in the memo table the next delta dictionary starts from.
type dictionaryBuilder struct {
	builder

	dt          *arrow.DictionaryType
	deltaOffset int
	memoTable   hashing.MemoTable
	idxBuilder  *NumericBuilder[int32]

	// materialize returns the dictionary values from the given offset
	materialize func(mem memory.Allocator, offset int) (*Data, error)
}

func newDictionaryBuilder(mem memory.Allocator, valueType arrow.DataType, memo hashing.MemoTable) dictionaryBuilder {
	return dictionaryBuilder{
		builder:    builder{refCount: 1, mem: mem},
		dt:         &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: valueType},
		memoTable:  memo,
		idxBuilder: NewNumericBuilder[int32](mem, arrow.PrimitiveTypes.Int32),
	}
}

func (b *dictionaryBuilder) Type() arrow.DataType { return b.dt }

func (b *dictionaryBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.idxBuilder.Release()
		b.memoTable.Reset()
	}
}

// AppendNull appends a null index. The dictionary is left untouched.
func (b *dictionaryBuilder) AppendNull() {
	b.length += 1
	b.nulls += 1
	b.idxBuilder.AppendNull()
}

// AppendEncodedNull makes null a value of the dictionary, inserting it if
// it isn't there yet, and appends a valid index pointing at it.
func (b *dictionaryBuilder) AppendEncodedNull() {
	idx, _ := b.memoTable.GetOrInsertNull()
	b.appendIndex(idx)
}

func (b *dictionaryBuilder) appendIndex(idx int) {
	b.length += 1
	b.idxBuilder.Append(int32(idx))
}

func (b *dictionaryBuilder) Reserve(n int) { b.idxBuilder.Reserve(n) }

func (b *dictionaryBuilder) Cap() int { return b.idxBuilder.Cap() }

// DictionarySize returns the number of distinct values collected so far.
func (b *dictionaryBuilder) DictionarySize() int { return b.memoTable.Size() }

// ResetFull drops the appended indices along with every collected value,
// so the next dictionary starts from scratch.
func (b *dictionaryBuilder) ResetFull() {
	b.builder.reset()
	b.idxBuilder.NewArray().Release()
	b.memoTable.Reset()
	b.deltaOffset = 0
}

// NewArray is NewDictionaryArray, panicking if the dictionary cannot be
// materialized.
func (b *dictionaryBuilder) NewArray() Interface {
	arr, err := b.NewDictionaryArray()
	if err != nil {
		panic(err)
	}
	return arr
}

// NewDictionaryArray returns the indices appended since the last call,
// along with the whole dictionary collected so far. The indices are reset
// while the dictionary values are kept for the arrays that follow.
func (b *dictionaryBuilder) NewDictionaryArray() (*Dictionary, error) {
	indices, dict, err := b.newWithDictOffset(0)
	if err != nil {
		return nil, err
	}
	defer indices.Release()
	defer dict.Release()

	data := NewDataWithDictionary(b.dt, indices.length, indices.buffers, indices.nulls, 0, dict)
	defer data.Release()
	return NewDictionaryData(data), nil
}

// NewDelta returns the indices appended since the last call, along with
// only the dictionary values which were added since a dictionary or
// delta was last emitted.
func (b *dictionaryBuilder) NewDelta() (indices, delta *Data, err error) {
	return b.newWithDictOffset(b.deltaOffset)
}

func (b *dictionaryBuilder) newWithDictOffset(offset int) (indices, dict *Data, err error) {
	dict, err = b.materialize(b.mem, offset)
	if err != nil {
		return nil, nil, err
	}

	debug.Logf("arrow/array: emitting %d dictionary values from offset %d", dict.Len(), offset)
	b.deltaOffset = b.memoTable.Size()
	indices = b.idxBuilder.newData()
	b.builder.reset()
	return indices, dict, nil
}

// BooleanDictionaryBuilder dictionary-encodes boolean values.
type BooleanDictionaryBuilder struct {
	dictionaryBuilder
	memo *hashing.BooleanMemoTable
}

func NewBooleanDictionaryBuilder(mem memory.Allocator) *BooleanDictionaryBuilder {
	memo := hashing.NewBooleanMemoTable()
	b := &BooleanDictionaryBuilder{
		dictionaryBuilder: newDictionaryBuilder(mem, arrow.FixedWidthTypes.Boolean, memo),
		memo:              memo,
	}
	b.materialize = func(mem memory.Allocator, offset int) (*Data, error) {
		return GetBooleanDictArrayData(mem, memo, offset)
	}
	return b
}

func (b *BooleanDictionaryBuilder) Append(v bool) error {
	idx, _, err := b.memo.GetOrInsert(v)
	if err != nil {
		return err
	}
	b.appendIndex(idx)
	return nil
}

// InsertDictValues adds the values of arr to the dictionary without
// appending any index.
func (b *BooleanDictionaryBuilder) InsertDictValues(arr *Boolean) error {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.memo.GetOrInsertNull()
			continue
		}
		if _, _, err := b.memo.GetOrInsert(arr.Value(i)); err != nil {
			return err
		}
	}
	return nil
}

// NumericDictionaryBuilder dictionary-encodes fixed width values of type T.
type NumericDictionaryBuilder[T arrow.NumericType] struct {
	dictionaryBuilder
	memo *hashing.ScalarMemoTable[T]
}

// NewNumericDictionaryBuilder returns a builder for dictionaries of
// valueType, which must be exactly as wide as T.
func NewNumericDictionaryBuilder[T arrow.NumericType](mem memory.Allocator, valueType arrow.FixedWidthDataType) *NumericDictionaryBuilder[T] {
	memo := hashing.NewScalarMemoTable[T]()
	b := &NumericDictionaryBuilder[T]{
		dictionaryBuilder: newDictionaryBuilder(mem, valueType, memo),
		memo:              memo,
	}
	b.materialize = func(mem memory.Allocator, offset int) (*Data, error) {
		return GetNumericDictArrayData(mem, valueType, memo, offset)
	}
	return b
}

func (b *NumericDictionaryBuilder[T]) Append(v T) error {
	idx, _, err := b.memo.GetOrInsert(v)
	if err != nil {
		return err
	}
	b.appendIndex(idx)
	return nil
}

// InsertDictValues adds the values of arr to the dictionary without
// appending any index.
func (b *NumericDictionaryBuilder[T]) InsertDictValues(arr *Numeric[T]) error {
	for i, v := range arr.Values() {
		if arr.IsNull(i) {
			b.memo.GetOrInsertNull()
			continue
		}
		if _, _, err := b.memo.GetOrInsert(v); err != nil {
			return err
		}
	}
	return nil
}

// BinaryDictionaryBuilder dictionary-encodes variable length binary or
// string values.
type BinaryDictionaryBuilder struct {
	dictionaryBuilder
	memo *hashing.BinaryMemoTable
}

func NewBinaryDictionaryBuilder(mem memory.Allocator, valueType arrow.BinaryDataType) *BinaryDictionaryBuilder {
	memo := hashing.NewBinaryMemoTable()
	b := &BinaryDictionaryBuilder{
		dictionaryBuilder: newDictionaryBuilder(mem, valueType, memo),
		memo:              memo,
	}
	b.materialize = func(mem memory.Allocator, offset int) (*Data, error) {
		return GetBinaryDictArrayData(mem, valueType, memo, offset)
	}
	return b
}

func (b *BinaryDictionaryBuilder) Append(v []byte) error {
	if v == nil {
		b.AppendNull()
		return nil
	}

	idx, _, err := b.memo.GetOrInsert(v)
	if err != nil {
		return err
	}
	b.appendIndex(idx)
	return nil
}

func (b *BinaryDictionaryBuilder) AppendString(v string) error {
	idx, _, err := b.memo.GetOrInsertString(v)
	if err != nil {
		return err
	}
	b.appendIndex(idx)
	return nil
}

// InsertDictValues adds the values of arr, which must be a Binary,
// String, LargeBinary or LargeString array, to the dictionary without
// appending any index.
func (b *BinaryDictionaryBuilder) InsertDictValues(arr Interface) error {
	var value func(int) []byte
	switch a := arr.(type) {
	case *Binary:
		value = a.Value
	case *LargeBinary:
		value = a.Value
	case *String:
		value = a.value
	case *LargeString:
		value = a.value
	default:
		return fmt.Errorf("%w: cannot insert %s values into a %s dictionary",
			arrow.ErrType, arr.DataType(), b.dt.ValueType)
	}

	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.memo.GetOrInsertNull()
			continue
		}
		if _, _, err := b.memo.GetOrInsert(value(i)); err != nil {
			return err
		}
	}
	return nil
}

// FixedSizeBinaryDictionaryBuilder dictionary-encodes fixed size binary
// values.
type FixedSizeBinaryDictionaryBuilder struct {
	dictionaryBuilder
	memo      *hashing.BinaryMemoTable
	byteWidth int
}

func NewFixedSizeBinaryDictionaryBuilder(mem memory.Allocator, valueType *arrow.FixedSizeBinaryType) *FixedSizeBinaryDictionaryBuilder {
	memo := hashing.NewBinaryMemoTable()
	b := &FixedSizeBinaryDictionaryBuilder{
		dictionaryBuilder: newDictionaryBuilder(mem, valueType, memo),
		memo:              memo,
		byteWidth:         valueType.ByteWidth,
	}
	b.materialize = func(mem memory.Allocator, offset int) (*Data, error) {
		return GetFixedSizeBinaryDictArrayData(mem, valueType, memo, offset)
	}
	return b
}

// Append adds v, which must be exactly as long as the type's byte width.
func (b *FixedSizeBinaryDictionaryBuilder) Append(v []byte) error {
	if v == nil {
		b.AppendNull()
		return nil
	}

	if len(v) != b.byteWidth {
		return fmt.Errorf("%w: fixed size binary value of %d bytes, expected %d",
			arrow.ErrInvalid, len(v), b.byteWidth)
	}

	idx, _, err := b.memo.GetOrInsert(v)
	if err != nil {
		return err
	}
	b.appendIndex(idx)
	return nil
}

// InsertDictValues adds the values of arr to the dictionary without
// appending any index.
func (b *FixedSizeBinaryDictionaryBuilder) InsertDictValues(arr *FixedSizeBinary) error {
	if arr.bytewidth != b.byteWidth {
		return fmt.Errorf("%w: cannot insert %s values into a %s dictionary",
			arrow.ErrType, arr.DataType(), b.dt.ValueType)
	}

	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.memo.GetOrInsertNull()
			continue
		}
		if _, _, err := b.memo.GetOrInsert(arr.Value(i)); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Builder = (*BooleanDictionaryBuilder)(nil)
	_ Builder = (*NumericDictionaryBuilder[int64])(nil)
	_ Builder = (*BinaryDictionaryBuilder)(nil)
	_ Builder = (*FixedSizeBinaryDictionaryBuilder)(nil)
)
