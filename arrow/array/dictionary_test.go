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

package array_test

import (
	"testing"

	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/arrow/array"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryBuilderBasic(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := array.NewNumericDictionaryBuilder[int8](mem, arrow.PrimitiveTypes.Int8)
	defer bldr.Release()

	assert.NoError(t, bldr.Append(1))
	assert.NoError(t, bldr.Append(2))
	assert.NoError(t, bldr.Append(1))
	bldr.AppendNull()

	assert.EqualValues(t, 4, bldr.Len())
	assert.EqualValues(t, 1, bldr.NullN())
	assert.Equal(t, 2, bldr.DictionarySize())

	arr, err := bldr.NewDictionaryArray()
	require.NoError(t, err)
	defer arr.Release()

	expectedType := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.PrimitiveTypes.Int8}
	assert.True(t, arrow.TypeEqual(expectedType, arr.DataType()))
	assert.Equal(t, 4, arr.Len())
	assert.Equal(t, 1, arr.NullN())

	dict := arr.Dictionary().(*array.Numeric[int8])
	defer dict.Release()
	assert.Equal(t, []int8{1, 2}, dict.Values())

	indices := arr.Indices().(*array.Numeric[int32])
	defer indices.Release()
	assert.Equal(t, []int32{0, 1, 0}, indices.Values()[:3])
	assert.True(t, indices.IsNull(3))
	assert.Equal(t, 1, arr.GetValueIndex(1))

	out, err := json.Marshal(arr)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2, 1, null]`, string(out))

	assert.Zero(t, bldr.Len())
	assert.Equal(t, 2, bldr.DictionarySize())
}

func TestDictionaryBuilderDelta(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := array.NewBinaryDictionaryBuilder(mem, arrow.BinaryTypes.String)
	defer bldr.Release()

	assert.NoError(t, bldr.AppendString("a"))
	assert.NoError(t, bldr.AppendString("b"))

	indices, delta, err := bldr.NewDelta()
	require.NoError(t, err)
	assertJSON(t, `[0, 1]`, indices)
	assertJSON(t, `["a", "b"]`, delta)
	indices.Release()
	delta.Release()

	assert.NoError(t, bldr.AppendString("b"))
	assert.NoError(t, bldr.AppendString("c"))
	assert.NoError(t, bldr.Append([]byte("a")))

	indices, delta, err = bldr.NewDelta()
	require.NoError(t, err)
	assertJSON(t, `[1, 2, 0]`, indices)
	assertJSON(t, `["c"]`, delta)
	indices.Release()
	delta.Release()

	indices, delta, err = bldr.NewDelta()
	require.NoError(t, err)
	assert.Zero(t, indices.Len())
	assert.Zero(t, delta.Len())
	indices.Release()
	delta.Release()

	// a full dictionary is always emitted from the start
	assert.NoError(t, bldr.AppendString("c"))
	arr, err := bldr.NewDictionaryArray()
	require.NoError(t, err)
	defer arr.Release()
	dict := arr.Dictionary()
	defer dict.Release()
	assertJSON(t, `["a", "b", "c"]`, dict)
	assertJSON(t, `["c"]`, arr)
}

func TestDictionaryBuilderResetFull(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := array.NewBinaryDictionaryBuilder(mem, arrow.BinaryTypes.Binary)
	defer bldr.Release()

	assert.NoError(t, bldr.AppendString("x"))
	indices, delta, err := bldr.NewDelta()
	require.NoError(t, err)
	indices.Release()
	delta.Release()

	assert.NoError(t, bldr.AppendString("y"))
	bldr.ResetFull()
	assert.Zero(t, bldr.Len())
	assert.Zero(t, bldr.DictionarySize())

	assert.NoError(t, bldr.AppendString("z"))
	indices, delta, err = bldr.NewDelta()
	require.NoError(t, err)
	defer indices.Release()
	defer delta.Release()
	assertJSON(t, `[0]`, indices)
	assert.Equal(t, 1, delta.Len())
}

func TestDictionaryBuilderEncodedNull(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := array.NewBooleanDictionaryBuilder(mem)
	defer bldr.Release()

	assert.NoError(t, bldr.Append(false))
	assert.NoError(t, bldr.Append(true))
	bldr.AppendEncodedNull()
	bldr.AppendEncodedNull()
	bldr.AppendNull()

	arr, err := bldr.NewDictionaryArray()
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, 1, arr.NullN())
	dict := arr.Dictionary().(*array.Boolean)
	defer dict.Release()

	assert.Equal(t, 3, dict.Len())
	assert.Equal(t, 1, dict.NullN())
	assert.False(t, dict.Value(0))
	assert.True(t, dict.Value(1))
	assert.True(t, dict.IsNull(2))

	assertJSON(t, `[false, true, null, null, null]`, arr)
}

func TestDictionaryBuilderInsertDictValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	vb := array.NewNumericBuilder[float64](mem, arrow.PrimitiveTypes.Float64)
	vb.AppendValues([]float64{3.5, 1.25, 3.5, 0}, []bool{true, true, true, false})
	values := vb.NewNumericArray()
	vb.Release()
	defer values.Release()

	bldr := array.NewNumericDictionaryBuilder[float64](mem, arrow.PrimitiveTypes.Float64)
	defer bldr.Release()

	require.NoError(t, bldr.InsertDictValues(values))
	assert.Zero(t, bldr.Len())
	assert.Equal(t, 3, bldr.DictionarySize())

	assert.NoError(t, bldr.Append(1.25))
	indices, dict, err := bldr.NewDelta()
	require.NoError(t, err)
	defer indices.Release()
	defer dict.Release()

	assertJSON(t, `[1]`, indices)
	assertJSON(t, `[3.5, 1.25, null]`, dict)
}

func TestBinaryDictionaryBuilderInsertDictValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	src := array.NewBinaryDictionaryBuilder(mem, arrow.BinaryTypes.String)
	defer src.Release()
	for _, s := range []string{"foo", "bar"} {
		require.NoError(t, src.AppendString(s))
	}
	indices, values, err := src.NewDelta()
	require.NoError(t, err)
	defer indices.Release()
	defer values.Release()

	strs := array.MakeFromData(values)
	defer strs.Release()

	bldr := array.NewBinaryDictionaryBuilder(mem, arrow.BinaryTypes.String)
	defer bldr.Release()
	require.NoError(t, bldr.InsertDictValues(strs))
	assert.Equal(t, 2, bldr.DictionarySize())

	bools := array.NewBooleanBuilder(mem)
	bools.Append(true)
	barr := bools.NewArray()
	bools.Release()
	defer barr.Release()
	assert.ErrorIs(t, bldr.InsertDictValues(barr), arrow.ErrType)
}

func TestFixedSizeBinaryDictionaryBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	dt := &arrow.FixedSizeBinaryType{ByteWidth: 3}
	bldr := array.NewFixedSizeBinaryDictionaryBuilder(mem, dt)
	defer bldr.Release()

	assert.NoError(t, bldr.Append([]byte("abc")))
	assert.NoError(t, bldr.Append([]byte("def")))
	assert.NoError(t, bldr.Append([]byte("abc")))
	assert.NoError(t, bldr.Append(nil))
	assert.ErrorIs(t, bldr.Append([]byte("toolong")), arrow.ErrInvalid)

	arr, err := bldr.NewDictionaryArray()
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, 4, arr.Len())
	dict := arr.Dictionary().(*array.FixedSizeBinary)
	defer dict.Release()
	assert.Equal(t, []byte("def"), dict.Value(1))

	var other array.Interface = arr
	assert.Equal(t, "{ dictionary: [\"abc\" \"def\"]\n  indices: [0 1 0 (null)] }", other.String())
}

func assertJSON(t *testing.T, expected string, v json.Marshaler) {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, expected, string(out))
}
