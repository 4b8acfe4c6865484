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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanBuilder_AppendValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewBooleanBuilder(mem)

	exp := []bool{true, true, false, true, true, false, true, false}
	got := make([]bool, len(exp))

	b.AppendValues(exp, nil)
	a := b.NewBooleanArray()
	b.Release()
	for i := 0; i < a.Len(); i++ {
		got[i] = a.Value(i)
	}
	assert.Equal(t, exp, got)
	assert.Nil(t, a.Data().Buffers()[0])
	a.Release()
}

func TestBooleanBuilder_Nulls(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewBooleanBuilder(mem)
	defer b.Release()

	for i := 0; i < 100; i++ {
		if i%3 == 0 {
			b.AppendNull()
		} else {
			b.Append(i%2 == 0)
		}
	}
	assert.Equal(t, 100, b.Len())
	assert.Equal(t, 34, b.NullN())
	assert.GreaterOrEqual(t, b.Cap(), 100)

	a := b.NewBooleanArray()
	defer a.Release()

	assert.Zero(t, b.Len())
	assert.Equal(t, 34, a.NullN())
	for i := 0; i < a.Len(); i++ {
		if i%3 == 0 {
			assert.True(t, a.IsNull(i))
			continue
		}
		assert.True(t, a.IsValid(i))
		assert.Equal(t, i%2 == 0, a.Value(i))
	}
}

func TestBooleanBuilder_TryReserve(t *testing.T) {
	checked := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer checked.AssertSize(t, 0)

	b := array.NewBooleanBuilder(memory.NewLimitedAllocator(checked, 64))
	defer b.Release()

	assert.ErrorIs(t, b.TryReserve(10), memory.ErrOutOfMemory)
	assert.Zero(t, b.Cap())
	assert.Panics(t, func() { b.Append(true) })
}

func TestBooleanBuilder_Empty(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewBooleanBuilder(mem)
	defer b.Release()

	a := b.NewBooleanArray()
	defer a.Release()
	assert.Zero(t, a.Len())
	assert.Equal(t, "[]", a.String())
}

func TestNumericBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewNumericBuilder[uint16](mem, arrow.PrimitiveTypes.Uint16)
	defer b.Release()

	for i := 0; i < 40; i++ {
		b.Append(uint16(i))
	}
	b.AppendNull()
	b.AppendValues([]uint16{7, 8}, nil)
	assert.Equal(t, 43, b.Len())
	assert.Equal(t, uint16(39), b.Value(39))

	a := b.NewNumericArray()
	defer a.Release()

	require.Equal(t, 43, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.True(t, a.IsNull(40))
	assert.Equal(t, uint16(8), a.Value(42))
	assert.Len(t, a.Values(), 43)
	assert.Equal(t, 43*2, a.Data().Buffers()[1].Len())
}
