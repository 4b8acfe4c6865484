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

package memory_test

import (
	"testing"

	"github.com/apache/arrow/go/dictenc/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResizableBuffer(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewResizableBuffer(mem)
	buf.Retain() // refCount == 2

	exp := 10
	buf.Resize(exp)
	assert.NotNil(t, buf.Bytes())
	assert.Equal(t, exp, len(buf.Bytes()))
	assert.Equal(t, exp, buf.Len())
	assert.Equal(t, 64, buf.Cap())

	buf.Release() // refCount == 1
	assert.NotNil(t, buf.Bytes())

	buf.Release() // refCount == 0
	assert.Nil(t, buf.Bytes())
	assert.Zero(t, buf.Len())
}

func TestBufferResizePreservesContents(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewResizableBuffer(mem)
	defer buf.Release()

	buf.Resize(3)
	copy(buf.Bytes(), "abc")
	buf.Resize(100)
	assert.Equal(t, 128, mem.CurrentAlloc())
	assert.Equal(t, []byte("abc"), buf.Bytes()[:3])
	assert.Equal(t, make([]byte, 97), buf.Bytes()[3:])
}

func TestAllocateBuffer(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf, err := memory.AllocateBuffer(mem, 12)
	require.NoError(t, err)
	defer buf.Release()

	assert.Equal(t, 12, buf.Len())
	assert.Equal(t, make([]byte, 12), buf.Bytes())
	assert.True(t, buf.Mutable())
}

func TestAllocateBufferZeroSize(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf, err := memory.AllocateBuffer(mem, 0)
	require.NoError(t, err)
	assert.Zero(t, buf.Len())
	assert.Zero(t, mem.NumAllocations())
	buf.Release()
}

func TestAllocateBufferOutOfMemory(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewLimitedAllocator(memory.NewGoAllocator(), 64))
	defer mem.AssertSize(t, 0)

	buf, err := memory.AllocateBuffer(mem, 65)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Nil(t, buf)
	assert.Zero(t, mem.NumAllocations())
}
