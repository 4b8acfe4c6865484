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
	"sync"
	"testing"

	"github.com/apache/arrow/go/dictenc/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingT struct {
	errs []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) { r.errs = append(r.errs, format) }
func (r *recordingT) Helper()                                   {}

func TestCheckedAllocatorReportsLeaks(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

	buf := memory.NewResizableBuffer(mem)
	buf.Resize(10)

	var rec recordingT
	mem.AssertSize(&rec, 0)
	assert.Len(t, rec.errs, 2, "one leak and one size mismatch")

	buf.Release()
	rec.errs = nil
	mem.AssertSize(&rec, 0)
	assert.Empty(t, rec.errs)
}

func TestLimitedAllocator(t *testing.T) {
	mem := memory.NewLimitedAllocator(memory.NewGoAllocator(), 100)

	b1, err := mem.TryAllocate(60)
	require.NoError(t, err)
	assert.Equal(t, 60, mem.Used())

	_, err = mem.TryAllocate(41)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Equal(t, 60, mem.Used())

	assert.PanicsWithError(t, "arrow/memory: out of memory: cannot allocate 50 bytes, 60 of 100 bytes in use", func() {
		mem.Allocate(50)
	})

	b1 = mem.Reallocate(20, b1)
	assert.Equal(t, 20, mem.Used())
	mem.Free(b1)
	assert.Zero(t, mem.Used())
	assert.Equal(t, 100, mem.Limit())
}

func TestLimitedAllocatorConcurrent(t *testing.T) {
	const (
		workers = 8
		each    = 10
	)
	mem := memory.NewLimitedAllocator(memory.NewGoAllocator(), workers*each*64)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				b, err := mem.TryAllocate(64)
				if assert.NoError(t, err) {
					mem.Free(b)
				}
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, mem.Used())
}

func TestTryAllocateFallsBackToAllocate(t *testing.T) {
	var mem memory.Allocator = plainAllocator{}
	b, err := memory.TryAllocate(mem, 16)
	require.NoError(t, err)
	assert.Len(t, b, 16)

	_, err = memory.TryAllocate(mem, -1)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
}

type plainAllocator struct{}

func (plainAllocator) Allocate(size int) []byte { return make([]byte, size) }
func (plainAllocator) Free([]byte)              {}

func (plainAllocator) Reallocate(size int, b []byte) []byte {
	out := make([]byte, size)
	copy(out, b)
	return out
}
