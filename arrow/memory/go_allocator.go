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

package memory

import (
	"os"
	"strconv"

	"github.com/klauspost/cpuid/v2"
)

// alignment is the byte boundary every GoAllocator allocation starts on.
// It is the cache line size reported by the CPU, never below 64 bytes, and
// can be overridden with ARROW_ALLOC_ALIGNMENT (a power of two).
var alignment = 64

func init() {
	if cl := cpuid.CPU.CacheLine; cl > alignment && cl&(cl-1) == 0 {
		alignment = cl
	}

	if val, ok := os.LookupEnv("ARROW_ALLOC_ALIGNMENT"); ok {
		alignment = parseAlignment(val, alignment)
	}
}

// parseAlignment returns the alignment val names, or def when val is not a
// power of two of at least 8.
func parseAlignment(val string, def int) int {
	a, err := strconv.Atoi(val)
	if err != nil || a < 8 || a&(a-1) != 0 {
		return def
	}
	return a
}

// GoAllocator allocates zeroed, aligned memory from the Go heap and leaves
// reclamation to the garbage collector.
type GoAllocator struct{}

func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (a *GoAllocator) Allocate(size int) []byte {
	buf := make([]byte, size+alignment) // padding for alignment
	addr := int(addressOf(buf))
	next := roundToPowerOf2(addr, alignment)
	if addr != next {
		shift := next - addr
		return buf[shift : size+shift : size+shift]
	}
	return buf[:size:size]
}

// TryAllocate never fails for the Go heap; a real exhaustion aborts the
// process inside the runtime.
func (a *GoAllocator) TryAllocate(size int) ([]byte, error) {
	return a.Allocate(size), nil
}

func (a *GoAllocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}

	newBuf := a.Allocate(size)
	copy(newBuf, b)
	return newBuf
}

func (a *GoAllocator) Free(b []byte) {}

var (
	_ Allocator    = (*GoAllocator)(nil)
	_ TryAllocator = (*GoAllocator)(nil)
)
