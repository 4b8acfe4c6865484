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
)

func TestSet(t *testing.T) {
	tests := []struct {
		name   string
		sz     int
		lo, hi int
		c      byte
	}{
		{"empty", 0, 0, 0, 0xff},
		{"bitmap,all-valid", 2, 0, 2, 0xff},
		{"bitmap,grown", 8, 3, 8, 0x00},
		{"one", 7, 6, 7, 0x1f},
		{"middle", 25, 13, 19, 0x1f},
		{"page", 4096, 0, 4096, 0xff},
		{"large", 16384, 3333, 10000, 0x1f},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := make([]byte, test.sz)
			for i := range buf {
				buf[i] = 0xa5
			}
			memory.Set(buf[test.lo:test.hi], test.c)

			for i, b := range buf {
				if i >= test.lo && i < test.hi {
					assert.Equal(t, test.c, b, "byte %d", i)
				} else {
					assert.Equal(t, byte(0xa5), b, "byte %d outside range changed", i)
				}
			}
		})
	}
}

func BenchmarkSet(b *testing.B) {
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		memory.Set(buf, 0xff)
	}
}
