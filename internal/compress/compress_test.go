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

package compress_test

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	RandomDataSize       = 256 * 1024
	CompressibleDataSize = 1024 * 1024
)

var allCodecs = []compress.Compression{
	compress.Codecs.Uncompressed,
	compress.Codecs.Snappy,
	compress.Codecs.Gzip,
	compress.Codecs.Brotli,
	compress.Codecs.Lz4,
	compress.Codecs.Zstd,
}

func makeRandomData(size int) []byte {
	ret := make([]byte, size)
	r := rand.New(rand.NewSource(1234))
	r.Read(ret)
	return ret
}

func makeCompressibleData(size int) []byte {
	const base = "a\nb\nc\n(null)\nfoo\nbar\nbaz\n"

	data := make([]byte, size)
	n := copy(data, base)
	for i := n; i < len(data); i *= 2 {
		copy(data[i:], data[:i])
	}
	return data
}

func roundTrip(t *testing.T, codec compress.Codec, w io.WriteCloser, buf *bytes.Buffer, data []byte) {
	t.Helper()

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := codec.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, out))
}

func TestStreamRoundTrip(t *testing.T) {
	for _, c := range allCodecs {
		t.Run(c.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(c)
			require.NoError(t, err)

			for _, data := range [][]byte{makeCompressibleData(CompressibleDataSize), makeRandomData(RandomDataSize)} {
				var buf bytes.Buffer
				roundTrip(t, codec, codec.NewWriter(&buf), &buf, data)
			}
		})
	}
}

func TestStreamRoundTripLevel(t *testing.T) {
	for _, c := range allCodecs {
		t.Run(c.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(c)
			require.NoError(t, err)

			for _, level := range []int{compress.DefaultCompressionLevel, 1, 5} {
				var buf bytes.Buffer
				w, err := codec.NewWriterLevel(&buf, level)
				require.NoError(t, err)
				roundTrip(t, codec, w, &buf, makeCompressibleData(CompressibleDataSize))
			}
		})
	}
}

func TestCompressibleShrinks(t *testing.T) {
	data := makeCompressibleData(CompressibleDataSize)
	for _, c := range allCodecs[1:] {
		t.Run(c.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(c)
			require.NoError(t, err)

			var buf bytes.Buffer
			w := codec.NewWriter(&buf)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			assert.Less(t, buf.Len(), len(data))
		})
	}
}

func TestGzipInvalidHeader(t *testing.T) {
	codec, err := compress.GetCodec(compress.Codecs.Gzip)
	require.NoError(t, err)

	_, err = codec.NewReader(bytes.NewReader([]byte("not gzip")))
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for _, c := range allCodecs {
		got, err := compress.ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := compress.ParseCompression("ZSTD")
	require.NoError(t, err)
	assert.Equal(t, compress.Codecs.Zstd, got)

	_, err = compress.ParseCompression("lzo")
	assert.ErrorIs(t, err, arrow.ErrInvalid)
}

func TestFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want compress.Compression
	}{
		{"values.txt", compress.Codecs.Uncompressed},
		{"values", compress.Codecs.Uncompressed},
		{"values.txt.sz", compress.Codecs.Snappy},
		{"values.snappy", compress.Codecs.Snappy},
		{"values.txt.GZ", compress.Codecs.Gzip},
		{"values.br", compress.Codecs.Brotli},
		{"dir.lz4/values.lz4", compress.Codecs.Lz4},
		{"values.zst", compress.Codecs.Zstd},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compress.FromExtension(tt.path), tt.path)
	}
}

func TestErrorForUnimplemented(t *testing.T) {
	_, err := compress.GetCodec(compress.Compression(42))
	assert.ErrorIs(t, err, arrow.ErrNotImplemented)
	assert.Equal(t, "Compression(42)", compress.Compression(42).String())
}
