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

// Package compress provides the stream codecs used to read and write
// compressed value files.
package compress

import (
	"compress/flate"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/dictenc/arrow"
)

// Compression identifies a codec.
type Compression int8

const DefaultCompressionLevel = flate.DefaultCompression

var Codecs = struct {
	Uncompressed Compression
	Snappy       Compression
	Gzip         Compression
	Brotli       Compression
	Lz4          Compression
	Zstd         Compression
}{
	Uncompressed: 0,
	Snappy:       1,
	Gzip:         2,
	Brotli:       3,
	Lz4:          4,
	Zstd:         5,
}

var names = [...]string{"uncompressed", "snappy", "gzip", "brotli", "lz4", "zstd"}

func (c Compression) String() string {
	if int(c) < 0 || int(c) >= len(names) {
		return fmt.Sprintf("Compression(%d)", int8(c))
	}
	return names[c]
}

// ParseCompression returns the codec with the given name, ignoring case.
func ParseCompression(name string) (Compression, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Compression(i), nil
		}
	}
	return Codecs.Uncompressed, fmt.Errorf("%w: unknown compression %q", arrow.ErrInvalid, name)
}

var extensions = map[string]Compression{
	".sz":     Codecs.Snappy,
	".snappy": Codecs.Snappy,
	".gz":     Codecs.Gzip,
	".br":     Codecs.Brotli,
	".lz4":    Codecs.Lz4,
	".zst":    Codecs.Zstd,
}

// FromExtension guesses the codec a file was written with from its
// extension. Unknown extensions are uncompressed.
func FromExtension(path string) Compression {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return Codecs.Uncompressed
}

type Codec interface {
	// NewReader wraps a stream of compressed data to stream the uncompressed data
	NewReader(io.Reader) (io.ReadCloser, error)
	// NewWriter wraps a stream to compress data before writing it. Close
	// must be called to flush the last block.
	NewWriter(io.Writer) io.WriteCloser
	// NewWriterLevel is like NewWriter but allows specifying the compression level
	NewWriterLevel(io.Writer, int) (io.WriteCloser, error)
}

var codecs = map[Compression]Codec{}

type nocodec struct{}

func (nocodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	ret, ok := r.(io.ReadCloser)
	if !ok {
		return io.NopCloser(r), nil
	}
	return ret, nil
}

type writerNopCloser struct {
	io.Writer
}

func (writerNopCloser) Close() error {
	return nil
}

func (nocodec) NewWriter(w io.Writer) io.WriteCloser {
	ret, ok := w.(io.WriteCloser)
	if !ok {
		return writerNopCloser{w}
	}
	return ret
}

func (n nocodec) NewWriterLevel(w io.Writer, _ int) (io.WriteCloser, error) {
	return n.NewWriter(w), nil
}

func init() {
	codecs[Codecs.Uncompressed] = nocodec{}
}

// GetCodec returns the codec for typ, or ErrNotImplemented if none is
// registered.
func GetCodec(typ Compression) (Codec, error) {
	ret, ok := codecs[typ]
	if !ok {
		return nil, fmt.Errorf("%w: compression for %s", arrow.ErrNotImplemented, typ)
	}
	return ret, nil
}
