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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/internal/compress"
	"github.com/docopt/docopt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBatches(t *testing.T, want []string, got string) {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, len(want), "output:\n%s", got)
	for i, line := range lines {
		assert.JSONEq(t, want[i], line, "batch %d", i)
	}
}

func TestParseArgs(t *testing.T) {
	p := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}

	cfg, err := parseArgs(p, []string{})
	require.NoError(t, err)
	assert.Equal(t, config{Type: "utf8", Compression: "auto"}, cfg)

	cfg, err = parseArgs(p, []string{"--type=int64", "--delta=3", "--encode-nulls", "--compression=zstd", "a.txt", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, config{Type: "int64", Delta: 3, EncodeNulls: true, Compression: "zstd", Files: []string{"a.txt", "b.txt"}}, cfg)

	_, err = parseArgs(p, []string{"--compression=lzo"})
	assert.ErrorIs(t, err, arrow.ErrInvalid)

	_, err = parseArgs(p, []string{"--delta=x"})
	assert.Error(t, err)

	_, err = parseArgs(p, []string{"--delta=-1"})
	assert.Error(t, err)
}

func TestRunDelta(t *testing.T) {
	const input = "a\nb\na\n(null)\nc\n"

	for _, tc := range []struct {
		name string
		cfg  config
		want []string
	}{
		{
			name: "single",
			cfg:  config{Type: "utf8"},
			want: []string{
				`{"batch":0,"offset":0,"indices":[0,1,0,null,2],"dictionary":["a","b","c"]}`,
			},
		},
		{
			name: "delta",
			cfg:  config{Type: "utf8", Delta: 2},
			want: []string{
				`{"batch":0,"offset":0,"indices":[0,1],"dictionary":["a","b"]}`,
				`{"batch":1,"offset":2,"indices":[0,null],"dictionary":[]}`,
				`{"batch":2,"offset":2,"indices":[2],"dictionary":["c"]}`,
			},
		},
		{
			name: "encode-nulls",
			cfg:  config{Type: "large_utf8", Delta: 2, EncodeNulls: true},
			want: []string{
				`{"batch":0,"offset":0,"indices":[0,1],"dictionary":["a","b"]}`,
				`{"batch":1,"offset":2,"indices":[0,2],"dictionary":[null]}`,
				`{"batch":2,"offset":3,"indices":[3],"dictionary":["c"]}`,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := new(bytes.Buffer)
			require.NoError(t, run(w, strings.NewReader(input), tc.cfg))
			assertBatches(t, tc.want, w.String())
		})
	}
}

func TestRunTypes(t *testing.T) {
	for _, tc := range []struct {
		typ   string
		input string
		want  string
	}{
		{"bool", "true\nfalse\ntrue\n(null)\n", `{"batch":0,"offset":0,"indices":[0,1,0,null],"dictionary":[true,false]}`},
		{"int8", "-1\n2\n-1\n", `{"batch":0,"offset":0,"indices":[0,1,0],"dictionary":[-1,2]}`},
		{"uint32", "7\n7\n9\n", `{"batch":0,"offset":0,"indices":[0,0,1],"dictionary":[7,9]}`},
		{"float64", "1.5\n(null)\n1.5\n", `{"batch":0,"offset":0,"indices":[0,null,0],"dictionary":[1.5]}`},
		{"binary", "xy\nz\n", `{"batch":0,"offset":0,"indices":[0,1],"dictionary":["eHk=","eg=="]}`},
		{"fixed_size_binary[2]", "ab\ncd\nab\n", `{"batch":0,"offset":0,"indices":[0,1,0],"dictionary":["YWI=","Y2Q="]}`},
	} {
		t.Run(tc.typ, func(t *testing.T) {
			w := new(bytes.Buffer)
			require.NoError(t, run(w, strings.NewReader(tc.input), config{Type: tc.typ}))
			assertBatches(t, []string{tc.want}, w.String())
		})
	}
}

func TestRunEmpty(t *testing.T) {
	w := new(bytes.Buffer)
	require.NoError(t, run(w, strings.NewReader(""), config{Type: "int32", Delta: 4}))
	assertBatches(t, []string{`{"batch":0,"offset":0,"indices":[],"dictionary":[]}`}, w.String())
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "one.txt")
	f2 := filepath.Join(dir, "two.txt")
	require.NoError(t, os.WriteFile(f1, []byte("x\ny\n"), 0o644))
	require.NoError(t, os.WriteFile(f2, []byte("y\nz\n"), 0o644))

	w := new(bytes.Buffer)
	require.NoError(t, run(w, strings.NewReader("ignored\n"), config{Type: "utf8", Delta: 3, Files: []string{f1, f2}}))
	assertBatches(t, []string{
		`{"batch":0,"offset":0,"indices":[0,1,1],"dictionary":["x","y"]}`,
		`{"batch":1,"offset":2,"indices":[2],"dictionary":["z"]}`,
	}, w.String())

	err := run(new(bytes.Buffer), nil, config{Type: "utf8", Files: []string{filepath.Join(dir, "missing.txt")}})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeCompressed(t *testing.T, path string, c compress.Compression, data string) {
	t.Helper()

	codec, err := compress.GetCodec(c)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	_, err = w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRunCompressed(t *testing.T) {
	dir := t.TempDir()
	zst := filepath.Join(dir, "one.txt.zst")
	gz := filepath.Join(dir, "two.txt.gz")
	writeCompressed(t, zst, compress.Codecs.Zstd, "x\ny\n")
	writeCompressed(t, gz, compress.Codecs.Gzip, "y\nz\n")

	w := new(bytes.Buffer)
	require.NoError(t, run(w, nil, config{Type: "utf8", Compression: autoCompression, Files: []string{zst, gz}}))
	assertBatches(t, []string{
		`{"batch":0,"offset":0,"indices":[0,1,1,2],"dictionary":["x","y","z"]}`,
	}, w.String())

	// an explicit codec applies to every file whatever its extension
	sz := filepath.Join(dir, "three.dat")
	writeCompressed(t, sz, compress.Codecs.Snappy, "1\n2\n1\n")

	w.Reset()
	require.NoError(t, run(w, nil, config{Type: "int32", Compression: "snappy", Files: []string{sz}}))
	assertBatches(t, []string{
		`{"batch":0,"offset":0,"indices":[0,1,0],"dictionary":[1,2]}`,
	}, w.String())

	var buf bytes.Buffer
	codec, err := compress.GetCodec(compress.Codecs.Lz4)
	require.NoError(t, err)
	lw := codec.NewWriter(&buf)
	_, err = lw.Write([]byte("q\n"))
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	w.Reset()
	require.NoError(t, run(w, &buf, config{Type: "utf8", Compression: "lz4"}))
	assertBatches(t, []string{
		`{"batch":0,"offset":0,"indices":[0],"dictionary":["q"]}`,
	}, w.String())

	bad := filepath.Join(dir, "bad.gz")
	require.NoError(t, os.WriteFile(bad, []byte("plain text\n"), 0o644))
	assert.Error(t, run(new(bytes.Buffer), nil, config{Type: "utf8", Compression: autoCompression, Files: []string{bad}}))
}

func TestRunErrors(t *testing.T) {
	err := run(new(bytes.Buffer), strings.NewReader("1\n"), config{Type: "decimal128"})
	assert.ErrorIs(t, err, arrow.ErrNotImplemented)

	err = run(new(bytes.Buffer), strings.NewReader("1\n"), config{Type: "fixed_size_binary[x]"})
	assert.ErrorIs(t, err, arrow.ErrInvalid)

	err = run(new(bytes.Buffer), strings.NewReader("1\n2\nthree\n"), config{Type: "int16"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<stdin>:3:")

	err = run(new(bytes.Buffer), strings.NewReader("300\n"), config{Type: "uint8"})
	assert.Error(t, err)

	err = run(new(bytes.Buffer), strings.NewReader("abc\n"), config{Type: "fixed_size_binary[2]"})
	assert.ErrorIs(t, err, arrow.ErrInvalid)
}
