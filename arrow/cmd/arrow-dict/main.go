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

// Command arrow-dict dictionary-encodes newline separated values and
// prints the dictionaries and indices it produces as JSON, one batch per
// line.
//
// Examples:
//
//	$> printf 'a\nb\na\n(null)\nc\n' | arrow-dict --delta=2
//	{"batch":0,"offset":0,"indices":[0,1],"dictionary":["a","b"]}
//	{"batch":1,"offset":2,"indices":[0,null],"dictionary":[]}
//	{"batch":2,"offset":2,"indices":[2],"dictionary":["c"]}
//
// With --delta, every batch only carries the dictionary values which are
// new since the previous batch, starting at offset.
package main

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/dictenc/arrow"
	"github.com/apache/arrow/go/dictenc/arrow/array"
	"github.com/apache/arrow/go/dictenc/arrow/memory"
	"github.com/apache/arrow/go/dictenc/internal/compress"
	"github.com/docopt/docopt-go"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

const usage = `Arrow Dictionary Encoder.
Usage:
  arrow-dict -h | --help
  arrow-dict [--type=TYPE] [--delta=N] [--encode-nulls] [--compression=CODEC] [<file>...]
Options:
  -h --help         Show this screen.
  --type=TYPE       Type of the values: bool, int8, int16, int32, int64, uint8, uint16,
                    uint32, uint64, float32, float64, utf8, large_utf8, binary,
                    large_binary or fixed_size_binary[N] [default: utf8].
  --delta=N         Emit a delta dictionary after every N values, 0 emits a single
                    dictionary once the input is exhausted [default: 0].
  --encode-nulls    Make (null) a value of the dictionary instead of a null index.
  --compression=CODEC  Codec of the input: uncompressed, snappy, gzip, brotli, lz4
                    or zstd. auto picks it from each file's extension and reads
                    stdin uncompressed [default: auto].`

const (
	// nullLiteral is the input line read as a null value.
	nullLiteral = "(null)"

	autoCompression = "auto"
)

type config struct {
	Type        string
	Delta       int
	EncodeNulls bool
	Compression string
	Files       []string
}

func main() {
	log.SetPrefix("arrow-dict: ")
	log.SetFlags(0)

	cfg, err := parseArgs(&docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(os.Stdout, os.Stdin, cfg); err != nil {
		log.Fatal(err)
	}
}

func parseArgs(p *docopt.Parser, argv []string) (cfg config, err error) {
	opts, err := p.ParseArgs(usage, argv, "")
	if err != nil {
		return cfg, xerrors.Errorf("invalid arguments: %w", err)
	}

	if cfg.Type, err = opts.String("--type"); err != nil {
		return cfg, err
	}
	if cfg.Delta, err = opts.Int("--delta"); err != nil {
		return cfg, xerrors.Errorf("invalid --delta: %w", err)
	}
	if cfg.Delta < 0 {
		return cfg, xerrors.Errorf("invalid --delta %d: must not be negative", cfg.Delta)
	}
	if cfg.EncodeNulls, err = opts.Bool("--encode-nulls"); err != nil {
		return cfg, err
	}
	if cfg.Compression, err = opts.String("--compression"); err != nil {
		return cfg, err
	}
	if cfg.Compression != autoCompression {
		if _, err := compress.ParseCompression(cfg.Compression); err != nil {
			return cfg, xerrors.Errorf("invalid --compression: %w", err)
		}
	}
	if files, ok := opts["<file>"].([]string); ok && len(files) > 0 {
		cfg.Files = files
	}
	return cfg, nil
}

// batch is one line of output.
type batch struct {
	Batch      int         `json:"batch"`
	Offset     int         `json:"offset"`
	Indices    *array.Data `json:"indices"`
	Dictionary *array.Data `json:"dictionary"`
}

type processor struct {
	cfg config
	enc *encoder
	out *json.Encoder

	n       int // values appended
	batches int
	offset  int
}

func run(w io.Writer, stdin io.Reader, cfg config) error {
	enc, err := newEncoder(memory.NewGoAllocator(), cfg.Type)
	if err != nil {
		return err
	}
	defer enc.bldr.Release()

	p := &processor{cfg: cfg, enc: enc, out: json.NewEncoder(w)}
	if len(cfg.Files) == 0 {
		if err := p.processCompressed("<stdin>", stdin, compress.Codecs.Uncompressed); err != nil {
			return err
		}
	} else {
		for _, name := range cfg.Files {
			if err := p.processFile(name); err != nil {
				return err
			}
		}
	}

	if p.enc.bldr.Len() > 0 || p.batches == 0 {
		return p.emit()
	}
	return nil
}

func (p *processor) processFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return xerrors.Errorf("could not open input: %w", err)
	}
	defer f.Close()

	return p.processCompressed(name, f, compress.FromExtension(name))
}

// processCompressed reads r with the configured codec, or with auto when
// none was configured.
func (p *processor) processCompressed(name string, r io.Reader, auto compress.Compression) error {
	c := auto
	if p.cfg.Compression != "" && p.cfg.Compression != autoCompression {
		var err error
		if c, err = compress.ParseCompression(p.cfg.Compression); err != nil {
			return err
		}
	}

	codec, err := compress.GetCodec(c)
	if err != nil {
		return err
	}
	rdr, err := codec.NewReader(r)
	if err != nil {
		return xerrors.Errorf("could not read %s: %w", name, err)
	}
	defer rdr.Close()

	return p.processStream(name, rdr)
}

func (p *processor) processStream(name string, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		if err := p.appendValue(sc.Text()); err != nil {
			return xerrors.Errorf("%s:%d: %w", name, line, err)
		}

		p.n++
		if p.cfg.Delta > 0 && p.n%p.cfg.Delta == 0 {
			if err := p.emit(); err != nil {
				return err
			}
		}
	}

	if err := sc.Err(); err != nil {
		return xerrors.Errorf("could not read %s: %w", name, err)
	}
	return nil
}

func (p *processor) appendValue(v string) error {
	if v != nullLiteral {
		return p.enc.append(v)
	}

	if p.cfg.EncodeNulls {
		p.enc.bldr.AppendEncodedNull()
	} else {
		p.enc.bldr.AppendNull()
	}
	return nil
}

func (p *processor) emit() error {
	indices, dict, err := p.enc.bldr.NewDelta()
	if err != nil {
		return xerrors.Errorf("could not emit dictionary: %w", err)
	}
	defer indices.Release()
	defer dict.Release()

	err = p.out.Encode(batch{
		Batch:      p.batches,
		Offset:     p.offset,
		Indices:    indices,
		Dictionary: dict,
	})
	if err != nil {
		return xerrors.Errorf("could not write batch %d: %w", p.batches, err)
	}

	p.batches++
	p.offset += dict.Len()
	return nil
}

// dictBuilder is the part of the dictionary builders the encoder needs,
// independent of the type of values.
type dictBuilder interface {
	array.Builder
	AppendEncodedNull()
	NewDelta() (indices, delta *array.Data, err error)
}

// encoder pairs a dictionary builder with the parser for its value type.
type encoder struct {
	bldr   dictBuilder
	append func(string) error
}

func newEncoder(mem memory.Allocator, typ string) (*encoder, error) {
	switch typ {
	case "bool":
		b := array.NewBooleanDictionaryBuilder(mem)
		return &encoder{bldr: b, append: func(s string) error {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			return b.Append(v)
		}}, nil
	case "int8":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Int8, parseInt[int8](8)), nil
	case "int16":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Int16, parseInt[int16](16)), nil
	case "int32":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Int32, parseInt[int32](32)), nil
	case "int64":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Int64, parseInt[int64](64)), nil
	case "uint8":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Uint8, parseUint[uint8](8)), nil
	case "uint16":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Uint16, parseUint[uint16](16)), nil
	case "uint32":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Uint32, parseUint[uint32](32)), nil
	case "uint64":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Uint64, parseUint[uint64](64)), nil
	case "float32":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Float32, parseFloat[float32](32)), nil
	case "float64":
		return newNumericEncoder(mem, arrow.PrimitiveTypes.Float64, parseFloat[float64](64)), nil
	case "utf8":
		return newBinaryEncoder(mem, arrow.BinaryTypes.String), nil
	case "large_utf8":
		return newBinaryEncoder(mem, arrow.BinaryTypes.LargeString), nil
	case "binary":
		return newBinaryEncoder(mem, arrow.BinaryTypes.Binary), nil
	case "large_binary":
		return newBinaryEncoder(mem, arrow.BinaryTypes.LargeBinary), nil
	}

	if width, ok := strings.CutPrefix(typ, "fixed_size_binary["); ok && strings.HasSuffix(width, "]") {
		n, err := strconv.Atoi(strings.TrimSuffix(width, "]"))
		if err != nil || n <= 0 {
			return nil, xerrors.Errorf("invalid byte width in %q: %w", typ, arrow.ErrInvalid)
		}
		b := array.NewFixedSizeBinaryDictionaryBuilder(mem, &arrow.FixedSizeBinaryType{ByteWidth: n})
		return &encoder{bldr: b, append: func(s string) error { return b.Append([]byte(s)) }}, nil
	}

	return nil, xerrors.Errorf("unsupported value type %q: %w", typ, arrow.ErrNotImplemented)
}

func newBinaryEncoder(mem memory.Allocator, dt arrow.BinaryDataType) *encoder {
	b := array.NewBinaryDictionaryBuilder(mem, dt)
	return &encoder{bldr: b, append: b.AppendString}
}

func newNumericEncoder[T arrow.NumericType](mem memory.Allocator, dt arrow.FixedWidthDataType, parse func(string) (T, error)) *encoder {
	b := array.NewNumericDictionaryBuilder[T](mem, dt)
	return &encoder{bldr: b, append: func(s string) error {
		v, err := parse(s)
		if err != nil {
			return err
		}
		return b.Append(v)
	}}
}

func parseInt[T arrow.IntType](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bitSize)
		return T(v), err
	}
}

func parseUint[T arrow.UintType](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bitSize)
		return T(v), err
	}
}

func parseFloat[T arrow.FloatType](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bitSize)
		return T(v), err
	}
}
