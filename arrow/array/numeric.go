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

package array

import (
	"fmt"
	"math"
	"strings"

	"github.com/apache/arrow/go/dictenc/arrow"
)

// Numeric is an immutable sequence of fixed width numeric values of
// type T. Temporal types are viewed through their physical integer type.
type Numeric[T arrow.NumericType] struct {
	array
	values []T
}

// NewNumericData returns a new Numeric array from data.
func NewNumericData[T arrow.NumericType](data *Data) *Numeric[T] {
	a := &Numeric[T]{}
	a.refCount = 1
	a.setData(data)
	return a
}

// Value returns the value at the specified index.
func (a *Numeric[T]) Value(i int) T { return a.values[i] }

// Values returns the values.
func (a *Numeric[T]) Values() []T { return a.values }

func (a *Numeric[T]) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i, v := range a.values {
		if i > 0 {
			fmt.Fprintf(o, " ")
		}
		switch {
		case a.IsNull(i):
			o.WriteString("(null)")
		default:
			fmt.Fprintf(o, "%v", v)
		}
	}
	o.WriteString("]")
	return o.String()
}

func (a *Numeric[T]) setData(data *Data) {
	a.array.setData(data)
	if vals := data.buffers[1]; vals != nil {
		a.values = arrow.CastFromBytesTo[T](vals.Bytes())
		beg := a.data.offset
		end := beg + a.data.length
		a.values = a.values[beg:end]
	}
}

func (a *Numeric[T]) getOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}

	v := a.values[i]
	// JSON has no representation for these
	if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(v)
	}
	return v
}

func (a *Numeric[T]) MarshalJSON() ([]byte, error) { return marshalValues(a) }

var (
	_ Interface = (*Numeric[int32])(nil)
	_ Interface = (*Numeric[float64])(nil)
)
