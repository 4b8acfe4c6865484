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

/*
Package arrow provides the logical data types used to describe dictionary
values produced by the array package.

A dictionary is materialized from a memo table (see internal/hashing) into a
contiguous columnar layout: a validity bitmap followed by one or two value
buffers, laid out according to the logical type of the values.

	boolean            [validity, bit-packed values]
	fixed width        [validity, values]
	binary / utf8      [validity, offsets, data]
	fixed size binary  [validity, data]

The validity bitmap is nil when the dictionary holds no null.
*/
package arrow
