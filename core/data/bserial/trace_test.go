// Copyright (C) 2024 bullno1
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bserial_test

import (
	"bytes"
	"testing"

	"github.com/bullno1/libs/core/assert"
	"github.com/bullno1/libs/core/data/bserial"
)

func TestTraceAtRoot(t *testing.T) {
	w := bserial.NewWriter(testConfig, &bytes.Buffer{})
	var lines []string
	w.Trace(func(depth int, desc string) {
		lines = append(lines, desc)
	})
	assert.For(t, "scopes").That(lines).DeepEquals([]string{"Root"})
}

func TestTraceNested(t *testing.T) {
	w := bserial.NewWriter(testConfig, &bytes.Buffer{})
	length := uint64(2)
	assert.For(t, "array").ThatError(w.Array(&length)).Succeeded()

	type point struct{ X uint64 }
	points := []point{{X: 1}, {X: 2}}
	var traced []string
	for i := range points {
		p := &points[i]
		for w.Record(p) {
			if w.Key("x") {
				w.Uint64(&p.X)
			}
			if traced == nil {
				w.Trace(func(depth int, desc string) {
					traced = append(traced, desc)
				})
			}
		}
	}
	assert.For(t, "write").ThatError(w.Err()).Succeeded()

	assert.For(t, "depth").That(len(traced)).Equals(3)
	assert.For(t, "root").ThatString(traced[0]).Equals("Root")
	assert.For(t, "array").ThatString(traced[1]).Equals("Array(1/2)")
	assert.For(t, "record").ThatString(traced[2]).Contains("Record(")
}
