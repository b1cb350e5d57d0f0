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

package bserial

import "fmt"

// Trace calls fn once per open scope, outermost first, with a one-line
// description of each. It is a diagnostic aid for locating where in a
// deeply nested structure a failure happened.
func (c *Context) Trace(fn func(depth int, desc string)) {
	for d := 0; d <= c.depth; d++ {
		s := &c.scopes[d]
		var desc string
		switch s.kind {
		case scopeRoot:
			desc = "Root"
		case scopeBlob:
			desc = fmt.Sprintf("Blob(%d)", s.length)
		case scopeArray:
			desc = fmt.Sprintf("Array(%d/%d)", s.iterator, s.length)
		case scopeTable:
			desc = fmt.Sprintf("Table(%d/%d)", s.iterator, s.length)
		case scopeRecord:
			desc = fmt.Sprintf("Record(%d/%d)(%v)", s.iterator, s.length, s.mode)
		default:
			desc = "Unknown"
		}
		fn(d, desc)
	}
}
