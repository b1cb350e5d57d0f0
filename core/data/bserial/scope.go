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

type scopeKind uint8

const (
	scopeRoot scopeKind = iota
	scopeBlob
	scopeArray
	scopeTable
	scopeRecord
)

type opKind uint8

const (
	opNumeric opKind = iota
	opBlob
	opSymbol
	opTable
	opArray
	opRecord
)

type recordMode uint8

const (
	recordMeasureWidth recordMode = iota
	recordKeyIO
	recordValueIO
)

func (m recordMode) String() string {
	switch m {
	case recordMeasureWidth:
		return "MeasureWidth"
	case recordKeyIO:
		return "KeyIO"
	case recordValueIO:
		return "ValueIO"
	default:
		return "Unknown"
	}
}

// fieldMapping is one entry of a record or table scope's schema.
// symbol is the name on the wire; field is set during the matching pass
// when the caller's procedure asks for a field of that name, and stays
// empty for fields the caller never requests.
type fieldMapping struct {
	symbol string
	field  string
}

// scope is one frame of the traversal stack.
type scope struct {
	kind scopeKind

	iterator uint64
	length   uint64

	// record/table state
	mode    recordMode
	schema  []fieldMapping
	prevTop int
	addr    interface{}
	width   uint64
	mark    uint64
}

// noMark is the sentinel for a delivery pass that has not been probed yet.
const noMark = ^uint64(0)

func (c *Context) pushScope(kind scopeKind) error {
	if c.err != nil {
		return c.err
	}
	if c.depth+1 >= len(c.scopes) {
		return c.malformed("max depth exceeded")
	}
	c.depth++
	s := &c.scopes[c.depth]
	*s = scope{kind: kind, prevTop: c.schemaTop}

	// Record and table scopes each carve a schema block from the
	// per-depth pool so that nested records never share storage.
	if kind == scopeRecord || kind == scopeTable {
		fields := int(c.cfg.MaxRecordFields)
		s.schema = c.schemaPool[c.schemaTop : c.schemaTop+fields]
		c.schemaTop += fields
	}
	return nil
}

func (c *Context) popScope() error {
	if c.err != nil {
		return c.err
	}
	if c.scopes[c.depth].kind == scopeRoot {
		return c.malformed("unbalanced scope pop")
	}
	c.schemaTop = c.scopes[c.depth].prevTop
	c.depth--
	return nil
}

func (c *Context) beginOp(op opKind) error {
	if c.err != nil {
		return c.err
	}
	s := &c.scopes[c.depth]

	// A blob's body must be fully consumed before anything else happens.
	if s.kind == scopeBlob {
		return c.malformed("blob body expected")
	}
	if s.kind == scopeTable && op != opRecord {
		return c.malformed("table elements must be records")
	}
	if s.kind == scopeArray || s.kind == scopeTable {
		s.iterator++
	}

	switch op {
	case opBlob:
		return c.pushScope(scopeBlob)
	case opArray:
		return c.pushScope(scopeArray)
	case opTable:
		return c.pushScope(scopeTable)
	case opRecord:
		return c.pushScope(scopeRecord)
	}
	return nil
}

func (c *Context) endOp(op opKind) error {
	if c.err != nil {
		return c.err
	}

	// A record can have nested ops within its values; only the op that
	// ends the record itself pops the scope. Same for blobs.
	s := &c.scopes[c.depth]
	if (s.kind == scopeBlob && op == opBlob) ||
		(s.kind == scopeRecord && op == opRecord) {
		if err := c.popScope(); err != nil {
			return err
		}
	}

	// Arrays and tables have no explicit end call: they close themselves
	// once enough elements have passed through.
	for {
		s = &c.scopes[c.depth]
		if (s.kind != scopeArray && s.kind != scopeTable) || s.iterator != s.length {
			return nil
		}
		if err := c.popScope(); err != nil {
			return err
		}
	}
}
