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

// Record opens or advances a record around rec, which identifies the
// record being serialized (pass a pointer to the value; the identity
// distinguishes nested records). It is designed to drive a loop:
//
//	for ctx.Record(&rec) {
//		if ctx.Key("name") { ... }
//	}
//
// The body runs once per internal pass. On write the passes are: count
// the fields, write the names, write the values. On read: mark which
// names the body wants, then deliver values in wire order, skipping
// fields the body never asked for. A field name present in the body but
// absent from the wire is simply never delivered: its destination keeps
// whatever value it already had.
//
// Inside a table, the schema passes run for the first row only; every
// later row must visit the same field set in the same order, and rows
// that do not are Malformed.
func (c *Context) Record(rec interface{}) bool {
	if c.err != nil {
		return false
	}

	if c.mode == ModeRead {
		return c.readRecord(rec)
	}
	return c.writeRecord(rec)
}

func (c *Context) readRecord(rec interface{}) bool {
	s := &c.scopes[c.depth]
	if s.kind == scopeRecord && s.addr == rec {
		switch s.mode {
		case recordKeyIO:
			s.mode = recordValueIO
			s.iterator = 0
			s.mark = noMark
			return c.probeNextField()
		case recordValueIO:
			if s.iterator == s.length {
				c.endOp(opRecord)
				return false
			}
			// A full pass that consumed nothing means the procedure
			// never asked for the field the merge is parked on. Without
			// this check a table row visiting a different field set than
			// the first row would spin forever.
			if s.iterator == s.mark {
				c.malformed("record procedure did not consume a requested field")
				return false
			}
			s.mark = s.iterator
			return c.probeNextField()
		default:
			c.malformed("record in invalid state")
			return false
		}
	}

	parent := s
	if c.beginOp(opRecord) != nil {
		return false
	}
	s = &c.scopes[c.depth]
	s.addr = rec

	// Table rows carry no record marker of their own.
	if parent.kind != scopeTable {
		m, err := c.readMarker()
		if err != nil {
			return false
		}
		if m != markerRecord {
			c.malformed("expected record")
			return false
		}
	}

	// Inside a table the schema lives at the table's scope, shared by
	// every row; discovery runs against the first row only.
	schemaScope := s
	if parent.kind == scopeTable {
		schemaScope = parent
	}
	if parent.kind != scopeTable || parent.iterator == 1 {
		s.mode = recordKeyIO

		numFields, err := c.readUvarint()
		if err != nil {
			return false
		}
		if numFields > uint64(c.cfg.MaxRecordFields) {
			c.malformed("too many record fields")
			return false
		}

		schema := schemaScope.schema[:numFields]
		for i := range schema {
			schema[i].field = ""
		}
		schemaScope.width = numFields

		for i := uint64(0); i < numFields; i++ {
			var sym string
			if c.Symbol(&sym) != nil {
				return false
			}
			schema[i].symbol = sym
		}
	} else {
		s.mode = recordValueIO
	}

	s.schema = schemaScope.schema
	s.length = schemaScope.width

	if s.mode == recordValueIO {
		s.mark = noMark
		return c.probeNextField()
	}
	return true
}

func (c *Context) writeRecord(rec interface{}) bool {
	s := &c.scopes[c.depth]
	if s.kind == scopeRecord && s.addr == rec {
		switch s.mode {
		case recordMeasureWidth:
			s.mode = recordKeyIO
			if s.length > uint64(c.cfg.MaxRecordFields) {
				c.malformed("too many record fields")
				return false
			}
			if c.writeUvarint(s.length) != nil {
				return false
			}
			if parent := &c.scopes[c.depth-1]; parent.kind == scopeTable {
				parent.width = s.length
			}
			return true
		case recordKeyIO:
			s.mode = recordValueIO
			s.iterator = 0
			return true
		case recordValueIO:
			if parent := &c.scopes[c.depth-1]; parent.kind == scopeTable && s.iterator != parent.width {
				c.malformed("table row field set differs from first row")
				return false
			}
			c.endOp(opRecord)
			return false
		default:
			c.malformed("record in invalid state")
			return false
		}
	}

	parent := s
	if c.beginOp(opRecord) != nil {
		return false
	}
	s = &c.scopes[c.depth]
	s.addr = rec

	if parent.kind != scopeTable || parent.iterator == 1 {
		s.mode = recordMeasureWidth
		if parent.kind != scopeTable {
			if c.writeMarker(markerRecord) != nil {
				return false
			}
		}
	} else {
		// Rows after the first reuse the measured schema and go straight
		// to value output.
		s.mode = recordValueIO
	}
	return true
}

// probeNextField advances the delivery pass to the next schema entry the
// caller requested, discarding unrequested values along the way. It
// returns false once the record is exhausted (closing the record scope)
// or on failure.
func (c *Context) probeNextField() bool {
	s := &c.scopes[c.depth]
	for s.iterator < s.length {
		if s.schema[s.iterator].field != "" {
			return true
		}
		if c.skipNext(c.cfg.MaxDepth-uint32(c.depth)) != nil {
			return false
		}
		s.iterator++
	}
	c.endOp(opRecord)
	return false
}

// Key reads or writes one field of the record opened by Record.
// The field's value must be serialized when, and only when, Key returns
// true:
//
//	if ctx.Key("hp") {
//		ctx.Int32(&rec.HP)
//	}
//
// Fields are matched by name: the wire may carry extra keys, missing
// keys, or keys in a different order than the procedure visits them.
func (c *Context) Key(name string) bool {
	if c.err != nil {
		return false
	}
	s := &c.scopes[c.depth]
	if s.kind != scopeRecord {
		c.malformed("key outside of record")
		return false
	}

	if c.mode == ModeRead {
		switch s.mode {
		case recordKeyIO:
			// Matching pass: remember which wire fields the procedure
			// wants. No value moves yet.
			for i := uint64(0); i < s.length; i++ {
				if s.schema[i].symbol == name {
					s.schema[i].field = name
				}
			}
			s.iterator++
			return false
		case recordValueIO:
			if s.iterator < s.length && name == s.schema[s.iterator].field {
				s.iterator++
				return true
			}
			return false
		default:
			c.malformed("record in invalid state")
			return false
		}
	}

	switch s.mode {
	case recordMeasureWidth:
		s.length++
		return false
	case recordKeyIO:
		s.iterator++
		sym := name
		c.Symbol(&sym)
		return false
	case recordValueIO:
		s.iterator++
		return true
	default:
		c.malformed("record in invalid state")
		return false
	}
}
