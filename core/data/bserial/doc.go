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

// Package bserial reads and writes self-describing structured values with
// backward compatibility: record fields can be added, removed or reordered
// between the code that wrote a stream and the code that reads it back.
//
// Every value on the wire starts with a one byte kind marker:
//
//	1=UInt 2=SInt 3=F32 4=F64 5=Blob 6=SymbolDef 7=SymbolRef
//	8=Array 9=Table 10=Record
//
// Integers are varints (signed ones zig-zag biased), floats are raw
// little-endian bits, blobs are a length followed by raw bytes. Field and
// column names are interned symbols: the first occurrence is written in
// full (SymbolDef), later occurrences refer back by id (SymbolRef).
//
// A Record is a field count, that many symbol names, then that many
// values. A Table is an array whose elements are records sharing one
// schema: the column names are written once, before the first row, and
// every row is just its values.
//
// A Context traverses one stream in a fixed direction. The same
// serialization procedure drives both reading and writing, which keeps
// the two sides from drifting apart:
//
//	func serializePoint(ctx *bserial.Context, p *Point) error {
//		for ctx.Record(p) {
//			if ctx.Key("x") {
//				ctx.Float32(&p.X)
//			}
//			if ctx.Key("y") {
//				ctx.Float32(&p.Y)
//			}
//		}
//		return ctx.Err()
//	}
//
// The engine invokes the loop body once per internal pass. On write it
// first counts the fields, then writes the names, then the values. On
// read it first learns which fields the procedure wants, then walks the
// wire schema delivering requested values and silently skipping the
// rest. Fields are matched by name, never by position, so the procedure
// may list its fields in any order, and data written with extra or
// missing fields still decodes cleanly.
//
// A Context's working storage is sized up front from its Config; the
// only traversal-time allocations are the interned symbol texts and the
// payloads of String reads. Once any operation fails, the failure
// is latched and every later operation is a no-op returning the same
// error, so long serialization chains only need a single error check at
// the end.
package bserial
