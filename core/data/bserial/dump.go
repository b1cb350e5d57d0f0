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

import (
	"fmt"
	"io"
	"strings"

	"github.com/bullno1/libs/core/data/binary"
)

// maxDumpBlob caps how many bytes of a blob's content a dump renders.
const maxDumpBlob = 64

// Dump renders every value in the stream as indented text, one
// top-level value after another until the stream ends. It needs no
// schema: the wire is self-describing enough to walk blind.
func Dump(cfg Config, in io.Reader, w io.Writer) error {
	c := NewReader(cfg, in)
	for {
		// Probe one byte to tell a cleanly exhausted stream apart from a
		// value truncated mid-way.
		b, err := binary.ReadByte(in)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil
			}
			return c.ioFail(err)
		}
		c.peeked, c.hasPeek = b, true

		if err := c.dumpValue(w, 0, cfg.MaxDepth); err != nil {
			return err
		}
	}
}

func (c *Context) dumpValue(w io.Writer, indent int, depth uint32) error {
	m, err := c.readMarker()
	if err != nil {
		return err
	}

	pad := strings.Repeat("  ", indent)
	switch m {
	case markerUInt:
		v, err := c.readUvarint()
		if err != nil {
			return err
		}
		return dumpf(w, "%suint %d\n", pad, v)
	case markerSInt:
		v, err := c.readUvarint()
		if err != nil {
			return err
		}
		tmp := int64(v >> 1)
		if v&1 != 0 {
			tmp = ^tmp
		}
		return dumpf(w, "%ssint %d\n", pad, tmp)
	case markerF32:
		f, err := binary.ReadFloat32(c.in)
		if err != nil {
			return c.ioFail(err)
		}
		return dumpf(w, "%sf32 %v\n", pad, f)
	case markerF64:
		f, err := binary.ReadFloat64(c.in)
		if err != nil {
			return c.ioFail(err)
		}
		return dumpf(w, "%sf64 %v\n", pad, f)
	case markerBlob:
		length, err := c.readUvarint()
		if err != nil {
			return err
		}
		shown := length
		if shown > maxDumpBlob {
			shown = maxDumpBlob
		}
		buf := make([]byte, shown)
		if err := binary.ReadFull(c.in, buf); err != nil {
			return c.ioFail(err)
		}
		if err := c.skipBytes(length - shown); err != nil {
			return err
		}
		if length > shown {
			return dumpf(w, "%sblob(%d) %q...\n", pad, length, buf)
		}
		return dumpf(w, "%sblob(%d) %q\n", pad, length, buf)
	case markerSymDef:
		if err := c.skipSymbolDef(); err != nil {
			return err
		}
		return dumpf(w, "%ssymbol %q\n", pad, c.symbols[len(c.symbols)-1].text)
	case markerSymRef:
		id, err := c.readUvarint()
		if err != nil {
			return err
		}
		if id >= uint64(len(c.symbols)) {
			return c.malformed("reference to undefined symbol")
		}
		return dumpf(w, "%ssymbol %q\n", pad, c.symbols[id].text)
	case markerArray:
		if depth == 0 {
			return c.malformed("max depth exceeded")
		}
		length, err := c.readUvarint()
		if err != nil {
			return err
		}
		if err := dumpf(w, "%sarray(%d) [\n", pad, length); err != nil {
			return err
		}
		for i := uint64(0); i < length; i++ {
			if err := c.dumpValue(w, indent+1, depth-1); err != nil {
				return err
			}
		}
		return dumpf(w, "%s]\n", pad)
	case markerTable:
		if depth == 0 {
			return c.malformed("max depth exceeded")
		}
		numRows, err := c.readUvarint()
		if err != nil {
			return err
		}
		if err := dumpf(w, "%stable(%d) [\n", pad, numRows); err != nil {
			return err
		}
		if numRows > 0 {
			numCols, err := c.readUvarint()
			if err != nil {
				return err
			}
			if numCols > uint64(c.cfg.MaxRecordFields) {
				return c.malformed("too many record fields")
			}
			cols := make([]string, numCols)
			for i := range cols {
				name, err := c.dumpSymbolText()
				if err != nil {
					return err
				}
				cols[i] = name
			}
			for row := uint64(0); row < numRows; row++ {
				if err := dumpf(w, "%s  row {\n", pad); err != nil {
					return err
				}
				for _, name := range cols {
					if err := dumpf(w, "%s    %s:\n", pad, name); err != nil {
						return err
					}
					if err := c.dumpValue(w, indent+3, depth-1); err != nil {
						return err
					}
				}
				if err := dumpf(w, "%s  }\n", pad); err != nil {
					return err
				}
			}
		}
		return dumpf(w, "%s]\n", pad)
	case markerRecord:
		if depth == 0 {
			return c.malformed("max depth exceeded")
		}
		numFields, err := c.readUvarint()
		if err != nil {
			return err
		}
		if numFields > uint64(c.cfg.MaxRecordFields) {
			return c.malformed("too many record fields")
		}
		if err := dumpf(w, "%srecord(%d) {\n", pad, numFields); err != nil {
			return err
		}
		names := make([]string, numFields)
		for i := range names {
			name, err := c.dumpSymbolText()
			if err != nil {
				return err
			}
			names[i] = name
		}
		for _, name := range names {
			if err := dumpf(w, "%s  %s:\n", pad, name); err != nil {
				return err
			}
			if err := c.dumpValue(w, indent+2, depth-1); err != nil {
				return err
			}
		}
		return dumpf(w, "%s}\n", pad)
	default:
		return c.malformed("unknown marker")
	}
}

// dumpSymbolText consumes one symbol and returns its text.
func (c *Context) dumpSymbolText() (string, error) {
	m, err := c.readMarker()
	if err != nil {
		return "", err
	}
	switch m {
	case markerSymDef:
		if err := c.skipSymbolDef(); err != nil {
			return "", err
		}
		return c.symbols[len(c.symbols)-1].text, nil
	case markerSymRef:
		id, err := c.readUvarint()
		if err != nil {
			return "", err
		}
		if id >= uint64(len(c.symbols)) {
			return "", c.malformed("reference to undefined symbol")
		}
		return c.symbols[id].text, nil
	default:
		return "", c.malformed("expected symbol")
	}
}

func dumpf(w io.Writer, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
