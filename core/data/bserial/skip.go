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
	"math"

	"github.com/bullno1/libs/core/data/binary"
)

// skipNext discards a single value starting at the current read
// position, including everything it contains. Symbol definitions
// encountered while skipping are still interned so later references
// resolve. depth bounds how far containers may nest below this point.
func (c *Context) skipNext(depth uint32) error {
	if c.err != nil {
		return c.err
	}

	m, err := c.readMarker()
	if err != nil {
		return err
	}

	switch m {
	case markerUInt, markerSInt:
		_, err := c.readUvarint()
		return err
	case markerF32:
		return c.skipBytes(4)
	case markerF64:
		return c.skipBytes(8)
	case markerBlob:
		length, err := c.readUvarint()
		if err != nil {
			return err
		}
		return c.skipBytes(length)
	case markerSymDef:
		return c.skipSymbolDef()
	case markerSymRef:
		id, err := c.readUvarint()
		if err != nil {
			return err
		}
		if id >= uint64(len(c.symbols)) {
			return c.malformed("reference to undefined symbol")
		}
		return nil
	case markerArray:
		if depth == 0 {
			return c.malformed("max depth exceeded")
		}
		length, err := c.readUvarint()
		if err != nil {
			return err
		}
		for i := uint64(0); i < length; i++ {
			if err := c.skipNext(depth - 1); err != nil {
				return err
			}
		}
		return nil
	case markerTable:
		if depth == 0 {
			return c.malformed("max depth exceeded")
		}
		numRows, err := c.readUvarint()
		if err != nil {
			return err
		}
		if numRows == 0 {
			return nil
		}
		numCols, err := c.readUvarint()
		if err != nil {
			return err
		}
		if numCols > uint64(c.cfg.MaxRecordFields) {
			return c.malformed("too many record fields")
		}
		for i := uint64(0); i < numCols; i++ {
			if err := c.skipSymbol(); err != nil {
				return err
			}
		}
		for row := uint64(0); row < numRows; row++ {
			for col := uint64(0); col < numCols; col++ {
				if err := c.skipNext(depth - 1); err != nil {
					return err
				}
			}
		}
		return nil
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
		for i := uint64(0); i < numFields; i++ {
			if err := c.skipSymbol(); err != nil {
				return err
			}
		}
		for i := uint64(0); i < numFields; i++ {
			if err := c.skipNext(depth - 1); err != nil {
				return err
			}
		}
		return nil
	default:
		return c.malformed("unknown marker")
	}
}

// skipSymbol discards one symbol, interning definitions as it goes.
func (c *Context) skipSymbol() error {
	m, err := c.readMarker()
	if err != nil {
		return err
	}
	switch m {
	case markerSymDef:
		return c.skipSymbolDef()
	case markerSymRef:
		id, err := c.readUvarint()
		if err != nil {
			return err
		}
		if id >= uint64(len(c.symbols)) {
			return c.malformed("reference to undefined symbol")
		}
		return nil
	default:
		return c.malformed("expected symbol")
	}
}

func (c *Context) skipSymbolDef() error {
	length, err := c.readUvarint()
	if err != nil {
		return err
	}
	if uint32(len(c.symbols)) >= c.cfg.MaxNumSymbols {
		return c.malformed("symbol table full")
	}
	if length > uint64(c.cfg.MaxSymbolLen) {
		return c.malformed("symbol too long")
	}
	if err := binary.ReadFull(c.in, c.symBuf[:length]); err != nil {
		return c.ioFail(err)
	}
	c.symbols = append(c.symbols, symbol{text: string(c.symBuf[:length])})
	return nil
}

func (c *Context) skipBytes(n uint64) error {
	for n > 0 {
		chunk := n
		if chunk > math.MaxInt64 {
			chunk = math.MaxInt64
		}
		if err := binary.Skip(c.in, chunk); err != nil {
			return c.ioFail(err)
		}
		n -= chunk
	}
	return nil
}
