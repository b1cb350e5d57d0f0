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

import "github.com/bullno1/libs/core/data/binary"

// symbol is one interned name. Ids are positional: a symbol's id is its
// index in the table, assigned in first-occurrence order.
type symbol struct {
	text string
}

// MurmurOAAT64
func symbolHash(s string) uint64 {
	h := uint64(525201411107845655)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 0x5bd1e9955bd1e995
		h ^= h >> 47
	}
	return h
}

// probeStep advances an open-addressing probe sequence over a power of
// two sized index, using the top hash bits as the step.
func probeStep(hash uint64, exp, idx int32) int32 {
	mask := (uint32(1) << exp) - 1
	step := uint32(hash>>(64-exp)) | 1
	return int32((uint32(idx) + step) & mask)
}

// Symbol reads or writes an interned name.
//
// Writing the same name twice through one Context emits its text once
// (a definition) and a compact id reference afterwards. On read, *s is
// set to the interned text; references to ids that have not been defined
// yet are Malformed.
func (c *Context) Symbol(s *string) error {
	if err := c.beginOp(opSymbol); err != nil {
		return err
	}

	if c.mode == ModeRead {
		m, err := c.readMarker()
		if err != nil {
			return err
		}
		switch m {
		case markerSymDef:
			if uint32(len(c.symbols)) >= c.cfg.MaxNumSymbols {
				return c.malformed("symbol table full")
			}
			length, err := c.readUvarint()
			if err != nil {
				return err
			}
			if length > uint64(c.cfg.MaxSymbolLen) {
				return c.malformed("symbol too long")
			}
			if err := binary.ReadFull(c.in, c.symBuf[:length]); err != nil {
				return c.ioFail(err)
			}
			text := string(c.symBuf[:length])
			c.symbols = append(c.symbols, symbol{text: text})
			*s = text
		case markerSymRef:
			id, err := c.readUvarint()
			if err != nil {
				return err
			}
			if id >= uint64(len(c.symbols)) {
				return c.malformed("reference to undefined symbol")
			}
			*s = c.symbols[id].text
		default:
			return c.malformed("expected symbol")
		}
	} else {
		length := uint64(len(*s))
		if length > uint64(c.cfg.MaxSymbolLen) {
			return c.malformed("symbol too long")
		}
		hash := symbolHash(*s)
		for i := int32(hash); ; {
			i = probeStep(hash, c.indexExp, i)
			slot := c.index[i]
			if slot == 0 {
				if uint32(len(c.symbols)) >= c.cfg.MaxNumSymbols {
					return c.malformed("symbol table full")
				}
				c.index[i] = int32(len(c.symbols)) + 1
				c.symbols = append(c.symbols, symbol{text: *s})

				if err := c.writeMarker(markerSymDef); err != nil {
					return err
				}
				if err := c.writeUvarint(length); err != nil {
					return err
				}
				if err := c.writeString(*s); err != nil {
					return err
				}
				break
			} else if c.symbols[slot-1].text == *s {
				if err := c.writeMarker(markerSymRef); err != nil {
					return err
				}
				if err := c.writeUvarint(uint64(slot - 1)); err != nil {
					return err
				}
				break
			}
		}
	}

	return c.endOp(opSymbol)
}
