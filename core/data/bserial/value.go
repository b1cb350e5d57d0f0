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
	"github.com/bullno1/libs/core/data/binary"
)

// Uint64 reads or writes an unsigned varint.
func (c *Context) Uint64(v *uint64) error {
	if err := c.beginOp(opNumeric); err != nil {
		return err
	}
	if c.mode == ModeRead {
		m, err := c.readMarker()
		if err != nil {
			return err
		}
		if m != markerUInt {
			return c.malformed("expected uint")
		}
		x, err := c.readUvarint()
		if err != nil {
			return err
		}
		*v = x
	} else {
		if err := c.writeMarker(markerUInt); err != nil {
			return err
		}
		if err := c.writeUvarint(*v); err != nil {
			return err
		}
	}
	return c.endOp(opNumeric)
}

// Int64 reads or writes a signed, zig-zag biased varint.
func (c *Context) Int64(v *int64) error {
	if err := c.beginOp(opNumeric); err != nil {
		return err
	}
	if c.mode == ModeRead {
		m, err := c.readMarker()
		if err != nil {
			return err
		}
		if m != markerSInt {
			return c.malformed("expected sint")
		}
		x, err := binary.ReadVarint(c.in)
		if err != nil {
			return c.ioFail(err)
		}
		*v = x
	} else {
		if err := c.writeMarker(markerSInt); err != nil {
			return err
		}
		if err := binary.WriteVarint(c.out, *v); err != nil {
			return c.ioFail(err)
		}
	}
	return c.endOp(opNumeric)
}

// Float32 reads or writes a single precision float.
func (c *Context) Float32(v *float32) error {
	if err := c.beginOp(opNumeric); err != nil {
		return err
	}
	if c.mode == ModeRead {
		m, err := c.readMarker()
		if err != nil {
			return err
		}
		if m != markerF32 {
			return c.malformed("expected f32")
		}
		x, err := binary.ReadFloat32(c.in)
		if err != nil {
			return c.ioFail(err)
		}
		*v = x
	} else {
		if err := c.writeMarker(markerF32); err != nil {
			return err
		}
		if err := binary.WriteFloat32(c.out, *v); err != nil {
			return c.ioFail(err)
		}
	}
	return c.endOp(opNumeric)
}

// Float64 reads or writes a double precision float.
func (c *Context) Float64(v *float64) error {
	if err := c.beginOp(opNumeric); err != nil {
		return err
	}
	if c.mode == ModeRead {
		m, err := c.readMarker()
		if err != nil {
			return err
		}
		if m != markerF64 {
			return c.malformed("expected f64")
		}
		x, err := binary.ReadFloat64(c.in)
		if err != nil {
			return c.ioFail(err)
		}
		*v = x
	} else {
		if err := c.writeMarker(markerF64); err != nil {
			return err
		}
		if err := binary.WriteFloat64(c.out, *v); err != nil {
			return c.ioFail(err)
		}
	}
	return c.endOp(opNumeric)
}

// BlobHeader reads or writes a blob's marker and length.
// On read, *length is set to the blob's size; the body must then be
// consumed with BlobBody before any other operation.
func (c *Context) BlobHeader(length *uint64) error {
	if err := c.beginOp(opBlob); err != nil {
		return err
	}
	if err := c.markerAndLength(markerBlob, length); err != nil {
		return err
	}
	c.scopes[c.depth].length = *length
	return nil
}

// BlobBody reads or writes the body of the blob opened by BlobHeader.
// buf must hold at least as many bytes as the header's length.
func (c *Context) BlobBody(buf []byte) error {
	if c.err != nil {
		return c.err
	}
	s := &c.scopes[c.depth]
	if s.kind != scopeBlob {
		return c.malformed("no open blob")
	}
	if s.length > 0 {
		if c.mode == ModeRead {
			if err := binary.ReadFull(c.in, buf[:s.length]); err != nil {
				return c.ioFail(err)
			}
		} else {
			if err := binary.WriteAll(c.out, buf[:s.length]); err != nil {
				return c.ioFail(err)
			}
		}
	}
	return c.endOp(opBlob)
}

// Blob reads or writes a binary blob in one step.
// On write, buf[:*length] is written. On read, *length is the capacity of
// buf going in and the blob's actual size coming out; a blob larger than
// the capacity is Malformed.
func (c *Context) Blob(buf []byte, length *uint64) error {
	actual := *length
	if err := c.BlobHeader(&actual); err != nil {
		return err
	}
	if actual > *length {
		return c.malformed("blob larger than buffer")
	}
	*length = actual
	return c.BlobBody(buf)
}

// String reads or writes a string as a blob.
// The read side allocates the payload; callers that need a hard size
// bound should use BlobHeader and BlobBody instead.
func (c *Context) String(s *string) error {
	if err := c.beginOp(opBlob); err != nil {
		return err
	}
	length := uint64(len(*s))
	if err := c.markerAndLength(markerBlob, &length); err != nil {
		return err
	}
	c.scopes[c.depth].length = length
	if c.mode == ModeRead {
		buf := make([]byte, length)
		if length > 0 {
			if err := binary.ReadFull(c.in, buf); err != nil {
				return c.ioFail(err)
			}
		}
		*s = string(buf)
	} else if length > 0 {
		if err := c.writeString(*s); err != nil {
			return err
		}
	}
	return c.endOp(opBlob)
}

// Array reads or writes an array header.
// On write, *length elements must follow; on read, *length is set to the
// element count and that many values must be consumed. The array scope
// closes itself after the last element.
func (c *Context) Array(length *uint64) error {
	if err := c.beginOp(opArray); err != nil {
		return err
	}
	if err := c.markerAndLength(markerArray, length); err != nil {
		return err
	}
	if *length > 0 {
		c.scopes[c.depth].length = *length
		return nil
	}
	return c.endOp(opArray)
}

// Table reads or writes a table header.
// A table is an array whose elements must all be records with the same
// field set; the schema is written once, with the first row.
func (c *Context) Table(length *uint64) error {
	if err := c.beginOp(opTable); err != nil {
		return err
	}
	if err := c.markerAndLength(markerTable, length); err != nil {
		return err
	}
	if *length > 0 {
		c.scopes[c.depth].length = *length
		return nil
	}
	return c.endOp(opTable)
}
