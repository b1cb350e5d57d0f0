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

import "math"

// Adapters for integers narrower than 64 bits. All of them travel as
// varints on the wire; the read side additionally checks that the
// decoded value fits the destination type.

// Int8 reads or writes a signed 8 bit integer.
func (c *Context) Int8(v *int8) error {
	wide := int64(*v)
	if err := c.Int64(&wide); err != nil {
		return err
	}
	if wide < math.MinInt8 || wide > math.MaxInt8 {
		return c.malformed("value out of int8 range")
	}
	*v = int8(wide)
	return nil
}

// Int16 reads or writes a signed 16 bit integer.
func (c *Context) Int16(v *int16) error {
	wide := int64(*v)
	if err := c.Int64(&wide); err != nil {
		return err
	}
	if wide < math.MinInt16 || wide > math.MaxInt16 {
		return c.malformed("value out of int16 range")
	}
	*v = int16(wide)
	return nil
}

// Int32 reads or writes a signed 32 bit integer.
func (c *Context) Int32(v *int32) error {
	wide := int64(*v)
	if err := c.Int64(&wide); err != nil {
		return err
	}
	if wide < math.MinInt32 || wide > math.MaxInt32 {
		return c.malformed("value out of int32 range")
	}
	*v = int32(wide)
	return nil
}

// Int reads or writes a signed integer of platform width.
func (c *Context) Int(v *int) error {
	wide := int64(*v)
	if err := c.Int64(&wide); err != nil {
		return err
	}
	if wide < math.MinInt || wide > math.MaxInt {
		return c.malformed("value out of int range")
	}
	*v = int(wide)
	return nil
}

// Uint8 reads or writes an unsigned 8 bit integer.
func (c *Context) Uint8(v *uint8) error {
	wide := uint64(*v)
	if err := c.Uint64(&wide); err != nil {
		return err
	}
	if wide > math.MaxUint8 {
		return c.malformed("value out of uint8 range")
	}
	*v = uint8(wide)
	return nil
}

// Uint16 reads or writes an unsigned 16 bit integer.
func (c *Context) Uint16(v *uint16) error {
	wide := uint64(*v)
	if err := c.Uint64(&wide); err != nil {
		return err
	}
	if wide > math.MaxUint16 {
		return c.malformed("value out of uint16 range")
	}
	*v = uint16(wide)
	return nil
}

// Uint32 reads or writes an unsigned 32 bit integer.
func (c *Context) Uint32(v *uint32) error {
	wide := uint64(*v)
	if err := c.Uint64(&wide); err != nil {
		return err
	}
	if wide > math.MaxUint32 {
		return c.malformed("value out of uint32 range")
	}
	*v = uint32(wide)
	return nil
}
