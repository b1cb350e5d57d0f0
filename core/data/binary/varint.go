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

package binary

import "io"

// WriteUvarint encodes v to w as an unsigned varint.
func WriteUvarint(w io.Writer, v uint64) error {
	var buf [MaxVarintSize]byte
	n := 0
	for i := 0; i < MaxVarintSize; i++ {
		if v >= 0x80 {
			n++
		}
		buf[i] = byte(v | 0x80)
		v >>= 7
	}
	buf[n] ^= 0x80
	return WriteAll(w, buf[:n+1])
}

// ReadUvarint decodes an unsigned varint from r.
// A varint that consumes MaxVarintSize bytes without terminating returns
// ErrVarintTooLong.
func ReadUvarint(r io.Reader) (uint64, error) {
	var v uint64
	for i := 0; i < MaxVarintSize; i++ {
		b, err := ReadByte(r)
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return v, nil
		}
	}
	return 0, ErrVarintTooLong
}

// WriteVarint encodes v to w as a zig-zag biased varint.
func WriteVarint(w io.Writer, v int64) error {
	uv := uint64(v) << 1
	if v < 0 {
		uv = ^uv
	}
	return WriteUvarint(w, uv)
}

// ReadVarint decodes a zig-zag biased varint from r.
func ReadVarint(r io.Reader) (int64, error) {
	uv, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	v := int64(uv >> 1)
	if uv&1 != 0 {
		v = ^v
	}
	return v, nil
}
