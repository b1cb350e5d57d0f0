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

import (
	"io"
	"math"
)

// WriteFloat32 encodes f to w as 4 bytes, least-significant byte first.
func WriteFloat32(w io.Writer, f float32) error {
	bits := math.Float32bits(f)
	var buf [4]byte
	for i := range buf {
		buf[i] = byte(bits >> (i * 8))
	}
	return WriteAll(w, buf[:])
}

// ReadFloat32 decodes a 4 byte little-endian float from r.
func ReadFloat32(r io.Reader) (float32, error) {
	var buf [4]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	var bits uint32
	for i := range buf {
		bits |= uint32(buf[i]) << (i * 8)
	}
	return math.Float32frombits(bits), nil
}

// WriteFloat64 encodes f to w as 8 bytes, least-significant byte first.
func WriteFloat64(w io.Writer, f float64) error {
	bits := math.Float64bits(f)
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(bits >> (i * 8))
	}
	return WriteAll(w, buf[:])
}

// ReadFloat64 decodes an 8 byte little-endian double from r.
func ReadFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	var bits uint64
	for i := range buf {
		bits |= uint64(buf[i]) << (i * 8)
	}
	return math.Float64frombits(bits), nil
}
