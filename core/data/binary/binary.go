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

// Package binary provides endian-independent primitive encoding over byte
// streams.
//
// Integers are encoded as LEB128-style varints: 7 data bits per byte with
// the high bit set on every byte except the last, at most MaxVarintSize
// bytes. Signed integers are zig-zag biased first so that small negative
// numbers stay short. Floats are written as their IEEE-754 bit patterns,
// least-significant byte first, regardless of host byte order.
//
// Streams are plain io.Reader/io.Writer values. Reads are retried until
// the requested byte count is satisfied or the stream fails.
package binary

import (
	"io"

	"github.com/bullno1/libs/core/fault"
)

// MaxVarintSize is the largest number of bytes a varint may occupy.
const MaxVarintSize = 10

// ErrVarintTooLong is returned when a varint fails to terminate within
// MaxVarintSize bytes.
const ErrVarintTooLong = fault.Const("varint exceeds 10 bytes")

// skipBlockSize is how many bytes Skip discards at a time when the stream
// offers no faster path.
const skipBlockSize = 1024

// Skipper is the optional fast-forward interface a reader stream may
// implement to make Skip an O(1) operation.
type Skipper interface {
	Skip(n uint64) error
}

// ReadFull reads exactly len(p) bytes from r.
// Unlike io.ReadFull it never reports io.EOF: a stream that ends before
// the requested count is satisfied is an I/O failure to this package.
func ReadFull(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// ReadByte reads a single byte from r.
func ReadByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return b, err
	}
	var buf [1]byte
	err := ReadFull(r, buf[:])
	return buf[0], err
}

// WriteAll writes p to w in its entirety.
func WriteAll(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// Skip discards n bytes from r.
// It uses the stream's Skipper if available, then io.Seeker, and finally
// falls back to reading the bytes away in fixed-size blocks.
func Skip(r io.Reader, n uint64) error {
	if n == 0 {
		return nil
	}
	switch r := r.(type) {
	case Skipper:
		return r.Skip(n)
	case io.Seeker:
		_, err := r.Seek(int64(n), io.SeekCurrent)
		return err
	}
	var buf [skipBlockSize]byte
	for n > 0 {
		blk := uint64(skipBlockSize)
		if blk > n {
			blk = n
		}
		if err := ReadFull(r, buf[:blk]); err != nil {
			return err
		}
		n -= blk
	}
	return nil
}
