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

// Package streams adapts files and compressed containers to the plain
// io.Reader/io.Writer streams the serialization layer consumes.
package streams

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// compressedExt is the extension that marks a zstd container.
const compressedExt = ".zst"

// ReadCloser is a readable stream with a Close that releases whatever
// the stream was layered on.
type ReadCloser interface {
	io.Reader
	io.Closer
}

// WriteCloser is a writable stream whose Close flushes any buffered
// output before releasing the underlying sink.
type WriteCloser interface {
	io.Writer
	io.Closer
}

// OpenFile opens path for reading, transparently decompressing when the
// extension marks a zstd container.
func OpenFile(path string) (ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "open input")
	}
	if filepath.Ext(path) != compressedExt {
		return f, nil
	}
	zr, err := NewDecompressor(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &layered{Reader: zr, close: []func() error{zr.Close, f.Close}}, nil
}

// CreateFile creates path for writing, transparently compressing when
// the extension marks a zstd container.
func CreateFile(path string) (WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WithMessage(err, "create output")
	}
	if filepath.Ext(path) != compressedExt {
		return f, nil
	}
	zw, err := NewCompressor(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &writeLayered{Writer: zw, close: []func() error{zw.Close, f.Close}}, nil
}

// Decompressor wraps a zstd decoder as a closable stream.
type Decompressor struct {
	dec *zstd.Decoder
}

// NewDecompressor returns a stream that reads the decompressed content
// of the zstd frame sequence in r.
func NewDecompressor(r io.Reader) (*Decompressor, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.WithMessage(err, "zstd decoder")
	}
	return &Decompressor{dec: dec}, nil
}

func (d *Decompressor) Read(p []byte) (int, error) { return d.dec.Read(p) }

// Close releases the decoder. It does not close the wrapped stream.
func (d *Decompressor) Close() error {
	d.dec.Close()
	return nil
}

// Compressor wraps a zstd encoder as a closable stream.
type Compressor struct {
	enc *zstd.Encoder
}

// NewCompressor returns a stream that writes its input to w as a zstd
// frame. Close must be called to flush the frame.
func NewCompressor(w io.Writer) (*Compressor, error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, errors.WithMessage(err, "zstd encoder")
	}
	return &Compressor{enc: enc}, nil
}

func (c *Compressor) Write(p []byte) (int, error) { return c.enc.Write(p) }

// Close finishes the frame. It does not close the wrapped stream.
func (c *Compressor) Close() error { return c.enc.Close() }

type layered struct {
	io.Reader
	close []func() error
}

func (l *layered) Close() error {
	var first error
	for _, fn := range l.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type writeLayered struct {
	io.Writer
	close []func() error
}

func (l *writeLayered) Close() error {
	var first error
	for _, fn := range l.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
