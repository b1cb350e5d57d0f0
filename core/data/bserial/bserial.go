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
	"io"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/bullno1/libs/core/data/binary"
	"github.com/bullno1/libs/core/fault"
)

const (
	// ErrIO is the root cause of every failure of the underlying stream.
	ErrIO = fault.Const("stream I/O failure")
	// ErrMalformed is the root cause of every structural failure: unknown
	// marker, truncated varint, capacity or depth exceeded, reference to
	// an undefined symbol, or scope discipline violation.
	ErrMalformed = fault.Const("malformed data")
)

// Value kind markers. Every value on the wire is introduced by one of
// these bytes.
const (
	markerUInt   byte = 1
	markerSInt   byte = 2
	markerF32    byte = 3
	markerF64    byte = 4
	markerBlob   byte = 5
	markerSymDef byte = 6
	markerSymRef byte = 7
	markerArray  byte = 8
	markerTable  byte = 9
	markerRecord byte = 10
)

// Mode is the direction of a Context, fixed at construction.
type Mode int

const (
	// ModeWrite contexts encode values to an io.Writer.
	ModeWrite Mode = iota
	// ModeRead contexts decode values from an io.Reader.
	ModeRead
)

// Config bounds the working storage of a Context.
// All limits are immutable for the Context's life.
type Config struct {
	// MaxSymbolLen is the maximum length, in bytes, of a symbol.
	MaxSymbolLen uint32
	// MaxNumSymbols is the maximum number of distinct symbols.
	MaxNumSymbols uint32
	// MaxRecordFields is the maximum number of fields per record.
	MaxRecordFields uint32
	// MaxDepth is the maximum nesting depth, including the root.
	// It must be at least 1.
	MaxDepth uint32
}

// indexExp returns the size exponent of the symbol probe index: the
// smallest power of two of at least twice MaxNumSymbols.
func (c Config) indexExp() int32 {
	exp := int32(2)
	for (int32(1) << exp) < int32(c.MaxNumSymbols*2) {
		exp++
	}
	return exp
}

// MemSize returns the number of bytes of working storage a Context built
// from this Config holds. It is a pure function of the Config: the
// storage is carved once at construction and never grows during
// traversal.
func (c Config) MemSize() int {
	size := int(unsafe.Sizeof(Context{}))
	size += int(c.MaxNumSymbols) * int(unsafe.Sizeof(symbol{}))
	size += (1 << c.indexExp()) * int(unsafe.Sizeof(int32(0)))
	size += int(c.MaxDepth) * int(c.MaxRecordFields) * int(unsafe.Sizeof(fieldMapping{}))
	size += int(c.MaxDepth) * int(unsafe.Sizeof(scope{}))
	size += int(c.MaxSymbolLen+1) * int(c.MaxNumSymbols)
	return size
}

// Context traverses a single stream of structured values.
// It is not safe for concurrent use.
type Context struct {
	cfg  Config
	mode Mode
	err  error
	in   io.Reader
	out  io.Writer

	// one byte of lookahead, used by Dump to probe for end of stream
	peeked  byte
	hasPeek bool
	mbuf    [1]byte

	symbols  []symbol
	index    []int32
	indexExp int32
	symBuf   []byte

	scopes     []scope
	depth      int
	schemaPool []fieldMapping
	schemaTop  int
}

// NewReader returns a Context that decodes values from in.
func NewReader(cfg Config, in io.Reader) *Context {
	c := newContext(cfg)
	c.mode = ModeRead
	c.in = in
	return c
}

// NewWriter returns a Context that encodes values to out.
func NewWriter(cfg Config, out io.Writer) *Context {
	c := newContext(cfg)
	c.mode = ModeWrite
	c.out = out
	return c
}

func newContext(cfg Config) *Context {
	if cfg.MaxDepth == 0 {
		panic("bserial: Config.MaxDepth must be at least 1")
	}
	c := &Context{
		cfg:        cfg,
		symbols:    make([]symbol, 0, cfg.MaxNumSymbols),
		index:      make([]int32, 1<<cfg.indexExp()),
		indexExp:   cfg.indexExp(),
		symBuf:     make([]byte, cfg.MaxSymbolLen),
		scopes:     make([]scope, cfg.MaxDepth),
		schemaPool: make([]fieldMapping, int(cfg.MaxDepth)*int(cfg.MaxRecordFields)),
	}
	c.scopes[0] = scope{kind: scopeRoot}
	return c
}

// Mode returns the direction the Context traverses in.
func (c *Context) Mode() Mode { return c.mode }

// Err returns the latched failure, or nil while the Context is healthy.
// Once non-nil, every operation is a no-op returning the same error.
func (c *Context) Err() error { return c.err }

func (c *Context) fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return c.err
}

func (c *Context) malformed(reason string) error {
	return c.fail(errors.WithMessage(ErrMalformed, reason))
}

func (c *Context) ioFail(err error) error {
	if err == binary.ErrVarintTooLong {
		return c.malformed("unterminated varint")
	}
	return c.fail(errors.WithMessage(ErrIO, err.Error()))
}

func (c *Context) readMarker() (byte, error) {
	if c.hasPeek {
		c.hasPeek = false
		return c.peeked, nil
	}
	b, err := binary.ReadByte(c.in)
	if err != nil {
		return 0, c.ioFail(err)
	}
	return b, nil
}

func (c *Context) writeMarker(m byte) error {
	c.mbuf[0] = m
	if err := binary.WriteAll(c.out, c.mbuf[:]); err != nil {
		return c.ioFail(err)
	}
	return nil
}

func (c *Context) readUvarint() (uint64, error) {
	v, err := binary.ReadUvarint(c.in)
	if err != nil {
		return 0, c.ioFail(err)
	}
	return v, nil
}

func (c *Context) writeUvarint(v uint64) error {
	if err := binary.WriteUvarint(c.out, v); err != nil {
		return c.ioFail(err)
	}
	return nil
}

func (c *Context) writeString(s string) error {
	n, err := io.WriteString(c.out, s)
	if err != nil {
		return c.ioFail(err)
	}
	if n != len(s) {
		return c.ioFail(io.ErrShortWrite)
	}
	return nil
}

// markerAndLength reads or writes a marker byte followed by a varint
// length, depending on mode.
func (c *Context) markerAndLength(marker byte, length *uint64) error {
	if c.err != nil {
		return c.err
	}
	if c.mode == ModeRead {
		m, err := c.readMarker()
		if err != nil {
			return err
		}
		if m != marker {
			return c.malformed("unexpected value kind")
		}
		v, err := c.readUvarint()
		if err != nil {
			return err
		}
		*length = v
		return nil
	}
	if err := c.writeMarker(marker); err != nil {
		return err
	}
	return c.writeUvarint(*length)
}
