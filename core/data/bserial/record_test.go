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

package bserial_test

import (
	"bytes"
	"testing"

	"github.com/bullno1/libs/core/assert"
	"github.com/bullno1/libs/core/data/bserial"
)

type monster struct {
	HP    int32
	MP    int32
	Name  string
	Items []uint64
}

// serializeMonster is a direction-agnostic procedure: the same field
// visits drive both encoding and decoding.
func serializeMonster(ctx *bserial.Context, m *monster) error {
	for ctx.Record(m) {
		if ctx.Key("hp") {
			ctx.Int32(&m.HP)
		}
		if ctx.Key("mp") {
			ctx.Int32(&m.MP)
		}
		if ctx.Key("name") {
			ctx.String(&m.Name)
		}
		if ctx.Key("items") {
			length := uint64(len(m.Items))
			if ctx.Array(&length) == nil {
				if ctx.Mode() == bserial.ModeRead {
					m.Items = make([]uint64, length)
				}
				for i := range m.Items {
					ctx.Uint64(&m.Items[i])
				}
			}
		}
	}
	return ctx.Err()
}

// serializeMonsterFlipped visits the same fields in a different order.
func serializeMonsterFlipped(ctx *bserial.Context, m *monster) error {
	for ctx.Record(m) {
		if ctx.Key("items") {
			length := uint64(len(m.Items))
			if ctx.Array(&length) == nil {
				if ctx.Mode() == bserial.ModeRead {
					m.Items = make([]uint64, length)
				}
				for i := range m.Items {
					ctx.Uint64(&m.Items[i])
				}
			}
		}
		if ctx.Key("name") {
			ctx.String(&m.Name)
		}
		if ctx.Key("mp") {
			ctx.Int32(&m.MP)
		}
		if ctx.Key("hp") {
			ctx.Int32(&m.HP)
		}
	}
	return ctx.Err()
}

func TestRecordRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	in := monster{HP: 100, MP: 50, Name: "imp", Items: []uint64{3, 1, 4}}
	assert.For(t, "write").ThatError(serializeMonster(bserial.NewWriter(testConfig, buf), &in)).Succeeded()

	var out monster
	assert.For(t, "read").ThatError(serializeMonster(bserial.NewReader(testConfig, buf), &out)).Succeeded()
	assert.For(t, "round trip").That(out).DeepEquals(in)
}

func TestRecordFieldOrderIndependent(t *testing.T) {
	buf := &bytes.Buffer{}
	in := monster{HP: 100, MP: 50, Name: "imp", Items: []uint64{3, 1, 4}}
	assert.For(t, "write").ThatError(serializeMonster(bserial.NewWriter(testConfig, buf), &in)).Succeeded()

	// A reader visiting fields in a different order still gets them all.
	var out monster
	assert.For(t, "read").ThatError(serializeMonsterFlipped(bserial.NewReader(testConfig, buf), &out)).Succeeded()
	assert.For(t, "round trip").That(out).DeepEquals(in)
}

// serializeMonsterV1 is an older revision without mp or items.
func serializeMonsterV1(ctx *bserial.Context, m *monster) error {
	for ctx.Record(m) {
		if ctx.Key("hp") {
			ctx.Int32(&m.HP)
		}
		if ctx.Key("name") {
			ctx.String(&m.Name)
		}
	}
	return ctx.Err()
}

func TestRecordForwardCompatible(t *testing.T) {
	// Old reader, new wire: unknown fields are skipped.
	buf := &bytes.Buffer{}
	in := monster{HP: 100, MP: 50, Name: "imp", Items: []uint64{3, 1, 4}}
	assert.For(t, "write v2").ThatError(serializeMonster(bserial.NewWriter(testConfig, buf), &in)).Succeeded()

	var out monster
	assert.For(t, "read v1").ThatError(serializeMonsterV1(bserial.NewReader(testConfig, buf), &out)).Succeeded()
	assert.For(t, "hp").That(out.HP).Equals(in.HP)
	assert.For(t, "name").ThatString(out.Name).Equals(in.Name)
	assert.For(t, "mp untouched").That(out.MP).Equals(int32(0))
	assert.For(t, "items untouched").That(len(out.Items)).Equals(0)
}

func TestRecordBackwardCompatible(t *testing.T) {
	// New reader, old wire: absent fields keep their current values.
	buf := &bytes.Buffer{}
	in := monster{HP: 100, Name: "imp"}
	assert.For(t, "write v1").ThatError(serializeMonsterV1(bserial.NewWriter(testConfig, buf), &in)).Succeeded()

	out := monster{MP: 999}
	assert.For(t, "read v2").ThatError(serializeMonster(bserial.NewReader(testConfig, buf), &out)).Succeeded()
	assert.For(t, "hp").That(out.HP).Equals(in.HP)
	assert.For(t, "name").ThatString(out.Name).Equals(in.Name)
	assert.For(t, "mp default").That(out.MP).Equals(int32(999))
}

type inventory struct {
	Gold uint64
	Bag  monster
}

func serializeInventory(ctx *bserial.Context, inv *inventory) error {
	for ctx.Record(inv) {
		if ctx.Key("gold") {
			ctx.Uint64(&inv.Gold)
		}
		if ctx.Key("bag") {
			serializeMonster(ctx, &inv.Bag)
		}
	}
	return ctx.Err()
}

func TestNestedRecord(t *testing.T) {
	buf := &bytes.Buffer{}
	in := inventory{Gold: 1234, Bag: monster{HP: 5, MP: 6, Name: "mimic", Items: []uint64{9}}}
	assert.For(t, "write").ThatError(serializeInventory(bserial.NewWriter(testConfig, buf), &in)).Succeeded()

	var out inventory
	assert.For(t, "read").ThatError(serializeInventory(bserial.NewReader(testConfig, buf), &out)).Succeeded()
	assert.For(t, "round trip").That(out).DeepEquals(in)
}

func TestEmptyRecord(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bserial.NewWriter(testConfig, buf)
	var marker struct{}
	for w.Record(&marker) {
	}
	assert.For(t, "write").ThatError(w.Err()).Succeeded()
	assert.For(t, "wire").ThatBytes(buf.Bytes()).Equals([]byte{10, 0})

	r := bserial.NewReader(testConfig, buf)
	for r.Record(&marker) {
	}
	assert.For(t, "read").ThatError(r.Err()).Succeeded()
}

func TestRecordWireLayout(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bserial.NewWriter(testConfig, buf)

	type sample struct {
		Num uint64
		Str string
		Arr []uint64
	}
	in := sample{Num: 42069, Str: "Hello", Arr: []uint64{1, 2, 3}}
	for w.Record(&in) {
		if w.Key("num") {
			w.Uint64(&in.Num)
		}
		if w.Key("str") {
			w.String(&in.Str)
		}
		if w.Key("array") {
			length := uint64(len(in.Arr))
			if w.Array(&length) == nil {
				for i := range in.Arr {
					w.Uint64(&in.Arr[i])
				}
			}
		}
	}
	assert.For(t, "write").ThatError(w.Err()).Succeeded()

	assert.For(t, "wire").ThatBytes(buf.Bytes()).Equals([]byte{
		10, 3, // record, 3 fields
		6, 3, 'n', 'u', 'm',
		6, 3, 's', 't', 'r',
		6, 5, 'a', 'r', 'r', 'a', 'y',
		1, 0xd5, 0xc8, 0x02, // uint 42069
		5, 5, 'H', 'e', 'l', 'l', 'o', // blob "Hello"
		8, 3, // array, 3 elements
		1, 1,
		1, 2,
		1, 3,
	})
}

func TestRecordTooManyFields(t *testing.T) {
	cfg := testConfig
	cfg.MaxRecordFields = 2
	buf := &bytes.Buffer{}
	in := monster{HP: 1, MP: 2, Name: "imp", Items: nil}
	err := serializeMonster(bserial.NewWriter(cfg, buf), &in)
	assert.For(t, "overflow").ThatError(err).CausedBy(bserial.ErrMalformed)
}

func TestKeyOutsideRecord(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bserial.NewWriter(testConfig, buf)
	assert.For(t, "stray key").That(w.Key("oops")).IsFalse()
	assert.For(t, "failure").ThatError(w.Err()).CausedBy(bserial.ErrMalformed)
}
