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

package streams_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bullno1/libs/core/assert"
	"github.com/bullno1/libs/core/data/streams"
)

func TestCompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("compressible payload "), 100)

	buf := &bytes.Buffer{}
	c, err := streams.NewCompressor(buf)
	assert.For(t, "compressor").ThatError(err).Succeeded()
	_, err = c.Write(payload)
	assert.For(t, "write").ThatError(err).Succeeded()
	assert.For(t, "close").ThatError(c.Close()).Succeeded()
	assert.For(t, "compressed smaller").That(buf.Len() < len(payload)).IsTrue()

	d, err := streams.NewDecompressor(buf)
	assert.For(t, "decompressor").ThatError(err).Succeeded()
	defer d.Close()
	got, err := ioutil.ReadAll(d)
	assert.For(t, "read").ThatError(err).Succeeded()
	assert.For(t, "round trip").ThatBytes(got).Equals(payload)
}

func TestFileRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "streams")
	assert.For(t, "tempdir").ThatError(err).Succeeded()
	defer os.RemoveAll(dir)

	payload := []byte("plain file payload")
	path := filepath.Join(dir, "data.bin")

	w, err := streams.CreateFile(path)
	assert.For(t, "create").ThatError(err).Succeeded()
	_, err = w.Write(payload)
	assert.For(t, "write").ThatError(err).Succeeded()
	assert.For(t, "close").ThatError(w.Close()).Succeeded()

	r, err := streams.OpenFile(path)
	assert.For(t, "open").ThatError(err).Succeeded()
	defer r.Close()
	got, err := ioutil.ReadAll(r)
	assert.For(t, "read").ThatError(err).Succeeded()
	assert.For(t, "round trip").ThatBytes(got).Equals(payload)
}

func TestCompressedFileRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "streams")
	assert.For(t, "tempdir").ThatError(err).Succeeded()
	defer os.RemoveAll(dir)

	payload := bytes.Repeat([]byte("compressible payload "), 100)
	path := filepath.Join(dir, "data.bin.zst")

	w, err := streams.CreateFile(path)
	assert.For(t, "create").ThatError(err).Succeeded()
	_, err = w.Write(payload)
	assert.For(t, "write").ThatError(err).Succeeded()
	assert.For(t, "close").ThatError(w.Close()).Succeeded()

	// The file on disk is a zstd frame, smaller than the content.
	raw, err := ioutil.ReadFile(path)
	assert.For(t, "raw read").ThatError(err).Succeeded()
	assert.For(t, "compressed on disk").That(len(raw) < len(payload)).IsTrue()

	r, err := streams.OpenFile(path)
	assert.For(t, "open").ThatError(err).Succeeded()
	defer r.Close()
	got, err := ioutil.ReadAll(r)
	assert.For(t, "read").ThatError(err).Succeeded()
	assert.For(t, "round trip").ThatBytes(got).Equals(payload)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := streams.OpenFile("/does/not/exist")
	assert.For(t, "missing").ThatError(err).Failed()
}
